package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tkops/hcr2_manager/model"
)

func (db *postgresDB) InsertSeason(ctx context.Context, s *model.Season) error {
	const query = `INSERT INTO seasons (number, name, start, division)
		VALUES (@number, @name, @start, @division)`

	args := pgx.NamedArgs{
		"number":   s.Number,
		"name":     s.Name,
		"start":    nullDate(s.Start),
		"division": string(s.Division),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error inserting season %d: %w", s.Number, err)
	}
	return nil
}

func (db *postgresDB) GetSeason(ctx context.Context, number int) (*model.Season, error) {
	const query = `SELECT number, name, start, division FROM seasons WHERE number=@number`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"number": number})
	s, err := scanSeason(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("error scanning season %d: %w", number, err)
	}
	return s, nil
}

func (db *postgresDB) ListSeasons(ctx context.Context) ([]model.Season, error) {
	const query = `SELECT number, name, start, division FROM seasons ORDER BY number DESC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing seasons: %w", err)
	}
	defer rows.Close()

	results := make([]model.Season, 0, 16)
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *s)
	}
	return results, rows.Err()
}

func (db *postgresDB) UpdateSeasonDivision(ctx context.Context, number int, division model.Division) error {
	const query = `UPDATE seasons SET division=@division WHERE number=@number`

	args := pgx.NamedArgs{"number": number, "division": string(division)}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating season %d: %w", number, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSeasonNotFound
	}
	return nil
}

func (db *postgresDB) DeleteSeason(ctx context.Context, number int) error {
	const query = `DELETE FROM seasons WHERE number=@number`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"number": number})
	if err != nil {
		return fmt.Errorf("error deleting season %d: %w", number, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSeasonNotFound
	}
	return nil
}

func scanSeason(row pgx.Row) (*model.Season, error) {
	var result model.Season
	var start pgtype.Date
	var division string
	if err := row.Scan(&result.Number, &result.Name, &start, &division); err != nil {
		return nil, err
	}
	result.Start = start.Time
	result.Division, _ = model.ParseDivision(division)
	return &result, nil
}

// 23505 is unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
