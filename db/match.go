package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tkops/hcr2_manager/model"
)

const matchColumns = `id, teamevent_id, season_number, start, opponent, score_ladys, score_opponent`

func (db *postgresDB) InsertMatch(ctx context.Context, m *model.Match) (int32, error) {
	const query = `INSERT INTO matches (teamevent_id, season_number, start, opponent, score_ladys, score_opponent)
		VALUES (@teamEventID, @season, @start, @opponent, @scoreLadys, @scoreOpponent)
		RETURNING id`

	var id int32
	if err := db.pool.QueryRow(ctx, query, namedArgsForMatch(m)).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting match vs %s: %w", m.Opponent, err)
	}
	return id, nil
}

func (db *postgresDB) InsertMatches(ctx context.Context, matches []model.Match) error {
	const query = `INSERT INTO matches (teamevent_id, season_number, start, opponent, score_ladys, score_opponent)
		VALUES (@teamEventID, @season, @start, @opponent, @scoreLadys, @scoreOpponent)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range matches {
		if _, err := tx.Exec(ctx, query, namedArgsForMatch(&matches[i])); err != nil {
			return fmt.Errorf("error inserting match vs %s: %w", matches[i].Opponent, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing match import: %w", err)
	}
	return nil
}

func (db *postgresDB) GetMatch(ctx context.Context, id int32) (*model.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches WHERE id=@id`, matchColumns)

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("error scanning match %d: %w", id, err)
	}
	return m, nil
}

func (db *postgresDB) FindMatch(ctx context.Context, teamEventID int32, season int, start time.Time, opponent string) (*model.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches
		WHERE teamevent_id=@teamEventID
			AND season_number=@season
			AND start=@start
			AND opponent=@opponent`, matchColumns)

	args := pgx.NamedArgs{
		"teamEventID": teamEventID,
		"season":      season,
		"start":       nullDate(start),
		"opponent":    opponent,
	}
	row := db.pool.QueryRow(ctx, query, args)
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("error scanning match: %w", err)
	}
	return m, nil
}

func (db *postgresDB) ListMatches(ctx context.Context, season int) ([]model.Match, error) {
	query := fmt.Sprintf(`SELECT %s FROM matches
		WHERE (@season = 0 OR season_number = @season)
		ORDER BY start DESC, id DESC`, matchColumns)

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"season": season})
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}
	defer rows.Close()

	results := make([]model.Match, 0, 16)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *m)
	}
	return results, rows.Err()
}

func (db *postgresDB) UpdateMatch(ctx context.Context, m *model.Match) error {
	const query = `UPDATE matches
		SET teamevent_id=@teamEventID,
			season_number=@season,
			start=@start,
			opponent=@opponent,
			score_ladys=@scoreLadys,
			score_opponent=@scoreOpponent
		WHERE id=@id`

	args := namedArgsForMatch(m)
	args["id"] = m.ID
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating match %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (db *postgresDB) DeleteMatch(ctx context.Context, id int32) error {
	const query = `DELETE FROM matches WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting match %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func scanMatch(row pgx.Row) (*model.Match, error) {
	var result model.Match
	var start pgtype.Date
	err := row.Scan(
		&result.ID,
		&result.TeamEventID,
		&result.SeasonNumber,
		&start,
		&result.Opponent,
		&result.ScoreLadys,
		&result.ScoreOpponent)
	if err != nil {
		return nil, err
	}
	result.Start = start.Time
	return &result, nil
}

func namedArgsForMatch(m *model.Match) pgx.NamedArgs {
	return pgx.NamedArgs{
		"teamEventID":   m.TeamEventID,
		"season":        m.SeasonNumber,
		"start":         nullDate(m.Start),
		"opponent":      m.Opponent,
		"scoreLadys":    m.ScoreLadys,
		"scoreOpponent": m.ScoreOpponent,
	}
}
