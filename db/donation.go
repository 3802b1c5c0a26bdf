package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tkops/hcr2_manager/model"
)

func (db *postgresDB) UpsertDonation(ctx context.Context, d *model.Donation) error {
	const query = `INSERT INTO donations (player_id, date, total)
		VALUES (@playerID, @date, @total)
		ON CONFLICT (player_id, date) DO UPDATE SET total=EXCLUDED.total`

	args := pgx.NamedArgs{
		"playerID": d.PlayerID,
		"date":     nullDate(d.Date),
		"total":    d.Total,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting donation for player %d: %w", d.PlayerID, err)
	}
	return nil
}

func (db *postgresDB) DeleteDonation(ctx context.Context, id int32) error {
	const query = `DELETE FROM donations WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting donation %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDonationNotFound
	}
	return nil
}

func (db *postgresDB) ListDonations(ctx context.Context, playerID int32) ([]model.Donation, error) {
	const query = `SELECT id, player_id, date, total
		FROM donations WHERE player_id=@playerID ORDER BY date ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"playerID": playerID})
	if err != nil {
		return nil, fmt.Errorf("error listing donations for player %d: %w", playerID, err)
	}
	defer rows.Close()

	results := make([]model.Donation, 0, 16)
	for rows.Next() {
		var d model.Donation
		var date pgtype.Date
		if err := rows.Scan(&d.ID, &d.PlayerID, &date, &d.Total); err != nil {
			return nil, err
		}
		d.Date = date.Time
		results = append(results, d)
	}
	return results, rows.Err()
}

func (db *postgresDB) LatestDonationDate(ctx context.Context) (time.Time, error) {
	const query = `SELECT MAX(date) FROM donations`

	var date pgtype.Date
	if err := db.pool.QueryRow(ctx, query).Scan(&date); err != nil {
		return time.Time{}, fmt.Errorf("error loading latest donation date: %w", err)
	}
	if !date.Valid {
		return time.Time{}, nil
	}
	return date.Time, nil
}

func (db *postgresDB) DonationTotalsAt(ctx context.Context, cutoff time.Time) (map[int32]int, error) {
	const query = `SELECT DISTINCT ON (player_id) player_id, total
		FROM donations
		WHERE date <= @cutoff
		ORDER BY player_id, date DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"cutoff": nullDate(cutoff)})
	if err != nil {
		return nil, fmt.Errorf("error loading donation totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[int32]int)
	for rows.Next() {
		var playerID int32
		var total int
		if err := rows.Scan(&playerID, &total); err != nil {
			return nil, err
		}
		totals[playerID] = total
	}
	return totals, rows.Err()
}
