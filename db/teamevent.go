package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tkops/hcr2_manager/model"
)

func (db *postgresDB) InsertTeamEvent(ctx context.Context, te *model.TeamEvent) (int32, error) {
	const query = `INSERT INTO teamevents (name, iso_year, iso_week, tracks, max_score_per_track)
		VALUES (@name, @isoYear, @isoWeek, @tracks, @maxScore) RETURNING id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"name":     te.Name,
		"isoYear":  te.ISOYear,
		"isoWeek":  te.ISOWeek,
		"tracks":   te.Tracks,
		"maxScore": te.MaxScorePerTrack,
	}
	var id int32
	if err := tx.QueryRow(ctx, query, args).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting team event (%s): %w", te.Name, err)
	}

	if err := saveTeamEventVehicles(ctx, tx, id, te.Vehicles); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing team event transaction: %w", err)
	}
	return id, nil
}

func (db *postgresDB) GetTeamEvent(ctx context.Context, id int32) (*model.TeamEvent, error) {
	const query = `SELECT id, name, iso_year, iso_week, tracks, max_score_per_track
		FROM teamevents WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	te, err := scanTeamEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamEventNotFound
		}
		return nil, fmt.Errorf("error scanning team event %d: %w", id, err)
	}

	vehicles, err := db.getTeamEventVehicles(ctx, id)
	if err != nil {
		return nil, err
	}
	te.Vehicles = vehicles
	return te, nil
}

func (db *postgresDB) ListTeamEvents(ctx context.Context) ([]model.TeamEvent, error) {
	const query = `SELECT id, name, iso_year, iso_week, tracks, max_score_per_track
		FROM teamevents ORDER BY iso_year DESC, iso_week DESC, id DESC`

	return db.queryTeamEvents(ctx, query, pgx.NamedArgs{})
}

func (db *postgresDB) FindTeamEventsByName(ctx context.Context, name string) ([]model.TeamEvent, error) {
	const query = `SELECT id, name, iso_year, iso_week, tracks, max_score_per_track
		FROM teamevents WHERE name=@name ORDER BY id ASC`

	return db.queryTeamEvents(ctx, query, pgx.NamedArgs{"name": name})
}

func (db *postgresDB) UpdateTeamEvent(ctx context.Context, te *model.TeamEvent) error {
	const query = `UPDATE teamevents
		SET name=@name, iso_year=@isoYear, iso_week=@isoWeek,
			tracks=@tracks, max_score_per_track=@maxScore
		WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{
		"id":       te.ID,
		"name":     te.Name,
		"isoYear":  te.ISOYear,
		"isoWeek":  te.ISOWeek,
		"tracks":   te.Tracks,
		"maxScore": te.MaxScorePerTrack,
	}
	tag, err := tx.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating team event %d: %w", te.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamEventNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM teamevent_vehicles WHERE teamevent_id=@id`,
		pgx.NamedArgs{"id": te.ID}); err != nil {
		return fmt.Errorf("error clearing team event vehicles: %w", err)
	}
	if err := saveTeamEventVehicles(ctx, tx, te.ID, te.Vehicles); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (db *postgresDB) DeleteTeamEvent(ctx context.Context, id int32) error {
	const query = `DELETE FROM teamevents WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting team event %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamEventNotFound
	}
	return nil
}

func (db *postgresDB) queryTeamEvents(ctx context.Context, query string, args pgx.NamedArgs) ([]model.TeamEvent, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error running team event query: %w", err)
	}
	defer rows.Close()

	results := make([]model.TeamEvent, 0, 8)
	for rows.Next() {
		te, err := scanTeamEvent(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *te)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		vehicles, err := db.getTeamEventVehicles(ctx, results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Vehicles = vehicles
	}
	return results, nil
}

func (db *postgresDB) getTeamEventVehicles(ctx context.Context, teamEventID int32) ([]model.Vehicle, error) {
	const query = `SELECT v.id, v.name, v.shortname
		FROM vehicles v
		JOIN teamevent_vehicles tv ON tv.vehicle_id = v.id
		WHERE tv.teamevent_id=@id
		ORDER BY v.name ASC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"id": teamEventID})
	if err != nil {
		return nil, fmt.Errorf("error loading team event vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]model.Vehicle, 0, 4)
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Shortname); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func saveTeamEventVehicles(ctx context.Context, tx pgx.Tx, teamEventID int32, vehicles []model.Vehicle) error {
	const query = `INSERT INTO teamevent_vehicles (teamevent_id, vehicle_id)
		VALUES (@teamEventID, @vehicleID) ON CONFLICT DO NOTHING`

	for _, v := range vehicles {
		args := pgx.NamedArgs{"teamEventID": teamEventID, "vehicleID": v.ID}
		if _, err := tx.Exec(ctx, query, args); err != nil {
			return fmt.Errorf("error linking vehicle %d to team event %d: %w", v.ID, teamEventID, err)
		}
	}
	return nil
}

func scanTeamEvent(row pgx.Row) (*model.TeamEvent, error) {
	var result model.TeamEvent
	err := row.Scan(
		&result.ID,
		&result.Name,
		&result.ISOYear,
		&result.ISOWeek,
		&result.Tracks,
		&result.MaxScorePerTrack)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
