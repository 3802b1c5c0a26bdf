package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tkops/hcr2_manager/model"
)

func (db *postgresDB) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	const query = `SELECT id, name, shortname FROM vehicles ORDER BY name ASC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	defer rows.Close()

	results := make([]model.Vehicle, 0, 32)
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Shortname); err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetVehicle(ctx context.Context, id int32) (*model.Vehicle, error) {
	const query = `SELECT id, name, shortname FROM vehicles WHERE id=@id`

	var v model.Vehicle
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(&v.ID, &v.Name, &v.Shortname)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("error scanning vehicle %d: %w", id, err)
	}
	return &v, nil
}

func (db *postgresDB) GetVehicleByShortname(ctx context.Context, shortname string) (*model.Vehicle, error) {
	const query = `SELECT id, name, shortname FROM vehicles WHERE LOWER(shortname)=LOWER(@shortname)`

	var v model.Vehicle
	err := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"shortname": shortname}).Scan(&v.ID, &v.Name, &v.Shortname)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("error scanning vehicle '%s': %w", shortname, err)
	}
	return &v, nil
}

func (db *postgresDB) InsertVehicle(ctx context.Context, v *model.Vehicle) (int32, error) {
	const query = `INSERT INTO vehicles (name, shortname) VALUES (@name, @shortname) RETURNING id`

	args := pgx.NamedArgs{"name": v.Name, "shortname": v.Shortname}
	var id int32
	if err := db.pool.QueryRow(ctx, query, args).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("error inserting vehicle (%s): %w", v.Name, err)
	}
	return id, nil
}

func (db *postgresDB) UpdateVehicle(ctx context.Context, v *model.Vehicle) error {
	const query = `UPDATE vehicles SET name=@name, shortname=@shortname WHERE id=@id`

	args := pgx.NamedArgs{"id": v.ID, "name": v.Name, "shortname": v.Shortname}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error updating vehicle %d: %w", v.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (db *postgresDB) DeleteVehicle(ctx context.Context, id int32) error {
	const query = `DELETE FROM vehicles WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting vehicle %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (db *postgresDB) DropVehicles(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM vehicles`); err != nil {
		return fmt.Errorf("error dropping vehicles: %w", err)
	}
	return nil
}
