package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPlayerNotFound    error = errors.New("player not found")
	ErrSeasonNotFound    error = errors.New("season not found")
	ErrVehicleNotFound   error = errors.New("vehicle not found")
	ErrTeamEventNotFound error = errors.New("team event not found")
	ErrMatchNotFound     error = errors.New("match not found")
	ErrScoreNotFound     error = errors.New("match score not found")
	ErrDonationNotFound  error = errors.New("donation not found")
	ErrDuplicate         error = errors.New("duplicate entry")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) Close() {
	db.pool.Close()
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: !t.IsZero()}
}

func nullTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, InfinityModifier: pgtype.Finite, Valid: !t.IsZero()}
}
