package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tkops/hcr2_manager/model"
)

func (db *postgresDB) UpsertMatchScore(ctx context.Context, ms *model.MatchScore) error {
	const query = `INSERT INTO matchscores (match_id, player_id, score, points)
		VALUES (@matchID, @playerID, @score, @points)
		ON CONFLICT (match_id, player_id)
		DO UPDATE SET score=EXCLUDED.score, points=EXCLUDED.points`

	args := pgx.NamedArgs{
		"matchID":  ms.MatchID,
		"playerID": ms.PlayerID,
		"score":    ms.Score,
		"points":   ms.Points,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting score for player %d in match %d: %w", ms.PlayerID, ms.MatchID, err)
	}
	return nil
}

func (db *postgresDB) DeleteMatchScore(ctx context.Context, matchID, playerID int32) error {
	const query = `DELETE FROM matchscores WHERE match_id=@matchID AND player_id=@playerID`

	args := pgx.NamedArgs{"matchID": matchID, "playerID": playerID}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error deleting score for player %d in match %d: %w", playerID, matchID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScoreNotFound
	}
	return nil
}

func (db *postgresDB) ListMatchScores(ctx context.Context, matchID int32) ([]model.MatchScore, error) {
	const query = `SELECT id, match_id, player_id, score, points
		FROM matchscores WHERE match_id=@matchID ORDER BY score DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"matchID": matchID})
	if err != nil {
		return nil, fmt.Errorf("error listing scores for match %d: %w", matchID, err)
	}
	defer rows.Close()

	results := make([]model.MatchScore, 0, 16)
	for rows.Next() {
		var ms model.MatchScore
		if err := rows.Scan(&ms.ID, &ms.MatchID, &ms.PlayerID, &ms.Score, &ms.Points); err != nil {
			return nil, err
		}
		results = append(results, ms)
	}
	return results, rows.Err()
}

func (db *postgresDB) SeasonScores(ctx context.Context, season int) ([]SeasonScore, error) {
	const query = `SELECT p.id, p.name, p.active, ms.match_id, ms.score
		FROM matchscores ms
		JOIN matches m ON m.id = ms.match_id
		JOIN players p ON p.id = ms.player_id
		WHERE m.season_number=@season
		ORDER BY ms.match_id ASC, ms.score DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"season": season})
	if err != nil {
		return nil, fmt.Errorf("error loading season %d scores: %w", season, err)
	}
	defer rows.Close()

	results := make([]SeasonScore, 0, 64)
	for rows.Next() {
		var s SeasonScore
		if err := rows.Scan(&s.PlayerID, &s.PlayerName, &s.Active, &s.MatchID, &s.Score); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

func (db *postgresDB) CountMatchesPerPlayer(ctx context.Context, from, to time.Time) (map[int32]int, error) {
	const query = `SELECT ms.player_id, COUNT(DISTINCT ms.match_id)
		FROM matchscores ms
		JOIN matches m ON m.id = ms.match_id
		WHERE m.start >= @from AND m.start <= @to
		GROUP BY ms.player_id`

	args := pgx.NamedArgs{"from": nullDate(from), "to": nullDate(to)}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error counting matches per player: %w", err)
	}
	defer rows.Close()

	counts := make(map[int32]int)
	for rows.Next() {
		var playerID int32
		var n int
		if err := rows.Scan(&playerID, &n); err != nil {
			return nil, err
		}
		counts[playerID] = n
	}
	return counts, rows.Err()
}
