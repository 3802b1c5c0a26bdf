package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tkops/hcr2_manager/model"
)

// AutoAddReport summarizes a bulk score entry run. Failed lines carry the
// reason so the caller can show what needs a manual retry.
type AutoAddReport struct {
	Added  int
	Failed []string
}

func (c *controller) AddMatchScore(ctx context.Context, matchID int32, playerRef string, score, points int) (*model.MatchScore, error) {
	p, err := c.ResolvePlayer(ctx, playerRef)
	if err != nil {
		return nil, err
	}
	if _, err := c.db.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}

	ms := &model.MatchScore{
		MatchID:  matchID,
		PlayerID: p.ID,
		Score:    score,
		Points:   points,
	}
	if err := ms.Validate(); err != nil {
		return nil, err
	}
	if err := c.db.UpsertMatchScore(ctx, ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func (c *controller) DeleteMatchScore(ctx context.Context, matchID, playerID int32) error {
	return c.db.DeleteMatchScore(ctx, matchID, playerID)
}

func (c *controller) ListMatchScores(ctx context.Context, matchID int32) ([]model.MatchScore, error) {
	return c.db.ListMatchScores(ctx, matchID)
}

// AutoAddScores reads "name score [points]" lines. Lines that do not
// resolve to exactly one player, or whose numbers are out of range, are
// collected in the report instead of aborting the run.
func (c *controller) AutoAddScores(ctx context.Context, matchID int32, r io.Reader) (*AutoAddReport, error) {
	if _, err := c.db.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}

	report := &AutoAddReport{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			report.Failed = append(report.Failed, fmt.Sprintf("%s: expected 'name score [points]'", line))
			continue
		}

		points := 0
		scoreIdx := len(fields) - 1
		if len(fields) >= 3 {
			// The last two fields may be score and points; only treat the
			// second-to-last as the score when both parse as numbers.
			if _, err := strconv.Atoi(fields[len(fields)-2]); err == nil {
				var perr error
				points, perr = strconv.Atoi(fields[len(fields)-1])
				if perr == nil {
					scoreIdx = len(fields) - 2
				}
			}
		}

		score, err := strconv.Atoi(fields[scoreIdx])
		if err != nil {
			report.Failed = append(report.Failed, fmt.Sprintf("%s: invalid score", line))
			continue
		}
		name := strings.Join(fields[:scoreIdx], " ")

		p, err := c.ResolvePlayer(ctx, name)
		if err != nil {
			report.Failed = append(report.Failed, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		ms := &model.MatchScore{MatchID: matchID, PlayerID: p.ID, Score: score, Points: points}
		if err := ms.Validate(); err != nil {
			report.Failed = append(report.Failed, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if err := c.db.UpsertMatchScore(ctx, ms); err != nil {
			return nil, err
		}
		report.Added++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return report, nil
}
