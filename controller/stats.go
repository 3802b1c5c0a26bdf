package controller

import (
	"context"
	"math"
	"sort"

	"github.com/tkops/hcr2_manager/db"
)

// PlayerDelta is one row of the season average ranking: how far above or
// below the per-match median a player typically scores.
type PlayerDelta struct {
	PlayerID int32
	Name     string
	Matches  int
	AvgDelta int
}

func (c *controller) SeasonAvgDeltas(ctx context.Context, season int) ([]PlayerDelta, int, error) {
	if season == 0 {
		n, err := c.CurrentSeason()
		if err != nil {
			return nil, 0, err
		}
		season = n
	}

	scores, err := c.db.SeasonScores(ctx, season)
	if err != nil {
		return nil, 0, err
	}
	if len(scores) == 0 {
		return []PlayerDelta{}, season, nil
	}

	byMatch := make(map[int32][]db.SeasonScore)
	for _, s := range scores {
		byMatch[s.MatchID] = append(byMatch[s.MatchID], s)
	}

	type acc struct {
		name    string
		active  bool
		sum     float64
		matches int
	}
	perPlayer := make(map[int32]*acc)

	for _, group := range byMatch {
		med := median(group)
		for _, s := range group {
			a, found := perPlayer[s.PlayerID]
			if !found {
				a = &acc{name: s.PlayerName, active: s.Active}
				perPlayer[s.PlayerID] = a
			}
			a.sum += float64(s.Score) - med
			a.matches++
		}
	}

	results := make([]PlayerDelta, 0, len(perPlayer))
	for id, a := range perPlayer {
		if !a.active {
			continue
		}
		results = append(results, PlayerDelta{
			PlayerID: id,
			Name:     a.name,
			Matches:  a.matches,
			AvgDelta: int(math.Round(a.sum / float64(a.matches))),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].AvgDelta != results[j].AvgDelta {
			return results[i].AvgDelta > results[j].AvgDelta
		}
		return results[i].Name < results[j].Name
	})
	return results, season, nil
}

// median uses the stable definition: the mean of the two middle values
// for groups of even size.
func median(group []db.SeasonScore) float64 {
	vals := make([]int, 0, len(group))
	for _, s := range group {
		vals = append(vals, s.Score)
	}
	sort.Ints(vals)

	n := len(vals)
	if n%2 == 1 {
		return float64(vals[n/2])
	}
	return (float64(vals[n/2-1]) + float64(vals[n/2])) / 2
}
