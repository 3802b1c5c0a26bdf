package controller

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tkops/hcr2_manager/model"
)

// statsWindowStart bounds the match counting of the fairness report:
// matches before this date predate the donation bookkeeping and would
// skew the expectation.
var statsWindowStart = time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

func (c *controller) AddDonation(ctx context.Context, playerRef string, date time.Time, total int) (*model.Donation, error) {
	if total < 0 {
		return nil, fmt.Errorf("donation total must not be negative")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("donation date must not be empty")
	}

	p, err := c.ResolvePlayer(ctx, playerRef)
	if err != nil {
		return nil, err
	}

	d := &model.Donation{
		PlayerID: p.ID,
		Date:     date,
		Total:    total,
	}
	if err := c.db.UpsertDonation(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (c *controller) DeleteDonation(ctx context.Context, id int32) error {
	return c.db.DeleteDonation(ctx, id)
}

func (c *controller) PlayerDonationStats(ctx context.Context, playerRef string) (*model.Player, *model.DonationStats, error) {
	p, err := c.ResolvePlayer(ctx, playerRef)
	if err != nil {
		return nil, nil, err
	}

	donations, err := c.db.ListDonations(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}

	stats := computeDonationStats(p.ID, donations)
	return p, stats, nil
}

// computeDonationStats derives deltas and the monthly average from a
// player's chronologically sorted cumulative snapshots. Totals that
// decrease are taken as-is; the delta just goes negative.
func computeDonationStats(playerID int32, donations []model.Donation) *model.DonationStats {
	stats := &model.DonationStats{PlayerID: playerID}
	if len(donations) == 0 {
		return stats
	}

	stats.Entries = make([]model.DonationEntry, 0, len(donations))
	for i, d := range donations {
		delta := 0
		if i > 0 {
			delta = d.Total - donations[i-1].Total
			stats.TotalDonated += delta
		}
		stats.Entries = append(stats.Entries, model.DonationEntry{
			Date:  d.Date,
			Total: d.Total,
			Delta: delta,
		})
	}
	stats.LastTotal = donations[len(donations)-1].Total

	// Monthly averaging works on the last snapshot of each month, then
	// takes differences between consecutive months' totals.
	type month struct{ year, month int }
	lastOfMonth := make(map[month]int)
	order := make([]month, 0, 8)
	for _, d := range donations {
		m := month{d.Date.Year(), int(d.Date.Month())}
		if _, seen := lastOfMonth[m]; !seen {
			order = append(order, m)
		}
		lastOfMonth[m] = d.Total
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].month < order[j].month
	})

	stats.MonthBucketCount = len(order)
	if len(order) < 2 {
		return stats
	}
	sum := 0
	for i := 1; i < len(order); i++ {
		sum += lastOfMonth[order[i]] - lastOfMonth[order[i-1]]
	}
	stats.AvgMonthlyIncr = float64(sum) / float64(len(order)-1)
	return stats
}

func (c *controller) DonationFairness(ctx context.Context) ([]model.FairnessRow, time.Time, error) {
	cutoff, err := c.db.LatestDonationDate(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	if cutoff.IsZero() {
		return []model.FairnessRow{}, cutoff, nil
	}

	players, err := c.db.ListPlayers(ctx, true, model.TEAM_UNKNOWN)
	if err != nil {
		return nil, time.Time{}, err
	}
	counts, err := c.db.CountMatchesPerPlayer(ctx, statsWindowStart, cutoff)
	if err != nil {
		return nil, time.Time{}, err
	}
	totals, err := c.db.DonationTotalsAt(ctx, cutoff)
	if err != nil {
		return nil, time.Time{}, err
	}

	rows := make([]model.FairnessRow, 0, len(players))
	for _, p := range players {
		matches := counts[p.ID]
		total := totals[p.ID]
		expected := matches * c.quota

		index := 0.0
		if expected > 0 {
			index = 100 * float64(total) / float64(expected)
		}
		rows = append(rows, model.FairnessRow{
			PlayerID: p.ID,
			Name:     p.ShortName(),
			Matches:  matches,
			Total:    total,
			Index:    index,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Index != rows[j].Index {
			return rows[i].Index > rows[j].Index
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, cutoff, nil
}
