package controller

import (
	"context"
	"time"

	"github.com/tkops/hcr2_manager/model"
)

func (c *controller) Away(ctx context.Context, subject, durationToken string) (*model.Player, error) {
	weeks, err := model.ParseAwayWeeks(durationToken)
	if err != nil {
		return nil, err
	}

	p, err := c.ResolvePlayer(ctx, subject)
	if err != nil {
		return nil, err
	}

	from := c.clock.Now().UTC().Truncate(time.Second)
	until := from.AddDate(0, 0, 7*weeks)
	if err := c.db.SetPlayerAway(ctx, p.ID, from, until); err != nil {
		return nil, err
	}

	p.AwayFrom = from
	p.AwayUntil = until
	return p, nil
}

func (c *controller) Back(ctx context.Context, subject string) (*model.Player, error) {
	p, err := c.ResolvePlayer(ctx, subject)
	if err != nil {
		return nil, err
	}

	if err := c.db.SetPlayerAway(ctx, p.ID, time.Time{}, time.Time{}); err != nil {
		return nil, err
	}

	p.AwayFrom = time.Time{}
	p.AwayUntil = time.Time{}
	return p, nil
}
