package controller

import (
	"context"

	"github.com/tkops/hcr2_manager/model"
)

func (c *controller) AddSeason(ctx context.Context, number int, division model.Division) (*model.Season, error) {
	start, err := model.SeasonStart(number)
	if err != nil {
		return nil, err
	}
	name, err := model.SeasonName(number)
	if err != nil {
		return nil, err
	}

	s := &model.Season{
		Number:   number,
		Name:     name,
		Start:    start,
		Division: division,
	}
	if err := c.db.InsertSeason(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *controller) ListSeasons(ctx context.Context) ([]model.Season, error) {
	return c.db.ListSeasons(ctx)
}

func (c *controller) GetSeason(ctx context.Context, number int) (*model.Season, error) {
	return c.db.GetSeason(ctx, number)
}

func (c *controller) SetSeasonDivision(ctx context.Context, number int, division model.Division) error {
	return c.db.UpdateSeasonDivision(ctx, number, division)
}

func (c *controller) DeleteSeason(ctx context.Context, number int) error {
	return c.db.DeleteSeason(ctx, number)
}

func (c *controller) CurrentSeason() (int, error) {
	return model.SeasonOf(c.clock.Now())
}
