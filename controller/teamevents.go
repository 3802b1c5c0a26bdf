package controller

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tkops/hcr2_manager/model"
)

var weekTokenRegex = regexp.MustCompile(`^(\d{4})/(\d{1,2})$`)

// parseWeekToken parses the YYYY/WW form used by the teamevent commands.
func parseWeekToken(tok string) (int, int, error) {
	m := weekTokenRegex.FindStringSubmatch(strings.TrimSpace(tok))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid week '%s', expected YYYY/WW", tok)
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("invalid week '%s', week must be 1-53", tok)
	}
	return year, week, nil
}

func (c *controller) AddTeamEvent(ctx context.Context, name, weekToken string, vehicleRefs []string, tracks, maxScore int) (*model.TeamEvent, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("team event name must not be empty")
	}
	year, week, err := parseWeekToken(weekToken)
	if err != nil {
		return nil, err
	}
	if tracks <= 0 {
		tracks = model.DefaultTracks
	}
	if maxScore <= 0 {
		maxScore = model.DefaultMaxScorePerTrack
	}

	vehicles, err := c.resolveVehicles(ctx, vehicleRefs)
	if err != nil {
		return nil, err
	}

	te := &model.TeamEvent{
		Name:             name,
		ISOYear:          year,
		ISOWeek:          week,
		Tracks:           tracks,
		MaxScorePerTrack: maxScore,
		Vehicles:         vehicles,
	}
	id, err := c.db.InsertTeamEvent(ctx, te)
	if err != nil {
		return nil, err
	}
	return c.db.GetTeamEvent(ctx, id)
}

func (c *controller) GetTeamEvent(ctx context.Context, id int32) (*model.TeamEvent, error) {
	return c.db.GetTeamEvent(ctx, id)
}

func (c *controller) ListTeamEvents(ctx context.Context) ([]model.TeamEvent, error) {
	return c.db.ListTeamEvents(ctx)
}

func (c *controller) EditTeamEvent(ctx context.Context, te *model.TeamEvent) error {
	return c.db.UpdateTeamEvent(ctx, te)
}

func (c *controller) DeleteTeamEvent(ctx context.Context, id int32) error {
	return c.db.DeleteTeamEvent(ctx, id)
}

// BindTeamEvent disambiguates recurring event names by week proximity:
// of all events with the name, the one whose ISO week Monday is closest
// to the match date wins. Equal distances go to the smallest id, which
// FindTeamEventsByName's ordering already guarantees.
func (c *controller) BindTeamEvent(ctx context.Context, name string, date time.Time) (*model.TeamEvent, error) {
	events, err := c.db.FindTeamEventsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no team event named '%s'", name)
	}
	if len(events) == 1 {
		return &events[0], nil
	}

	best := 0
	bestDist := dayDistance(date, events[0].WeekStart())
	for i := 1; i < len(events); i++ {
		if d := dayDistance(date, events[i].WeekStart()); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return &events[best], nil
}

func dayDistance(a, b time.Time) int {
	d := int(a.Sub(b).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}

// resolveVehicles accepts ids or shortnames.
func (c *controller) resolveVehicles(ctx context.Context, refs []string) ([]model.Vehicle, error) {
	vehicles := make([]model.Vehicle, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}

		if isAllDigits(ref) {
			id, _ := strconv.ParseInt(ref, 10, 32)
			v, err := c.db.GetVehicle(ctx, int32(id))
			if err != nil {
				return nil, fmt.Errorf("vehicle '%s': %w", ref, err)
			}
			vehicles = append(vehicles, *v)
			continue
		}

		v, err := c.db.GetVehicleByShortname(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("vehicle '%s': %w", ref, err)
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, nil
}
