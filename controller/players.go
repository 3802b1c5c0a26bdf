package controller

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tkops/hcr2_manager/model"
)

// ListPlayersOptions narrows and orders the player list. SortByName
// switches from the default garage power ordering.
type ListPlayersOptions struct {
	ActiveOnly bool
	Team       model.Team
	SortByName bool
}

// PlayerEdit is a partial update: nil fields keep their current value.
type PlayerEdit struct {
	Name              *string
	Alias             *string
	GaragePower       *int
	Active            *bool
	Leader            *bool
	Birthday          *string // input format DD.MM.
	Team              *model.Team
	DiscordName       *string
	About             *string
	PreferredVehicles *string
	Playstyle         *string
	Language          *string
	Emoji             *string
}

func (c *controller) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	return c.db.GetPlayer(ctx, id)
}

func (c *controller) ListPlayers(ctx context.Context, opts ListPlayersOptions) ([]model.Player, error) {
	players, err := c.db.ListPlayers(ctx, opts.ActiveOnly, opts.Team)
	if err != nil {
		return nil, err
	}
	if opts.SortByName {
		sort.Slice(players, func(i, j int) bool {
			return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
		})
	}
	return players, nil
}

func (c *controller) ListLeaders(ctx context.Context) ([]model.Player, error) {
	return c.db.ListLeaders(ctx)
}

func (c *controller) BirthdayPlayerIDs(ctx context.Context) ([]int32, error) {
	players, err := c.db.ListPlayers(ctx, false, model.TEAM_UNKNOWN)
	if err != nil {
		return nil, err
	}

	today := c.clock.Now().Format("01-02")
	ids := make([]int32, 0, 2)
	for _, p := range players {
		if p.Birthday == today {
			ids = append(ids, p.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (c *controller) AddPlayer(ctx context.Context, p *model.Player) (*model.Player, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("player name must not be empty")
	}
	if p.Team == model.TEAM_UNKNOWN {
		return nil, fmt.Errorf("invalid team, expected PLTE or PL1-PL9")
	}
	if p.GaragePower < 0 {
		return nil, fmt.Errorf("garage power must not be negative")
	}
	if err := c.checkAliasRule(ctx, p.Team, p.Alias, ""); err != nil {
		return nil, err
	}

	id, err := c.db.InsertPlayer(ctx, p)
	if err != nil {
		return nil, err
	}
	return c.db.GetPlayer(ctx, id)
}

func (c *controller) EditPlayer(ctx context.Context, id int32, edit PlayerEdit) (*model.Player, error) {
	p, err := c.db.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if edit.Name != nil {
		if strings.TrimSpace(*edit.Name) == "" {
			return nil, fmt.Errorf("player name must not be empty")
		}
		p.Name = *edit.Name
	}
	if edit.GaragePower != nil {
		if *edit.GaragePower < 0 {
			return nil, fmt.Errorf("garage power must not be negative")
		}
		p.GaragePower = *edit.GaragePower
	}
	if edit.Active != nil {
		p.Active = *edit.Active
	}
	if edit.Leader != nil {
		p.Leader = *edit.Leader
	}
	if edit.Birthday != nil {
		stored, err := model.ParseBirthday(*edit.Birthday)
		if err != nil {
			return nil, err
		}
		p.Birthday = stored
	}
	if edit.Team != nil {
		if *edit.Team == model.TEAM_UNKNOWN {
			return nil, fmt.Errorf("invalid team, expected PLTE or PL1-PL9")
		}
		p.Team = *edit.Team
	}
	if edit.DiscordName != nil {
		p.DiscordName = *edit.DiscordName
	}
	if edit.About != nil {
		p.About = *edit.About
	}
	if edit.PreferredVehicles != nil {
		p.PreferredVehicles = *edit.PreferredVehicles
	}
	if edit.Playstyle != nil {
		p.Playstyle = *edit.Playstyle
	}
	if edit.Language != nil {
		p.Language = *edit.Language
	}
	if edit.Emoji != nil {
		p.Emoji = *edit.Emoji
	}
	if edit.Alias != nil {
		if err := c.checkAliasRule(ctx, p.Team, *edit.Alias, p.Alias); err != nil {
			return nil, err
		}
		p.Alias = *edit.Alias
	} else if edit.Team != nil {
		// Moving into PLTE with an existing alias re-checks the rule.
		if err := c.checkAliasRule(ctx, p.Team, p.Alias, p.Alias); err != nil {
			return nil, err
		}
	}

	if err := c.db.UpdatePlayer(ctx, p); err != nil {
		return nil, err
	}
	return c.db.GetPlayer(ctx, id)
}

func (c *controller) GrepPlayers(ctx context.Context, term string) ([]model.Player, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("search term must not be empty")
	}
	return c.db.FindPlayersFuzzy(ctx, term)
}

// checkAliasRule enforces the PLTE alias invariant: no alias may contain
// or be contained by another PLTE alias. skip is the player's own current
// alias, exempted so edits that keep the alias do not conflict with it.
func (c *controller) checkAliasRule(ctx context.Context, team model.Team, alias, skip string) error {
	if team != model.TEAM_PLTE || alias == "" {
		return nil
	}

	existing, err := c.db.ListTeamAliases(ctx, model.TEAM_PLTE)
	if err != nil {
		return err
	}

	lower := strings.ToLower(alias)
	for _, e := range existing {
		other := strings.ToLower(e)
		if skip != "" && other == strings.ToLower(skip) {
			continue
		}
		if strings.Contains(other, lower) || strings.Contains(lower, other) {
			return fmt.Errorf("alias '%s' conflicts with existing PLTE alias '%s'", alias, e)
		}
	}
	return nil
}
