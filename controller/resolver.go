package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tkops/hcr2_manager/model"
)

// AmbiguousError is returned when a player reference matches more than
// one player. Candidates are sorted by name.
type AmbiguousError struct {
	Ref        string
	Candidates []model.Player
}

func (e *AmbiguousError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for _, p := range e.Candidates {
		names = append(names, p.Name)
	}
	return fmt.Sprintf("'%s' matches %d players: %s", e.Ref, len(e.Candidates), strings.Join(names, ", "))
}

func (c *controller) ResolvePlayer(ctx context.Context, ref string) (*model.Player, error) {
	ref = strings.TrimSpace(ref)

	if isAllDigits(ref) {
		id, err := strconv.ParseInt(ref, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid player id '%s': %w", ref, err)
		}
		return c.db.GetPlayer(ctx, int32(id))
	}

	// Exact tier: case-insensitive equality on name, alias or discord name.
	matches, err := c.db.FindPlayersExact(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p, err := pickUnique(ref, matches); p != nil || err != nil {
		return p, err
	}

	// Fuzzy tier: substring on the same three columns.
	matches, err = c.db.FindPlayersFuzzy(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p, err := pickUnique(ref, matches); p != nil || err != nil {
		return p, err
	}

	return nil, fmt.Errorf("no player found for '%s'", ref)
}

// pickUnique returns the single match, an AmbiguousError for several, or
// (nil, nil) when the tier produced nothing and the next one should run.
func pickUnique(ref string, matches []model.Player) (*model.Player, error) {
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, &AmbiguousError{Ref: ref, Candidates: matches}
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
