package db

import (
	"context"
	"time"

	"github.com/tkops/hcr2_manager/model"
)

// SeasonScore is one player's score in one match of a season, joined with
// the player row so the stats code does not need a second lookup.
type SeasonScore struct {
	PlayerID   int32
	PlayerName string
	Active     bool
	MatchID    int32
	Score      int
}

type DB interface {
	GetPlayer(ctx context.Context, id int32) (*model.Player, error)
	// ListPlayers returns players ordered by garage power descending.
	// With activeOnly set only active players are returned; a team other
	// than TEAM_UNKNOWN restricts the result to that team.
	ListPlayers(ctx context.Context, activeOnly bool, team model.Team) ([]model.Player, error)
	ListLeaders(ctx context.Context) ([]model.Player, error)
	// FindPlayersExact matches name, alias or discord name with
	// case-insensitive equality. FindPlayersFuzzy matches the same three
	// columns with a case-insensitive substring. Both sort by name.
	FindPlayersExact(ctx context.Context, ref string) ([]model.Player, error)
	FindPlayersFuzzy(ctx context.Context, term string) ([]model.Player, error)
	ListTeamAliases(ctx context.Context, team model.Team) ([]string, error)
	InsertPlayer(ctx context.Context, p *model.Player) (int32, error)
	UpdatePlayer(ctx context.Context, p *model.Player) error
	// SetPlayerAway stores the away window; two zero times clear it.
	SetPlayerAway(ctx context.Context, id int32, from, until time.Time) error

	InsertSeason(ctx context.Context, s *model.Season) error
	GetSeason(ctx context.Context, number int) (*model.Season, error)
	ListSeasons(ctx context.Context) ([]model.Season, error)
	UpdateSeasonDivision(ctx context.Context, number int, division model.Division) error
	DeleteSeason(ctx context.Context, number int) error

	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id int32) (*model.Vehicle, error)
	GetVehicleByShortname(ctx context.Context, shortname string) (*model.Vehicle, error)
	InsertVehicle(ctx context.Context, v *model.Vehicle) (int32, error)
	UpdateVehicle(ctx context.Context, v *model.Vehicle) error
	DeleteVehicle(ctx context.Context, id int32) error
	DropVehicles(ctx context.Context) error

	InsertTeamEvent(ctx context.Context, te *model.TeamEvent) (int32, error)
	GetTeamEvent(ctx context.Context, id int32) (*model.TeamEvent, error)
	ListTeamEvents(ctx context.Context) ([]model.TeamEvent, error)
	FindTeamEventsByName(ctx context.Context, name string) ([]model.TeamEvent, error)
	UpdateTeamEvent(ctx context.Context, te *model.TeamEvent) error
	DeleteTeamEvent(ctx context.Context, id int32) error

	InsertMatch(ctx context.Context, m *model.Match) (int32, error)
	// InsertMatches writes the whole batch in a single transaction, so a
	// failed import leaves the store untouched.
	InsertMatches(ctx context.Context, matches []model.Match) error
	GetMatch(ctx context.Context, id int32) (*model.Match, error)
	FindMatch(ctx context.Context, teamEventID int32, season int, start time.Time, opponent string) (*model.Match, error)
	// ListMatches returns matches of the given season, or all matches
	// when season is 0, newest first.
	ListMatches(ctx context.Context, season int) ([]model.Match, error)
	UpdateMatch(ctx context.Context, m *model.Match) error
	DeleteMatch(ctx context.Context, id int32) error

	UpsertMatchScore(ctx context.Context, ms *model.MatchScore) error
	DeleteMatchScore(ctx context.Context, matchID, playerID int32) error
	ListMatchScores(ctx context.Context, matchID int32) ([]model.MatchScore, error)
	SeasonScores(ctx context.Context, season int) ([]SeasonScore, error)
	// CountMatchesPerPlayer counts distinct matches with a score row per
	// player where the match start is within [from, to].
	CountMatchesPerPlayer(ctx context.Context, from, to time.Time) (map[int32]int, error)

	UpsertDonation(ctx context.Context, d *model.Donation) error
	DeleteDonation(ctx context.Context, id int32) error
	// ListDonations returns a player's snapshots in chronological order.
	ListDonations(ctx context.Context, playerID int32) ([]model.Donation, error)
	// LatestDonationDate returns the newest donation date in the store,
	// or the zero time when there are no donations at all.
	LatestDonationDate(ctx context.Context) (time.Time, error)
	// DonationTotalsAt returns, per player, the total of the most recent
	// snapshot at or before the cutoff.
	DonationTotalsAt(ctx context.Context, cutoff time.Time) (map[int32]int, error)

	Close()
}
