package mockdb

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tkops/hcr2_manager/db"
	"github.com/tkops/hcr2_manager/model"
)

type DB struct {
	mock.Mock
}

func (m *DB) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	args := m.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (m *DB) ListPlayers(ctx context.Context, activeOnly bool, team model.Team) ([]model.Player, error) {
	args := m.Called(ctx, activeOnly, team)
	return playersOrNil(args), args.Error(1)
}

func (m *DB) ListLeaders(ctx context.Context) ([]model.Player, error) {
	args := m.Called(ctx)
	return playersOrNil(args), args.Error(1)
}

func (m *DB) FindPlayersExact(ctx context.Context, ref string) ([]model.Player, error) {
	args := m.Called(ctx, ref)
	return playersOrNil(args), args.Error(1)
}

func (m *DB) FindPlayersFuzzy(ctx context.Context, term string) ([]model.Player, error) {
	args := m.Called(ctx, term)
	return playersOrNil(args), args.Error(1)
}

func (m *DB) ListTeamAliases(ctx context.Context, team model.Team) ([]string, error) {
	args := m.Called(ctx, team)

	var aliases []string
	if args.Get(0) != nil {
		aliases = args.Get(0).([]string)
	}
	return aliases, args.Error(1)
}

func (m *DB) InsertPlayer(ctx context.Context, p *model.Player) (int32, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int32), args.Error(1)
}

func (m *DB) UpdatePlayer(ctx context.Context, p *model.Player) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *DB) SetPlayerAway(ctx context.Context, id int32, from, until time.Time) error {
	args := m.Called(ctx, id, from, until)
	return args.Error(0)
}

func (m *DB) InsertSeason(ctx context.Context, s *model.Season) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *DB) GetSeason(ctx context.Context, number int) (*model.Season, error) {
	args := m.Called(ctx, number)

	var s *model.Season
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Season)
	}
	return s, args.Error(1)
}

func (m *DB) ListSeasons(ctx context.Context) ([]model.Season, error) {
	args := m.Called(ctx)

	var seasons []model.Season
	if args.Get(0) != nil {
		seasons = args.Get(0).([]model.Season)
	}
	return seasons, args.Error(1)
}

func (m *DB) UpdateSeasonDivision(ctx context.Context, number int, division model.Division) error {
	args := m.Called(ctx, number, division)
	return args.Error(0)
}

func (m *DB) DeleteSeason(ctx context.Context, number int) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *DB) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	args := m.Called(ctx)

	var vehicles []model.Vehicle
	if args.Get(0) != nil {
		vehicles = args.Get(0).([]model.Vehicle)
	}
	return vehicles, args.Error(1)
}

func (m *DB) GetVehicle(ctx context.Context, id int32) (*model.Vehicle, error) {
	args := m.Called(ctx, id)
	return vehicleOrNil(args), args.Error(1)
}

func (m *DB) GetVehicleByShortname(ctx context.Context, shortname string) (*model.Vehicle, error) {
	args := m.Called(ctx, shortname)
	return vehicleOrNil(args), args.Error(1)
}

func (m *DB) InsertVehicle(ctx context.Context, v *model.Vehicle) (int32, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(int32), args.Error(1)
}

func (m *DB) UpdateVehicle(ctx context.Context, v *model.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *DB) DeleteVehicle(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DB) DropVehicles(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *DB) InsertTeamEvent(ctx context.Context, te *model.TeamEvent) (int32, error) {
	args := m.Called(ctx, te)
	return args.Get(0).(int32), args.Error(1)
}

func (m *DB) GetTeamEvent(ctx context.Context, id int32) (*model.TeamEvent, error) {
	args := m.Called(ctx, id)

	var te *model.TeamEvent
	if args.Get(0) != nil {
		te = args.Get(0).(*model.TeamEvent)
	}
	return te, args.Error(1)
}

func (m *DB) ListTeamEvents(ctx context.Context) ([]model.TeamEvent, error) {
	args := m.Called(ctx)
	return teamEventsOrNil(args), args.Error(1)
}

func (m *DB) FindTeamEventsByName(ctx context.Context, name string) ([]model.TeamEvent, error) {
	args := m.Called(ctx, name)
	return teamEventsOrNil(args), args.Error(1)
}

func (m *DB) UpdateTeamEvent(ctx context.Context, te *model.TeamEvent) error {
	args := m.Called(ctx, te)
	return args.Error(0)
}

func (m *DB) DeleteTeamEvent(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DB) InsertMatch(ctx context.Context, match *model.Match) (int32, error) {
	args := m.Called(ctx, match)
	return args.Get(0).(int32), args.Error(1)
}

func (m *DB) InsertMatches(ctx context.Context, matches []model.Match) error {
	args := m.Called(ctx, matches)
	return args.Error(0)
}

func (m *DB) GetMatch(ctx context.Context, id int32) (*model.Match, error) {
	args := m.Called(ctx, id)
	return matchOrNil(args), args.Error(1)
}

func (m *DB) FindMatch(ctx context.Context, teamEventID int32, season int, start time.Time, opponent string) (*model.Match, error) {
	args := m.Called(ctx, teamEventID, season, start, opponent)
	return matchOrNil(args), args.Error(1)
}

func (m *DB) ListMatches(ctx context.Context, season int) ([]model.Match, error) {
	args := m.Called(ctx, season)

	var matches []model.Match
	if args.Get(0) != nil {
		matches = args.Get(0).([]model.Match)
	}
	return matches, args.Error(1)
}

func (m *DB) UpdateMatch(ctx context.Context, match *model.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *DB) DeleteMatch(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DB) UpsertMatchScore(ctx context.Context, ms *model.MatchScore) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *DB) DeleteMatchScore(ctx context.Context, matchID, playerID int32) error {
	args := m.Called(ctx, matchID, playerID)
	return args.Error(0)
}

func (m *DB) ListMatchScores(ctx context.Context, matchID int32) ([]model.MatchScore, error) {
	args := m.Called(ctx, matchID)

	var scores []model.MatchScore
	if args.Get(0) != nil {
		scores = args.Get(0).([]model.MatchScore)
	}
	return scores, args.Error(1)
}

func (m *DB) SeasonScores(ctx context.Context, season int) ([]db.SeasonScore, error) {
	args := m.Called(ctx, season)

	var scores []db.SeasonScore
	if args.Get(0) != nil {
		scores = args.Get(0).([]db.SeasonScore)
	}
	return scores, args.Error(1)
}

func (m *DB) CountMatchesPerPlayer(ctx context.Context, from, to time.Time) (map[int32]int, error) {
	args := m.Called(ctx, from, to)

	var counts map[int32]int
	if args.Get(0) != nil {
		counts = args.Get(0).(map[int32]int)
	}
	return counts, args.Error(1)
}

func (m *DB) UpsertDonation(ctx context.Context, d *model.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DB) DeleteDonation(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DB) ListDonations(ctx context.Context, playerID int32) ([]model.Donation, error) {
	args := m.Called(ctx, playerID)

	var donations []model.Donation
	if args.Get(0) != nil {
		donations = args.Get(0).([]model.Donation)
	}
	return donations, args.Error(1)
}

func (m *DB) LatestDonationDate(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *DB) DonationTotalsAt(ctx context.Context, cutoff time.Time) (map[int32]int, error) {
	args := m.Called(ctx, cutoff)

	var totals map[int32]int
	if args.Get(0) != nil {
		totals = args.Get(0).(map[int32]int)
	}
	return totals, args.Error(1)
}

func (m *DB) Close() {
	m.Called()
}

func playersOrNil(args mock.Arguments) []model.Player {
	var players []model.Player
	if args.Get(0) != nil {
		players = args.Get(0).([]model.Player)
	}
	return players
}

func teamEventsOrNil(args mock.Arguments) []model.TeamEvent {
	var events []model.TeamEvent
	if args.Get(0) != nil {
		events = args.Get(0).([]model.TeamEvent)
	}
	return events
}

func vehicleOrNil(args mock.Arguments) *model.Vehicle {
	if args.Get(0) != nil {
		return args.Get(0).(*model.Vehicle)
	}
	return nil
}

func matchOrNil(args mock.Arguments) *model.Match {
	if args.Get(0) != nil {
		return args.Get(0).(*model.Match)
	}
	return nil
}
