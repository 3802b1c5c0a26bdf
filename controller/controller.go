package controller

import (
	"context"
	"io"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/tkops/hcr2_manager/db"
	"github.com/tkops/hcr2_manager/model"
)

// DefaultDonationQuota is the expected donation per played match, used by
// the fairness report when the config does not override it.
const DefaultDonationQuota = 600

// C encapsulates business logic without worrying about any front-end
// layers. Both the CLI and the chat relay endpoint call into it.
type C interface {
	// ResolvePlayer maps a free-form reference (id, name, alias, discord
	// name or substring) to exactly one player. Several matches return an
	// *AmbiguousError listing the candidates.
	ResolvePlayer(ctx context.Context, ref string) (*model.Player, error)

	GetPlayer(ctx context.Context, id int32) (*model.Player, error)
	ListPlayers(ctx context.Context, opts ListPlayersOptions) ([]model.Player, error)
	ListLeaders(ctx context.Context) ([]model.Player, error)
	// BirthdayPlayerIDs returns the ids of players whose birthday
	// month-day equals today's.
	BirthdayPlayerIDs(ctx context.Context) ([]int32, error)
	AddPlayer(ctx context.Context, p *model.Player) (*model.Player, error)
	EditPlayer(ctx context.Context, id int32, edit PlayerEdit) (*model.Player, error)
	GrepPlayers(ctx context.Context, term string) ([]model.Player, error)

	// Away marks the resolved player absent for n weeks starting now;
	// Back clears the window. Both return the updated player.
	Away(ctx context.Context, subject, durationToken string) (*model.Player, error)
	Back(ctx context.Context, subject string) (*model.Player, error)

	AddSeason(ctx context.Context, number int, division model.Division) (*model.Season, error)
	ListSeasons(ctx context.Context) ([]model.Season, error)
	GetSeason(ctx context.Context, number int) (*model.Season, error)
	SetSeasonDivision(ctx context.Context, number int, division model.Division) error
	DeleteSeason(ctx context.Context, number int) error
	// CurrentSeason is the season whose calendar month contains today.
	CurrentSeason() (int, error)

	AddTeamEvent(ctx context.Context, name, weekToken string, vehicleRefs []string, tracks, maxScore int) (*model.TeamEvent, error)
	GetTeamEvent(ctx context.Context, id int32) (*model.TeamEvent, error)
	ListTeamEvents(ctx context.Context) ([]model.TeamEvent, error)
	EditTeamEvent(ctx context.Context, te *model.TeamEvent) error
	DeleteTeamEvent(ctx context.Context, id int32) error
	// BindTeamEvent picks the team event with the given name whose ISO
	// week Monday is closest to the date.
	BindTeamEvent(ctx context.Context, name string, date time.Time) (*model.TeamEvent, error)

	AddMatch(ctx context.Context, teamEventID int32, start time.Time, opponent string, scoreLadys, scoreOpponent int) (*model.Match, error)
	GetMatch(ctx context.Context, id int32) (*model.Match, error)
	ListMatches(ctx context.Context, season int) ([]model.Match, error)
	EditMatch(ctx context.Context, m *model.Match) error
	DeleteMatch(ctx context.Context, id int32) error
	// ImportMatches ingests historical matches from CSV, skipping
	// malformed rows, rows without a matching team event and duplicates.
	ImportMatches(ctx context.Context, r io.Reader) (*ImportReport, error)

	AddMatchScore(ctx context.Context, matchID int32, playerRef string, score, points int) (*model.MatchScore, error)
	DeleteMatchScore(ctx context.Context, matchID, playerID int32) error
	ListMatchScores(ctx context.Context, matchID int32) ([]model.MatchScore, error)
	// AutoAddScores reads "name score [points]" lines and upserts a score
	// for every line whose name resolves to exactly one player.
	AutoAddScores(ctx context.Context, matchID int32, r io.Reader) (*AutoAddReport, error)

	// SeasonAvgDeltas ranks active players by their average deviation
	// from the per-match median score. Season 0 means the current one.
	SeasonAvgDeltas(ctx context.Context, season int) ([]PlayerDelta, int, error)

	AddDonation(ctx context.Context, playerRef string, date time.Time, total int) (*model.Donation, error)
	DeleteDonation(ctx context.Context, id int32) error
	PlayerDonationStats(ctx context.Context, playerRef string) (*model.Player, *model.DonationStats, error)
	// DonationFairness reports, per active player, the donation total
	// against the expected matches-played times quota.
	DonationFairness(ctx context.Context) ([]model.FairnessRow, time.Time, error)

	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	AddVehicle(ctx context.Context, name, shortname string) (*model.Vehicle, error)
	EditVehicle(ctx context.Context, v *model.Vehicle) error
	DeleteVehicle(ctx context.Context, id int32) error
	ImportVehicles(ctx context.Context, r io.Reader) (int, error)
	ExportVehicles(ctx context.Context, w io.Writer) error
	DropVehicles(ctx context.Context) error
}

type controller struct {
	clock clock.Clock
	db    db.DB
	quota int
}

func New(clock clock.Clock, db db.DB, donationQuota int) (C, error) {
	if donationQuota <= 0 {
		donationQuota = DefaultDonationQuota
	}
	c := &controller{
		clock: clock,
		db:    db,
		quota: donationQuota,
	}
	return c, nil
}
