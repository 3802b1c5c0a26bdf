package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/tkops/hcr2_manager/containers"
	"github.com/tkops/hcr2_manager/model"
)

var (
	// A test global db instance to use for all of the tests instead of
	// setting up a new one each time.
	testDB DB
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func TestDB_playerSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	p := &model.Player{
		Name:        "Dragonfly",
		Alias:       "dra",
		GaragePower: 91234,
		Active:      true,
		Leader:      false,
		Birthday:    "03-14",
		Team:        model.TEAM_PLTE,
		DiscordName: "dragonfly#123",
		About:       "founding member",
		Language:    "en",
	}

	id, err := testDB.InsertPlayer(ctx, p)
	assertFatalf(t, err == nil, "error inserting player: %v", err)
	assertFatalf(t, id > 0, "expected a positive id, got %d", id)

	res, err := testDB.GetPlayer(ctx, id)
	assertFatalf(t, err == nil, "error retrieving player: %v", err)

	assertEquals(t, "Name", p.Name, res.Name)
	assertEquals(t, "Alias", p.Alias, res.Alias)
	assertEquals(t, "GaragePower", p.GaragePower, res.GaragePower)
	assertEquals(t, "Active", p.Active, res.Active)
	assertEquals(t, "Leader", p.Leader, res.Leader)
	assertEquals(t, "Birthday", p.Birthday, res.Birthday)
	assertEquals(t, "Team", p.Team, res.Team)
	assertEquals(t, "DiscordName", p.DiscordName, res.DiscordName)
	assertEquals(t, "About", p.About, res.About)
	assertEquals(t, "Language", p.Language, res.Language)

	if res.Created.IsZero() {
		t.Errorf("expected created time to not be zero")
	}
	if res.IsAway() {
		t.Errorf("expected no away window on a fresh player")
	}

	// Update a field and make sure the change persists.
	res.GaragePower = res.GaragePower + 500
	res.Team = model.TEAM_PL1
	err = testDB.UpdatePlayer(ctx, res)
	assertFatalf(t, err == nil, "error updating player: %v", err)

	res2, err := testDB.GetPlayer(ctx, id)
	assertFatalf(t, err == nil, "error getting updated player: %v", err)
	assertEquals(t, "GaragePower", res.GaragePower, res2.GaragePower)
	assertEquals(t, "Team", model.TEAM_PL1, res2.Team)

	// Lookup a player that doesn't exist
	res3, err := testDB.GetPlayer(ctx, 99999)
	assertFatalf(t, err != nil, "should have had an error looking up missing player")
	assertEquals(t, "error type", true, errors.Is(err, ErrPlayerNotFound))
	if res3 != nil {
		t.Errorf("expected res3 to be nil, but was %v", res3)
	}
}

func TestDB_playerAwayWindow(t *testing.T) {
	ctx := context.Background()
	id, err := testDB.InsertPlayer(ctx, &model.Player{Name: "AwayTester", Team: model.TEAM_PL2, Active: true})
	assertFatalf(t, err == nil, "error inserting player: %v", err)

	from := time.Date(2025, time.March, 1, 12, 30, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 14)
	err = testDB.SetPlayerAway(ctx, id, from, until)
	assertFatalf(t, err == nil, "error setting away window: %v", err)

	p, err := testDB.GetPlayer(ctx, id)
	assertFatalf(t, err == nil, "error getting player: %v", err)
	assertTrue(t, "IsAway", p.IsAway())
	assertEquals(t, "AwayFrom", from.Unix(), p.AwayFrom.Unix())
	assertEquals(t, "AwayUntil", until.Unix(), p.AwayUntil.Unix())

	// Clearing writes NULLs.
	err = testDB.SetPlayerAway(ctx, id, time.Time{}, time.Time{})
	assertFatalf(t, err == nil, "error clearing away window: %v", err)

	p, err = testDB.GetPlayer(ctx, id)
	assertFatalf(t, err == nil, "error getting player: %v", err)
	assertEquals(t, "IsAway", false, p.IsAway())
}

func TestDB_playerSearch(t *testing.T) {
	ctx := context.Background()

	names := []model.Player{
		{Name: "Ann", Alias: "ann", Team: model.TEAM_PLTE, Active: true},
		{Name: "Anna", DiscordName: "anna#42", Team: model.TEAM_PL1, Active: true},
	}
	for i := range names {
		_, err := testDB.InsertPlayer(ctx, &names[i])
		assertFatalf(t, err == nil, "error inserting player: %v", err)
	}

	exact, err := testDB.FindPlayersExact(ctx, "ann")
	assertFatalf(t, err == nil, "error in exact search: %v", err)
	assertEquals(t, "exact count", 1, len(exact))
	assertEquals(t, "exact name", "Ann", exact[0].Name)

	fuzzy, err := testDB.FindPlayersFuzzy(ctx, "an")
	assertFatalf(t, err == nil, "error in fuzzy search: %v", err)
	assertTrue(t, "fuzzy count >= 2", len(fuzzy) >= 2)

	none, err := testDB.FindPlayersExact(ctx, "nosuchplayer")
	assertFatalf(t, err == nil, "error in exact search: %v", err)
	assertEquals(t, "no match count", 0, len(none))

	// LIKE metacharacters in the term match literally, not as wildcards.
	wild, err := testDB.FindPlayersFuzzy(ctx, "%")
	assertFatalf(t, err == nil, "error in fuzzy search: %v", err)
	assertEquals(t, "wildcard term count", 0, len(wild))
}

func TestEscapeLikeTerm(t *testing.T) {
	tests := map[string]string{
		"plain":   "plain",
		"%":       `\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
		"100%":    `100\%`,
	}
	for input, want := range tests {
		if got := escapeLikeTerm(input); got != want {
			t.Errorf("escapeLikeTerm(%q) incorrect, wanted: %q, got: %q", input, want, got)
		}
	}
}

func TestDB_seasons(t *testing.T) {
	ctx := context.Background()

	s := &model.Season{Number: 13, Name: "May 22", Start: time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC), Division: model.DIV_1}
	err := testDB.InsertSeason(ctx, s)
	assertFatalf(t, err == nil, "error inserting season: %v", err)

	// Inserting the same season number again is a conflict.
	err = testDB.InsertSeason(ctx, s)
	assertEquals(t, "duplicate season", true, errors.Is(err, ErrDuplicate))

	got, err := testDB.GetSeason(ctx, 13)
	assertFatalf(t, err == nil, "error getting season: %v", err)
	assertEquals(t, "Name", "May 22", got.Name)
	assertEquals(t, "Division", model.DIV_1, got.Division)
	assertEquals(t, "Start", s.Start.Unix(), got.Start.Unix())

	err = testDB.UpdateSeasonDivision(ctx, 13, model.DIV_CC)
	assertFatalf(t, err == nil, "error updating division: %v", err)
	got, err = testDB.GetSeason(ctx, 13)
	assertFatalf(t, err == nil, "error getting season: %v", err)
	assertEquals(t, "Division", model.DIV_CC, got.Division)

	err = testDB.DeleteSeason(ctx, 13)
	assertFatalf(t, err == nil, "error deleting season: %v", err)
	_, err = testDB.GetSeason(ctx, 13)
	assertEquals(t, "season gone", true, errors.Is(err, ErrSeasonNotFound))
}

func TestDB_teamEventsAndMatches(t *testing.T) {
	ctx := context.Background()

	vid, err := testDB.InsertVehicle(ctx, &model.Vehicle{Name: "Supercar", Shortname: "sc"})
	assertFatalf(t, err == nil, "error inserting vehicle: %v", err)

	te := &model.TeamEvent{
		Name:             "Best Event",
		ISOYear:          2025,
		ISOWeek:          37,
		Tracks:           model.DefaultTracks,
		MaxScorePerTrack: model.DefaultMaxScorePerTrack,
		Vehicles:         []model.Vehicle{{ID: vid, Name: "Supercar", Shortname: "sc"}},
	}
	id1, err := testDB.InsertTeamEvent(ctx, te)
	assertFatalf(t, err == nil, "error inserting team event: %v", err)

	te2 := &model.TeamEvent{Name: "Best Event", ISOYear: 2025, ISOWeek: 38, Tracks: 4, MaxScorePerTrack: 15000}
	_, err = testDB.InsertTeamEvent(ctx, te2)
	assertFatalf(t, err == nil, "error inserting second team event: %v", err)

	// Same name across different weeks is allowed.
	byName, err := testDB.FindTeamEventsByName(ctx, "Best Event")
	assertFatalf(t, err == nil, "error finding team events: %v", err)
	assertEquals(t, "events with name", 2, len(byName))

	loaded, err := testDB.GetTeamEvent(ctx, id1)
	assertFatalf(t, err == nil, "error getting team event: %v", err)
	assertEquals(t, "vehicle count", 1, len(loaded.Vehicles))
	assertEquals(t, "vehicle shortname", "sc", loaded.Vehicles[0].Shortname)

	m := &model.Match{
		TeamEventID:  id1,
		SeasonNumber: 53,
		Start:        time.Date(2025, time.September, 9, 0, 0, 0, 0, time.UTC),
		Opponent:     "Red Rockets",
	}
	mid, err := testDB.InsertMatch(ctx, m)
	assertFatalf(t, err == nil, "error inserting match: %v", err)

	found, err := testDB.FindMatch(ctx, id1, 53, m.Start, "Red Rockets")
	assertFatalf(t, err == nil, "error finding match: %v", err)
	assertEquals(t, "match id", mid, found.ID)

	_, err = testDB.FindMatch(ctx, id1, 53, m.Start, "Blue Rockets")
	assertEquals(t, "match not found", true, errors.Is(err, ErrMatchNotFound))
}

func TestDB_matchScoreUpsert(t *testing.T) {
	ctx := context.Background()

	pid, err := testDB.InsertPlayer(ctx, &model.Player{Name: "ScoreTester", Team: model.TEAM_PLTE, Active: true})
	assertFatalf(t, err == nil, "error inserting player: %v", err)
	teid, err := testDB.InsertTeamEvent(ctx, &model.TeamEvent{Name: "Score Event", ISOYear: 2025, ISOWeek: 10, Tracks: 4, MaxScorePerTrack: 15000})
	assertFatalf(t, err == nil, "error inserting team event: %v", err)
	mid, err := testDB.InsertMatch(ctx, &model.Match{
		TeamEventID:  teid,
		SeasonNumber: 47,
		Start:        time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC),
		Opponent:     "Hill Kings",
	})
	assertFatalf(t, err == nil, "error inserting match: %v", err)

	err = testDB.UpsertMatchScore(ctx, &model.MatchScore{MatchID: mid, PlayerID: pid, Score: 41000, Points: 200})
	assertFatalf(t, err == nil, "error upserting score: %v", err)

	// A second upsert for the same (match, player) overwrites.
	err = testDB.UpsertMatchScore(ctx, &model.MatchScore{MatchID: mid, PlayerID: pid, Score: 45500, Points: 220})
	assertFatalf(t, err == nil, "error upserting score again: %v", err)

	scores, err := testDB.ListMatchScores(ctx, mid)
	assertFatalf(t, err == nil, "error listing scores: %v", err)
	assertEquals(t, "score count", 1, len(scores))
	assertEquals(t, "score", 45500, scores[0].Score)
	assertEquals(t, "points", 220, scores[0].Points)

	season, err := testDB.SeasonScores(ctx, 47)
	assertFatalf(t, err == nil, "error loading season scores: %v", err)
	assertEquals(t, "season score count", 1, len(season))
	assertEquals(t, "season score player", pid, season[0].PlayerID)

	counts, err := testDB.CountMatchesPerPlayer(ctx,
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	assertFatalf(t, err == nil, "error counting matches: %v", err)
	assertEquals(t, "match count", 1, counts[pid])
}

func TestDB_donations(t *testing.T) {
	ctx := context.Background()

	pid, err := testDB.InsertPlayer(ctx, &model.Player{Name: "DonationTester", Team: model.TEAM_PLTE, Active: true})
	assertFatalf(t, err == nil, "error inserting player: %v", err)

	d1 := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)
	err = testDB.UpsertDonation(ctx, &model.Donation{PlayerID: pid, Date: d1, Total: 1000})
	assertFatalf(t, err == nil, "error upserting donation: %v", err)
	err = testDB.UpsertDonation(ctx, &model.Donation{PlayerID: pid, Date: d2, Total: 2400})
	assertFatalf(t, err == nil, "error upserting donation: %v", err)

	// Upsert on the same date overwrites the total.
	err = testDB.UpsertDonation(ctx, &model.Donation{PlayerID: pid, Date: d2, Total: 2600})
	assertFatalf(t, err == nil, "error upserting donation: %v", err)

	list, err := testDB.ListDonations(ctx, pid)
	assertFatalf(t, err == nil, "error listing donations: %v", err)
	assertEquals(t, "donation count", 2, len(list))
	assertEquals(t, "first total", 1000, list[0].Total)
	assertEquals(t, "second total", 2600, list[1].Total)

	latest, err := testDB.LatestDonationDate(ctx)
	assertFatalf(t, err == nil, "error getting latest donation date: %v", err)
	assertTrue(t, "latest not before d2", !latest.Before(d2))

	totals, err := testDB.DonationTotalsAt(ctx, d2)
	assertFatalf(t, err == nil, "error getting totals: %v", err)
	assertEquals(t, "total at cutoff", 2600, totals[pid])

	totalsEarly, err := testDB.DonationTotalsAt(ctx, d1)
	assertFatalf(t, err == nil, "error getting totals: %v", err)
	assertEquals(t, "total at earlier cutoff", 1000, totalsEarly[pid])
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}
