package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/model"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PlayerTable is the compact listing used by the player list commands.
func PlayerTable(players []model.Player, now time.Time) string {
	t := NewTable("ID", "NAME", "ALIAS", "TEAM", "GP", "ACTIVE", "AWAY")
	t.Align(0, AlignRight).Align(4, AlignRight)
	for i := range players {
		p := &players[i]
		away := ""
		if p.IsAwayAt(now) {
			away = p.FormattedAwayWindow()
		}
		t.AddRow(p.ID, p.Name, p.Alias, p.Team, FormatK(p.GaragePower), yesNo(p.Active), away)
	}
	return t.String()
}

// PlayerDetails is the full profile block for player show.
func PlayerDetails(p *model.Player, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Player %d: %s\n", p.ID, p.Name)
	fmt.Fprintf(&b, "  Team:     %s\n", p.Team)
	fmt.Fprintf(&b, "  Alias:    %s\n", p.Alias)
	fmt.Fprintf(&b, "  GP:       %s\n", FormatK(p.GaragePower))
	fmt.Fprintf(&b, "  Active:   %s\n", yesNo(p.Active))
	fmt.Fprintf(&b, "  Leader:   %s\n", yesNo(p.Leader))
	fmt.Fprintf(&b, "  Birthday: %s\n", p.FormattedBirthday())
	if p.DiscordName != "" {
		fmt.Fprintf(&b, "  Discord:  %s\n", p.DiscordName)
	}
	if p.IsAwayAt(now) {
		fmt.Fprintf(&b, "  Away:     %s\n", p.FormattedAwayWindow())
	}
	if p.Language != "" {
		fmt.Fprintf(&b, "  Language: %s\n", p.Language)
	}
	if p.Playstyle != "" {
		fmt.Fprintf(&b, "  Style:    %s\n", p.Playstyle)
	}
	if p.PreferredVehicles != "" {
		fmt.Fprintf(&b, "  Vehicles: %s\n", p.PreferredVehicles)
	}
	if p.About != "" {
		fmt.Fprintf(&b, "  About:    %s\n", Wrap(p.About, 60, "            "))
	}
	return b.String()
}

// AmbiguousBlock lists resolver candidates so the caller can retry with
// an id.
func AmbiguousBlock(err *controller.AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "'%s' matches %d players:\n", err.Ref, len(err.Candidates))
	t := NewTable("ID", "NAME", "ALIAS", "DISCORD", "GP", "ACTIVE")
	t.Align(0, AlignRight).Align(4, AlignRight)
	for i := range err.Candidates {
		p := &err.Candidates[i]
		t.AddRow(p.ID, p.Name, p.Alias, p.DiscordName, FormatK(p.GaragePower), yesNo(p.Active))
	}
	b.WriteString(t.String())
	return b.String()
}

func SeasonTable(seasons []model.Season) string {
	t := NewTable("NR", "NAME", "START", "DIVISION")
	t.Align(0, AlignRight)
	for _, s := range seasons {
		t.AddRow(s.Number, s.Name, s.Start.Format(time.DateOnly), s.Division)
	}
	return t.String()
}

func MatchTable(matches []model.Match, eventNames map[int32]string) string {
	t := NewTable("ID", "DATE", "EVENT", "OPPONENT", "FOR", "AGAINST")
	t.Align(0, AlignRight).Align(4, AlignRight).Align(5, AlignRight)
	for _, m := range matches {
		t.AddRow(m.ID, m.Start.Format(time.DateOnly), eventNames[m.TeamEventID],
			m.Opponent, FormatK(m.ScoreLadys), FormatK(m.ScoreOpponent))
	}
	return t.String()
}

func MatchScoreTable(scores []model.MatchScore, playerNames map[int32]string) string {
	t := NewTable("PLAYER", "SCORE", "POINTS")
	t.Align(1, AlignRight).Align(2, AlignRight)
	for _, s := range scores {
		t.AddRow(playerNames[s.PlayerID], FormatK(s.Score), s.Points)
	}
	return t.String()
}

func TeamEventTable(events []model.TeamEvent) string {
	t := NewTable("ID", "NAME", "WEEK", "TRACKS", "MAX", "VEHICLES")
	t.Align(0, AlignRight).Align(3, AlignRight).Align(4, AlignRight)
	for i := range events {
		te := &events[i]
		shorts := make([]string, 0, len(te.Vehicles))
		for _, v := range te.Vehicles {
			shorts = append(shorts, v.Shortname)
		}
		t.AddRow(te.ID, te.Name, te.FormattedWeek(), te.Tracks,
			FormatK(te.Tracks*te.MaxScorePerTrack), strings.Join(shorts, ","))
	}
	return t.String()
}

func VehicleTable(vehicles []model.Vehicle) string {
	t := NewTable("ID", "NAME", "SHORT")
	t.Align(0, AlignRight)
	for _, v := range vehicles {
		t.AddRow(v.ID, v.Name, v.Shortname)
	}
	return t.String()
}

// AvgDeltaTable is the stats avg output: average deviation from the
// match median per player.
func AvgDeltaTable(season int, seasonName string, rows []controller.PlayerDelta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Season %d (%s)\n", season, seasonName)
	t := NewTable("PLAYER", "MATCHES", "AVG DELTA")
	t.Align(1, AlignRight).Align(2, AlignRight)
	for _, r := range rows {
		t.AddRow(r.Name, r.Matches, fmt.Sprintf("%+d", r.AvgDelta))
	}
	b.WriteString(t.String())
	return b.String()
}

// FairnessTable is the donations stats output.
func FairnessTable(rows []model.FairnessRow, cutoff time.Time) string {
	if len(rows) == 0 {
		return "no donations recorded\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Donation fairness through %s\n", cutoff.Format(time.DateOnly))
	t := NewTable("ID", "PLAYER", "MATCHES", "DONATED", "INDEX")
	t.Align(0, AlignRight).Align(2, AlignRight).Align(3, AlignRight).Align(4, AlignRight)
	for _, r := range rows {
		t.AddRow(r.PlayerID, r.Name, r.Matches, FormatK(r.Total), fmt.Sprintf("%.1f", r.Index))
	}
	b.WriteString(t.String())
	return b.String()
}

// DonationStatsBlock is the per-player donations show output.
func DonationStatsBlock(p *model.Player, stats *model.DonationStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Donations for %s\n", p.ShortName())
	t := NewTable("DATE", "TOTAL", "DELTA")
	t.Align(1, AlignRight).Align(2, AlignRight)
	for _, e := range stats.Entries {
		t.AddRow(e.Date.Format(time.DateOnly), e.Total, fmt.Sprintf("%+d", e.Delta))
	}
	b.WriteString(t.String())
	fmt.Fprintf(&b, "last total %d, donated %d, avg %.1f/month over %d months\n",
		stats.LastTotal, stats.TotalDonated, stats.AvgMonthlyIncr, stats.MonthBucketCount)
	return b.String()
}

// ImportReportBlock summarizes a match import run, including the grouped
// rows whose event could not be bound.
func ImportReportBlock(report *controller.ImportReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "added %d, skipped %d (%d duplicates)\n",
		report.Added, report.Skipped, report.Duplicates)
	if len(report.Missing) > 0 {
		b.WriteString("unmatched events:\n")
		t := NewTable("DATE", "EVENT", "OPPONENT", "ROWS")
		t.Align(3, AlignRight)
		for _, k := range report.Missing {
			t.AddRow(k.Date, k.Event, k.Opponent, k.Count)
		}
		b.WriteString(t.String())
	}
	return b.String()
}
