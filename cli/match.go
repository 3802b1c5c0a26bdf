package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/model"
	"github.com/tkops/hcr2_manager/render"
)

func newMatchCommand(ctrl controller.C) *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "manage matches",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "add a match, the season derives from the date",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "event", Required: true, Usage: "team event id"},
					&cli.StringFlag{Name: "date", Required: true, Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "opponent", Required: true},
					&cli.IntFlag{Name: "for", Usage: "our score"},
					&cli.IntFlag{Name: "against", Usage: "opponent score"},
				},
				Action: func(c *cli.Context) error {
					start, err := time.ParseInLocation(time.DateOnly, c.String("date"), time.UTC)
					if err != nil {
						return usageError("invalid date '%s', expected YYYY-MM-DD", c.String("date"))
					}
					m, err := ctrl.AddMatch(c.Context, int32(c.Int("event")), start,
						c.String("opponent"), c.Int("for"), c.Int("against"))
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "added match %d vs %s in season %d\n", m.ID, m.Opponent, m.SeasonNumber)
					return nil
				},
			},
			{
				Name:      "edit",
				Usage:     "edit a match",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "opponent"},
					&cli.IntFlag{Name: "for"},
					&cli.IntFlag{Name: "against"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("match edit requires a match id")
					}
					id, err := argID(c, 0, "match")
					if err != nil {
						return err
					}
					m, err := ctrl.GetMatch(c.Context, id)
					if err != nil {
						return fail(c, err)
					}
					if c.IsSet("date") {
						start, err := time.ParseInLocation(time.DateOnly, c.String("date"), time.UTC)
						if err != nil {
							return usageError("invalid date '%s', expected YYYY-MM-DD", c.String("date"))
						}
						m.Start = start
						// The date moved, the season moves with it.
						m.SeasonNumber = 0
					}
					if c.IsSet("opponent") {
						m.Opponent = c.String("opponent")
					}
					if c.IsSet("for") {
						m.ScoreLadys = c.Int("for")
					}
					if c.IsSet("against") {
						m.ScoreOpponent = c.Int("against")
					}
					if err := ctrl.EditMatch(c.Context, m); err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "updated match %d\n", m.ID)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "show a match with its scores",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("match show requires a match id")
					}
					id, err := argID(c, 0, "match")
					if err != nil {
						return err
					}
					m, err := ctrl.GetMatch(c.Context, id)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.MatchTable([]model.Match{*m}, eventNames(c, ctrl)))
					scores, err := ctrl.ListMatchScores(c.Context, id)
					if err != nil {
						return fail(c, err)
					}
					if len(scores) > 0 {
						fmt.Fprint(c.App.Writer, render.MatchScoreTable(scores, playerNames(c, ctrl)))
					}
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a match",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("match delete requires a match id")
					}
					id, err := argID(c, 0, "match")
					if err != nil {
						return err
					}
					if err := ctrl.DeleteMatch(c.Context, id); err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "deleted match %d\n", id)
					return nil
				},
			},
			{
				Name:      "list",
				Usage:     "list matches of a season, default current, 'all' for every match",
				ArgsUsage: "[season|all]",
				Action: func(c *cli.Context) error {
					season := 0
					all := false
					if c.NArg() == 1 {
						if arg := c.Args().First(); arg == "all" {
							all = true
						} else {
							n, err := strconv.Atoi(arg)
							if err != nil {
								return usageError("expected a numeric season or 'all', got '%s'", arg)
							}
							season = n
						}
					}
					if !all && season == 0 {
						n, err := ctrl.CurrentSeason()
						if err != nil {
							return fail(c, err)
						}
						season = n
					}
					matches, err := ctrl.ListMatches(c.Context, season)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.MatchTable(matches, eventNames(c, ctrl)))
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "import matches from a CSV file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("match import requires a CSV file path")
					}
					f, err := os.Open(c.Args().First())
					if err != nil {
						return fail(c, err)
					}
					defer f.Close()

					report, err := ctrl.ImportMatches(c.Context, f)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.ImportReportBlock(report))
					return nil
				},
			},
		},
	}
}

// eventNames builds the id-to-name lookup for match tables. A lookup
// failure degrades to empty names rather than failing the listing.
func eventNames(c *cli.Context, ctrl controller.C) map[int32]string {
	names := make(map[int32]string)
	events, err := ctrl.ListTeamEvents(c.Context)
	if err != nil {
		return names
	}
	for _, te := range events {
		names[te.ID] = te.Name
	}
	return names
}

func playerNames(c *cli.Context, ctrl controller.C) map[int32]string {
	names := make(map[int32]string)
	players, err := ctrl.ListPlayers(c.Context, controller.ListPlayersOptions{})
	if err != nil {
		return names
	}
	for i := range players {
		names[players[i].ID] = players[i].ShortName()
	}
	return names
}
