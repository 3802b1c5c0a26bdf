package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/render"
)

func newMatchScoreCommand(ctrl controller.C) *cli.Command {
	return &cli.Command{
		Name:  "matchscore",
		Usage: "manage per-player match scores",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "add or overwrite a player's score",
				ArgsUsage: "<match id> <player> <score> [points]",
				Action:    func(c *cli.Context) error { return upsertScore(c, ctrl) },
			},
			{
				// An edit is the same upsert; the unique key keeps one row
				// per player and match.
				Name:      "edit",
				Usage:     "overwrite a player's score",
				ArgsUsage: "<match id> <player> <score> [points]",
				Action:    func(c *cli.Context) error { return upsertScore(c, ctrl) },
			},
			{
				Name:      "delete",
				Usage:     "delete a player's score",
				ArgsUsage: "<match id> <player>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return usageError("matchscore delete requires a match id and a player")
					}
					matchID, err := argID(c, 0, "match")
					if err != nil {
						return err
					}
					p, err := ctrl.ResolvePlayer(c.Context, c.Args().Get(1))
					if err != nil {
						return fail(c, err)
					}
					if err := ctrl.DeleteMatchScore(c.Context, matchID, p.ID); err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "deleted score of %s for match %d\n", p.ShortName(), matchID)
					return nil
				},
			},
			{
				Name:      "list",
				Usage:     "list scores of a match",
				ArgsUsage: "<match id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("matchscore list requires a match id")
					}
					matchID, err := argID(c, 0, "match")
					if err != nil {
						return err
					}
					scores, err := ctrl.ListMatchScores(c.Context, matchID)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.MatchScoreTable(scores, playerNames(c, ctrl)))
					return nil
				},
			},
			{
				Name:      "autoadd",
				Usage:     "bulk-add scores from 'name score [points]' lines, stdin or a file",
				ArgsUsage: "<match id> [file]",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 || c.NArg() > 2 {
						return usageError("matchscore autoadd requires a match id and an optional file")
					}
					matchID, err := argID(c, 0, "match")
					if err != nil {
						return err
					}

					in := os.Stdin
					if c.NArg() == 2 {
						f, err := os.Open(c.Args().Get(1))
						if err != nil {
							return fail(c, err)
						}
						defer f.Close()
						in = f
					}

					report, err := ctrl.AutoAddScores(c.Context, matchID, in)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "added %d scores\n", report.Added)
					for _, line := range report.Failed {
						fmt.Fprintf(c.App.Writer, "failed: %s\n", line)
					}
					return nil
				},
			},
		},
	}
}

func upsertScore(c *cli.Context, ctrl controller.C) error {
	if c.NArg() < 3 || c.NArg() > 4 {
		return usageError("expected <match id> <player> <score> [points]")
	}
	matchID, err := argID(c, 0, "match")
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(c.Args().Get(2))
	if err != nil {
		return usageError("expected a numeric score, got '%s'", c.Args().Get(2))
	}
	points := 0
	if c.NArg() == 4 {
		points, err = strconv.Atoi(c.Args().Get(3))
		if err != nil {
			return usageError("expected numeric points, got '%s'", c.Args().Get(3))
		}
	}

	ms, err := ctrl.AddMatchScore(c.Context, matchID, c.Args().Get(1), score, points)
	if err != nil {
		return fail(c, err)
	}
	fmt.Fprintf(c.App.Writer, "saved score %s for match %d\n", render.FormatK(ms.Score), ms.MatchID)
	return nil
}
