package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/model"
	"github.com/tkops/hcr2_manager/render"
)

func newSeasonCommand(ctrl controller.C) *cli.Command {
	return &cli.Command{
		Name:  "season",
		Usage: "manage seasons",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "add a season, name and start derive from the number",
				ArgsUsage: "<number> [division]",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 || c.NArg() > 2 {
						return usageError("season add requires a season number and an optional division")
					}
					number, err := strconv.Atoi(c.Args().First())
					if err != nil {
						return usageError("expected a numeric season, got '%s'", c.Args().First())
					}
					division, ok := model.ParseDivision(c.Args().Get(1))
					if !ok {
						return usageError("invalid division '%s', expected CC or 1-7", c.Args().Get(1))
					}
					s, err := ctrl.AddSeason(c.Context, number, division)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "added season %d (%s)\n", s.Number, s.Name)
					return nil
				},
			},
			{
				Name:      "list",
				Usage:     "list seasons, optionally one number or one division",
				ArgsUsage: "[all|number|division]",
				Action: func(c *cli.Context) error {
					if c.NArg() > 1 {
						return usageError("season list takes at most one filter")
					}
					seasons, err := ctrl.ListSeasons(c.Context)
					if err != nil {
						return fail(c, err)
					}
					if c.NArg() == 1 {
						seasons, err = filterSeasons(seasons, c.Args().First())
						if err != nil {
							return err
						}
					}
					fmt.Fprint(c.App.Writer, render.SeasonTable(seasons))
					return nil
				},
			},
			{
				Name:      "edit",
				Usage:     "set a season's division",
				ArgsUsage: "<number> <division>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return usageError("season edit requires a season number and a division")
					}
					number, err := strconv.Atoi(c.Args().First())
					if err != nil {
						return usageError("expected a numeric season, got '%s'", c.Args().First())
					}
					division, ok := model.ParseDivision(c.Args().Get(1))
					if !ok {
						return usageError("invalid division '%s', expected CC or 1-7", c.Args().Get(1))
					}
					if err := ctrl.SetSeasonDivision(c.Context, number, division); err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "season %d division set to %s\n", number, division)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a season",
				ArgsUsage: "<number>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("season delete requires a season number")
					}
					number, err := strconv.Atoi(c.Args().First())
					if err != nil {
						return usageError("expected a numeric season, got '%s'", c.Args().First())
					}
					if err := ctrl.DeleteSeason(c.Context, number); err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "deleted season %d\n", number)
					return nil
				},
			},
		},
	}
}

// filterSeasons narrows a season listing by the filter token: 'all'
// keeps everything, a number keeps that season, anything else must
// parse as a division. Bare digits count as season numbers, so a
// one-digit division needs its DIV prefix here.
func filterSeasons(seasons []model.Season, token string) ([]model.Season, error) {
	if token == "all" {
		return seasons, nil
	}
	keep := seasons[:0]
	if number, err := strconv.Atoi(token); err == nil {
		for _, s := range seasons {
			if s.Number == number {
				keep = append(keep, s)
			}
		}
		return keep, nil
	}
	division, ok := model.ParseDivision(token)
	if !ok || division == model.DIV_NONE {
		return nil, usageError("expected 'all', a season number or a division, got '%s'", token)
	}
	for _, s := range seasons {
		if s.Division == division {
			keep = append(keep, s)
		}
	}
	return keep, nil
}
