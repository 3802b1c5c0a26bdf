package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/model"
	"github.com/tkops/hcr2_manager/render"
)

func newStatsCommand(ctrl controller.C) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "score statistics",
		Subcommands: []*cli.Command{
			{
				Name:      "avg",
				Usage:     "average deviation from the match median, default current season",
				ArgsUsage: "[season]",
				Action: func(c *cli.Context) error {
					season := 0
					if c.NArg() == 1 {
						n, err := strconv.Atoi(c.Args().First())
						if err != nil {
							return usageError("expected a numeric season, got '%s'", c.Args().First())
						}
						season = n
					}
					rows, season, err := ctrl.SeasonAvgDeltas(c.Context, season)
					if err != nil {
						return fail(c, err)
					}
					name, err := model.SeasonName(season)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.AvgDeltaTable(season, name, rows))
					return nil
				},
			},
		},
	}
}
