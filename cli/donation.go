package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/render"
)

func newDonationsCommand(ctrl controller.C) *cli.Command {
	return &cli.Command{
		Name:  "donations",
		Usage: "track donation snapshots",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "record a player's cumulative donation total",
				ArgsUsage: "<player> <date> <total>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 3 {
						return usageError("donations add requires a player, a date and a total")
					}
					date, err := time.ParseInLocation(time.DateOnly, c.Args().Get(1), time.UTC)
					if err != nil {
						return fail(c, fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", c.Args().Get(1)))
					}
					total, err := strconv.Atoi(c.Args().Get(2))
					if err != nil {
						return fail(c, fmt.Errorf("expected a numeric total, got '%s'", c.Args().Get(2)))
					}
					d, err := ctrl.AddDonation(c.Context, c.Args().First(), date, total)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "recorded total %d for player %d on %s\n",
						d.Total, d.PlayerID, d.Date.Format(time.DateOnly))
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a donation snapshot",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("donations delete requires a donation id")
					}
					id, err := argID(c, 0, "donation")
					if err != nil {
						return err
					}
					if err := ctrl.DeleteDonation(c.Context, id); err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "deleted donation %d\n", id)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "show a player's donation history",
				ArgsUsage: "<player>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("donations show requires a player reference")
					}
					p, stats, err := ctrl.PlayerDonationStats(c.Context, c.Args().First())
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.DonationStatsBlock(p, stats))
					return nil
				},
			},
			{
				Name:  "stats",
				Usage: "fairness report: donations against matches played",
				Action: func(c *cli.Context) error {
					rows, cutoff, err := ctrl.DonationFairness(c.Context)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.FairnessTable(rows, cutoff))
					return nil
				},
			},
		},
	}
}
