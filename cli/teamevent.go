package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/model"
	"github.com/tkops/hcr2_manager/render"
)

func newTeamEventCommand(ctrl controller.C) *cli.Command {
	return &cli.Command{
		Name:  "teamevent",
		Usage: "manage weekly team events",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "add a team event",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "week", Required: true, Usage: "YYYY/WW"},
					&cli.StringFlag{Name: "vehicles", Usage: "comma-separated ids or shortnames"},
					&cli.IntFlag{Name: "tracks", Value: model.DefaultTracks},
					&cli.IntFlag{Name: "max-score", Value: model.DefaultMaxScorePerTrack, Usage: "max score per track"},
				},
				Action: func(c *cli.Context) error {
					var refs []string
					if v := c.String("vehicles"); v != "" {
						refs = strings.Split(v, ",")
					}
					te, err := ctrl.AddTeamEvent(c.Context, c.String("name"), c.String("week"),
						refs, c.Int("tracks"), c.Int("max-score"))
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "added team event %d: %s %s\n", te.ID, te.Name, te.FormattedWeek())
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list team events",
				Action: func(c *cli.Context) error {
					events, err := ctrl.ListTeamEvents(c.Context)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.TeamEventTable(events))
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "show a team event",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("teamevent show requires an id")
					}
					id, err := argID(c, 0, "team event")
					if err != nil {
						return err
					}
					te, err := ctrl.GetTeamEvent(c.Context, id)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.TeamEventTable([]model.TeamEvent{*te}))
					return nil
				},
			},
			{
				Name:      "edit",
				Usage:     "edit a team event",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.IntFlag{Name: "tracks"},
					&cli.IntFlag{Name: "max-score"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("teamevent edit requires an id")
					}
					id, err := argID(c, 0, "team event")
					if err != nil {
						return err
					}
					te, err := ctrl.GetTeamEvent(c.Context, id)
					if err != nil {
						return fail(c, err)
					}
					if c.IsSet("name") {
						te.Name = c.String("name")
					}
					if c.IsSet("tracks") {
						te.Tracks = c.Int("tracks")
					}
					if c.IsSet("max-score") {
						te.MaxScorePerTrack = c.Int("max-score")
					}
					if err := ctrl.EditTeamEvent(c.Context, te); err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "updated team event %d\n", te.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a team event",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("teamevent delete requires an id")
					}
					id, err := argID(c, 0, "team event")
					if err != nil {
						return err
					}
					if err := ctrl.DeleteTeamEvent(c.Context, id); err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "deleted team event %d\n", id)
					return nil
				},
			},
		},
	}
}
