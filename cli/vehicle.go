package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/render"
)

func newVehicleCommand(ctrl controller.C) *cli.Command {
	return &cli.Command{
		Name:  "vehicle",
		Usage: "manage the vehicle catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list vehicles",
				Action: func(c *cli.Context) error {
					vehicles, err := ctrl.ListVehicles(c.Context)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.VehicleTable(vehicles))
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "add a vehicle",
				ArgsUsage: "<name> <shortname>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return usageError("vehicle add requires a name and a shortname")
					}
					v, err := ctrl.AddVehicle(c.Context, c.Args().First(), c.Args().Get(1))
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "added vehicle %d: %s (%s)\n", v.ID, v.Name, v.Shortname)
					return nil
				},
			},
			{
				Name:      "edit",
				Usage:     "edit a vehicle",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "shortname"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("vehicle edit requires an id")
					}
					id, err := argID(c, 0, "vehicle")
					if err != nil {
						return err
					}
					vehicles, err := ctrl.ListVehicles(c.Context)
					if err != nil {
						return fail(c, err)
					}
					for i := range vehicles {
						if vehicles[i].ID != id {
							continue
						}
						v := vehicles[i]
						if c.IsSet("name") {
							v.Name = c.String("name")
						}
						if c.IsSet("shortname") {
							v.Shortname = c.String("shortname")
						}
						if err := ctrl.EditVehicle(c.Context, &v); err != nil {
							return fail(c, err)
						}
						fmt.Fprintf(c.App.Writer, "updated vehicle %d\n", v.ID)
						return nil
					}
					return fail(c, fmt.Errorf("no vehicle with id %d", id))
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a vehicle",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("vehicle delete requires an id")
					}
					id, err := argID(c, 0, "vehicle")
					if err != nil {
						return err
					}
					if err := ctrl.DeleteVehicle(c.Context, id); err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "deleted vehicle %d\n", id)
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "import vehicles from a name,shortname CSV file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("vehicle import requires a CSV file path")
					}
					f, err := os.Open(c.Args().First())
					if err != nil {
						return fail(c, err)
					}
					defer f.Close()

					added, err := ctrl.ImportVehicles(c.Context, f)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "imported %d vehicles\n", added)
					return nil
				},
			},
			{
				Name:  "export",
				Usage: "export vehicles as CSV",
				Action: func(c *cli.Context) error {
					if err := ctrl.ExportVehicles(c.Context, c.App.Writer); err != nil {
						return fail(c, err)
					}
					return nil
				},
			},
			{
				Name:  "drop",
				Usage: "delete all vehicles",
				Action: func(c *cli.Context) error {
					if err := ctrl.DropVehicles(c.Context); err != nil {
						return fail(c, err)
					}
					fmt.Fprintln(c.App.Writer, "dropped all vehicles")
					return nil
				},
			},
		},
	}
}
