package cli

import (
	"fmt"
	"strings"

	"github.com/itbasis/go-clock"
	"github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/model"
	"github.com/tkops/hcr2_manager/render"
)

func playerEditFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "alias"},
		&cli.IntFlag{Name: "gp", Usage: "garage power"},
		&cli.BoolFlag{Name: "active"},
		&cli.BoolFlag{Name: "leader"},
		&cli.StringFlag{Name: "birthday", Usage: "DD.MM."},
		&cli.StringFlag{Name: "team", Usage: "PLTE or PL1-PL9"},
		&cli.StringFlag{Name: "discord"},
		&cli.StringFlag{Name: "about"},
		&cli.StringFlag{Name: "vehicles", Usage: "preferred vehicles"},
		&cli.StringFlag{Name: "style"},
		&cli.StringFlag{Name: "lang"},
		&cli.StringFlag{Name: "emoji"},
	}
}

func newPlayerCommand(clk clock.Clock, ctrl controller.C) *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "manage clan members",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all players",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "team"},
					&cli.BoolFlag{Name: "by-name", Usage: "sort by name instead of garage power"},
				},
				Action: func(c *cli.Context) error {
					return listPlayers(c, clk, ctrl, controller.ListPlayersOptions{
						Team:       model.ParseTeam(c.String("team")),
						SortByName: c.Bool("by-name"),
					})
				},
			},
			{
				Name:  "list-active",
				Usage: "list active players",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "team"},
				},
				Action: func(c *cli.Context) error {
					return listPlayers(c, clk, ctrl, controller.ListPlayersOptions{
						ActiveOnly: true,
						Team:       model.ParseTeam(c.String("team")),
					})
				},
			},
			{
				Name:  "list-leader",
				Usage: "list team leaders",
				Action: func(c *cli.Context) error {
					players, err := ctrl.ListLeaders(c.Context)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.PlayerTable(players, clk.Now()))
					return nil
				},
			},
			{
				Name:  "birthday",
				Usage: "print ids of players whose birthday is today",
				Action: func(c *cli.Context) error {
					ids, err := ctrl.BirthdayPlayerIDs(c.Context)
					if err != nil {
						return fail(c, err)
					}
					// One line, machine-readable for the morning cron job.
					parts := make([]string, 0, len(ids))
					for _, id := range ids {
						parts = append(parts, fmt.Sprint(id))
					}
					fmt.Fprintf(c.App.Writer, "BIRTHDAY_IDS: %s\n", strings.Join(parts, ","))
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "add a player",
				Flags: playerEditFlags(),
				Action: func(c *cli.Context) error {
					if c.String("name") == "" || c.String("team") == "" {
						return usageError("player add requires --name and --team")
					}
					p := &model.Player{
						Name:              c.String("name"),
						Alias:             c.String("alias"),
						GaragePower:       c.Int("gp"),
						Active:            true,
						Leader:            c.Bool("leader"),
						Team:              model.ParseTeam(c.String("team")),
						DiscordName:       c.String("discord"),
						About:             c.String("about"),
						PreferredVehicles: c.String("vehicles"),
						Playstyle:         c.String("style"),
						Language:          c.String("lang"),
						Emoji:             c.String("emoji"),
					}
					if c.String("birthday") != "" {
						stored, err := model.ParseBirthday(c.String("birthday"))
						if err != nil {
							return fail(c, err)
						}
						p.Birthday = stored
					}
					added, err := ctrl.AddPlayer(c.Context, p)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "added player %d: %s\n", added.ID, added.Name)
					return nil
				},
			},
			{
				Name:      "edit",
				Usage:     "edit a player",
				ArgsUsage: "<id>",
				Flags:     playerEditFlags(),
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("player edit requires a player id")
					}
					id, err := argID(c, 0, "player")
					if err != nil {
						return err
					}
					edit, err := editFromFlags(c)
					if err != nil {
						return fail(c, err)
					}
					p, err := ctrl.EditPlayer(c.Context, id, edit)
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "updated player %d: %s\n", p.ID, p.Name)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "show a player profile",
				ArgsUsage: "<id|name|alias>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("player show requires a player reference")
					}
					p, err := ctrl.ResolvePlayer(c.Context, c.Args().First())
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.PlayerDetails(p, clk.Now()))
					return nil
				},
			},
			{
				Name:      "grep",
				Usage:     "search players by substring",
				ArgsUsage: "<term>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("player grep requires a search term")
					}
					players, err := ctrl.GrepPlayers(c.Context, c.Args().First())
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprint(c.App.Writer, render.PlayerTable(players, clk.Now()))
					return nil
				},
			},
			{
				Name:      "away",
				Usage:     "mark a player absent",
				ArgsUsage: "<id|name|alias> [weeks 1-4, default 1]",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 || c.NArg() > 2 {
						return usageError("player away requires a player reference and an optional duration")
					}
					p, err := ctrl.Away(c.Context, c.Args().First(), c.Args().Get(1))
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "player %d %s (alias %s, discord %s) is away %s\n",
						p.ID, p.Name, p.Alias, p.DiscordName, p.FormattedAwayWindow())
					return nil
				},
			},
			{
				Name:      "back",
				Usage:     "clear a player's absence",
				ArgsUsage: "<id|name|alias>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError("player back requires a player reference")
					}
					p, err := ctrl.Back(c.Context, c.Args().First())
					if err != nil {
						return fail(c, err)
					}
					fmt.Fprintf(c.App.Writer, "player %d %s (alias %s, discord %s) is back\n",
						p.ID, p.Name, p.Alias, p.DiscordName)
					return nil
				},
			},
		},
	}
}

func listPlayers(c *cli.Context, clk clock.Clock, ctrl controller.C, opts controller.ListPlayersOptions) error {
	players, err := ctrl.ListPlayers(c.Context, opts)
	if err != nil {
		return fail(c, err)
	}
	fmt.Fprint(c.App.Writer, render.PlayerTable(players, clk.Now()))
	return nil
}

func editFromFlags(c *cli.Context) (controller.PlayerEdit, error) {
	var edit controller.PlayerEdit
	if c.IsSet("name") {
		v := c.String("name")
		edit.Name = &v
	}
	if c.IsSet("alias") {
		v := c.String("alias")
		edit.Alias = &v
	}
	if c.IsSet("gp") {
		v := c.Int("gp")
		edit.GaragePower = &v
	}
	if c.IsSet("active") {
		v := c.Bool("active")
		edit.Active = &v
	}
	if c.IsSet("leader") {
		v := c.Bool("leader")
		edit.Leader = &v
	}
	if c.IsSet("birthday") {
		v := c.String("birthday")
		edit.Birthday = &v
	}
	if c.IsSet("team") {
		t := model.ParseTeam(c.String("team"))
		if t == model.TEAM_UNKNOWN {
			return edit, fmt.Errorf("invalid team '%s', expected PLTE or PL1-PL9", c.String("team"))
		}
		edit.Team = &t
	}
	if c.IsSet("discord") {
		v := c.String("discord")
		edit.DiscordName = &v
	}
	if c.IsSet("about") {
		v := c.String("about")
		edit.About = &v
	}
	if c.IsSet("vehicles") {
		v := c.String("vehicles")
		edit.PreferredVehicles = &v
	}
	if c.IsSet("style") {
		v := c.String("style")
		edit.Playstyle = &v
	}
	if c.IsSet("lang") {
		v := c.String("lang")
		edit.Language = &v
	}
	if c.IsSet("emoji") {
		v := c.String("emoji")
		edit.Emoji = &v
	}
	return edit, nil
}
