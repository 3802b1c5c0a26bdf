// Package cli builds the command tree. The same tree serves the terminal
// and the chat relay endpoint, which runs it with a buffered writer.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/itbasis/go-clock"
	"github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/render"
)

func NewApp(clk clock.Clock, ctrl controller.C, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "hcr2",
		Usage:     "clan administration toolkit",
		Writer:    out,
		ErrWriter: out,
		// Run must return usage errors instead of exiting the process;
		// the relay endpoint runs this app inside a request handler.
		ExitErrHandler: func(c *cli.Context, err error) {},
		Commands: []*cli.Command{
			newPlayerCommand(clk, ctrl),
			newSeasonCommand(ctrl),
			newTeamEventCommand(ctrl),
			newMatchCommand(ctrl),
			newMatchScoreCommand(ctrl),
			newVehicleCommand(ctrl),
			newStatsCommand(ctrl),
			newDonationsCommand(ctrl),
		},
	}
}

// fail prints a domain failure and swallows it: only usage errors exit
// non-zero. Ambiguous resolver results get the candidate table.
func fail(c *cli.Context, err error) error {
	var ambiguous *controller.AmbiguousError
	if errors.As(err, &ambiguous) {
		fmt.Fprint(c.App.Writer, render.AmbiguousBlock(ambiguous))
		return nil
	}
	fmt.Fprintln(c.App.Writer, err)
	return nil
}

func usageError(format string, a ...any) error {
	return cli.Exit(fmt.Sprintf(format, a...), 1)
}

func argID(c *cli.Context, pos int, what string) (int32, error) {
	id, err := strconv.ParseInt(c.Args().Get(pos), 10, 32)
	if err != nil {
		return 0, usageError("expected a numeric %s id, got '%s'", what, c.Args().Get(pos))
	}
	return int32(id), nil
}
