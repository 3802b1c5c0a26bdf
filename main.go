package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	clipkg "github.com/urfave/cli/v2"

	"github.com/tkops/hcr2_manager/cli"
	"github.com/tkops/hcr2_manager/config"
	"github.com/tkops/hcr2_manager/controller"
	"github.com/tkops/hcr2_manager/db"
	"github.com/tkops/hcr2_manager/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.Postgres.DSN, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}
	defer db.Close()

	ctrl, err := controller.New(clock, db, cfg.Donations.QuotaPerMatch)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	app := cli.NewApp(clock, ctrl, os.Stdout)
	app.Commands = append(app.Commands, serveCommand(cfg, clock, ctrl))

	args := append([]string{"hcr2"}, flag.Args()...)
	if err := app.Run(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// serveCommand starts the chat relay. Every posted command line runs
// through a fresh copy of the same command tree the terminal uses.
func serveCommand(cfg *config.Config, clk clock.Clock, ctrl controller.C) *clipkg.Command {
	return &clipkg.Command{
		Name:  "serve",
		Usage: "run the HTTP command relay",
		Action: func(c *clipkg.Context) error {
			runner := func(ctx context.Context, argv []string, out io.Writer) error {
				app := cli.NewApp(clk, ctrl, out)
				return app.RunContext(ctx, append([]string{"hcr2"}, argv...))
			}

			server, err := web.NewServer(cfg.HTTP.Port, runner)
			if err != nil {
				return err
			}

			shutdown := make(chan bool)
			wg := &sync.WaitGroup{}

			// Catch ctrl-c and shut the server down properly.
			intChannel := make(chan os.Signal, 2)
			signal.Notify(intChannel, os.Interrupt)
			go func() {
				<-intChannel
				close(shutdown)

				if err := waitTimeout(wg, 10*time.Second); err != nil {
					log.Printf("timed out waiting for proper shutdown")
					os.Exit(255)
				}
			}()

			wg.Add(1)
			go server.ListenAndServe(shutdown, wg)

			wg.Wait()
			log.Printf("server shutdown")
			return nil
		},
	}
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
