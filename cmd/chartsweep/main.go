package main

import (
	"fmt"
	"os"

	"github.com/fedragon/chartsweep/internal"
	"github.com/fedragon/chartsweep/internal/logging"

	"github.com/urfave/cli/v2"
)

// logCategory names the environment variable that sets the console log
// level.
const logCategory = "CHARTS_LOG"

func main() {
	app := &cli.App{
		Name:  "chartsweep",
		Usage: "keep only the latest-dated chart tile per group, removing superseded ones",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "root",
				Usage:    "directory to sweep",
				EnvVars:  []string{"CHARTS_ROOT"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "path to the audit journal",
				EnvVars: []string{"CHARTS_DB"},
				Value:   "~/.chartsweep/audit.db",
			},
			&cli.StringFlag{
				Name:    "quarantine-dir",
				Usage:   "move superseded files into this directory instead of deleting them",
				EnvVars: []string{"CHARTS_QUARANTINE_DIR"},
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "log what would be removed without touching anything",
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := logging.New(logCategory)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			runner := internal.NewRunner(
				logger,
				c.String("root"),
				c.String("db"),
				c.String("quarantine-dir"),
				c.Bool("dry-run"),
			)

			return runner.Run()
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
