// Package main is the openspace-plan CLI command.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/viam-labs/openspace-planner/logging"
	"github.com/viam-labs/openspace-planner/openspace"
)

func main() {
	var logger logging.Logger

	app := &cli.App{
		Name:  "openspace-plan",
		Usage: "generate a coarse parking/pull-over trajectory for a non-holonomic vehicle",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logger = logging.NewDebugLogger("openspace-plan")
			} else {
				logger = logging.NewLogger("openspace-plan")
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "plan a trajectory for a scenario file",
				ArgsUsage: "<scenario.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "write the resulting trajectory as JSON to `FILE` instead of printing a summary",
					},
				},
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						cli.ShowSubcommandHelpAndExit(c, 1)
						return nil
					}
					return runCommand(c, path, logger)
				},
			},
			{
				Name:  "default-config",
				Usage: "print the default configuration as JSON",
				Action: func(c *cli.Context) error {
					enc := json.NewEncoder(c.App.Writer)
					enc.SetIndent("", "  ")
					return enc.Encode(openspace.DefaultConfig())
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context, path string, logger logging.Logger) error {
	s, err := loadScenario(path)
	if err != nil {
		return err
	}
	cfg := s.resolvedConfig()

	result, err := openspace.Plan(
		context.Background(),
		s.Start, s.Goal, s.Workspace,
		s.Obstacles, s.SoftBound,
		s.LastStraight, cfg, logger,
	)
	if err != nil {
		return errors.Wrap(err, "planning failed")
	}

	if out := c.String("out"); out != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshaling result")
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return errors.Wrap(err, "writing output file")
		}
		fmt.Fprintf(c.App.Writer, "wrote %d points to %s\n", len(result.X), out)
		return nil
	}

	gearSwitches := 0
	for i := 1; i < len(result.V); i++ {
		if (result.V[i-1] >= 0) != (result.V[i] >= 0) {
			gearSwitches++
		}
	}
	fmt.Fprintf(c.App.Writer, "points: %d\n", len(result.X))
	fmt.Fprintf(c.App.Writer, "path length: %.2fm\n", result.AccumulatedS[len(result.AccumulatedS)-1])
	fmt.Fprintf(c.App.Writer, "gear switches: %d\n", gearSwitches)
	fmt.Fprintf(c.App.Writer, "final pose: (%.3f, %.3f, %.3f)\n",
		result.X[len(result.X)-1], result.Y[len(result.Y)-1], result.Phi[len(result.Phi)-1])
	return nil
}
