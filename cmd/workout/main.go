package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/on-the-ground/cacher_ive_go/effects/log"
	"github.com/on-the-ground/cacher_ive_go/workout"
)

func main() {
	os.Exit(realMain(context.Background(), os.Args))
}

func realMain(ctx context.Context, args []string) int {
	if err := newApp().Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newApp() *cli.Command {
	defaults := workout.DefaultConfig()
	return &cli.Command{
		Name:      "workout",
		Usage:     "generate today's workout plan",
		UsageText: "workout --intensity N [--random N] [--delay D] [--debug]",
		Flags: []cli.Flag{
			&cli.Uint32Flag{
				Name:     "intensity",
				Aliases:  []string{"i"},
				Usage:    "user specified intensity",
				Required: true,
				Sources:  cli.NewValueSourceChain(cli.EnvVar("WORKOUT_INTENSITY")),
			},
			&cli.Uint32Flag{
				Name:    "random",
				Aliases: []string{"r"},
				Usage:   "random number of the day",
				Value:   7,
				Sources: cli.NewValueSourceChain(cli.EnvVar("WORKOUT_RANDOM")),
			},
			&cli.DurationFlag{
				Name:    "delay",
				Usage:   "how long the expensive calculation takes",
				Value:   defaults.Delay,
				Sources: cli.NewValueSourceChain(cli.EnvVar("WORKOUT_DELAY")),
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "log at debug level",
				HideDefault: true,
			},
		},
		Action: runWorkout,
	}
}

func runWorkout(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer zap.ReplaceGlobals(logger)()

	ctx, endOfLogHandler := log.WithZapEffectHandler(ctx, 16, logger)
	defer endOfLogHandler()

	cfg := workout.DefaultConfig()
	cfg.Delay = cmd.Duration("delay")

	plan, err := workout.Generate(ctx, cfg, cmd.Uint32("intensity"), cmd.Uint32("random"))
	if err != nil {
		return err
	}
	for _, step := range plan.Steps {
		fmt.Fprintln(cmd.Root().Writer, step)
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
