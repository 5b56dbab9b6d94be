// Package workout builds a day's workout plan around one expensive
// calculation that must run at most once per plan.
package workout

import (
	"context"
	"fmt"
	"time"

	"github.com/on-the-ground/cacher_ive_go/effects"
	"github.com/on-the-ground/cacher_ive_go/effects/log"
	"github.com/on-the-ground/cacher_ive_go/pure"
)

type Config struct {
	// Delay is how long the expensive calculation takes.
	Delay time.Duration
	// Intensities below this get a pushups/situps plan.
	LowIntensityBelow uint32
	// A high-intensity day with this random number is a rest day.
	BreakNumber uint32
}

func DefaultConfig() Config {
	return Config{
		Delay:             2 * time.Second,
		LowIntensityBelow: 25,
		BreakNumber:       3,
	}
}

type Plan struct {
	Steps []string
	// Calculations counts runs of the expensive calculation: 0 or 1.
	Calculations int
	// Computed is the window the calculation ran in; zero when it never ran.
	Computed effects.TimeSpan
}

// Generate returns the plan for intensity and randomNumber.
//
// It fails only when ctx ends while the calculation is running.
func Generate(ctx context.Context, cfg Config, intensity, randomNumber uint32) (Plan, error) {
	var plan Plan
	expensiveResult := pure.NewFallibleCacher(func(num uint32) (uint32, error) {
		plan.Calculations++
		log.TryEffect(ctx, log.LogInfo, "calculating slowly...", map[string]any{"num": num})

		var err error
		plan.Computed = effects.Measure(func() {
			err = sleep(ctx, cfg.Delay)
		})
		if err != nil {
			return 0, err
		}
		return num, nil
	})

	addStep := func(format string) error {
		n, err := expensiveResult.Value(intensity)
		if err != nil {
			return err
		}
		plan.Steps = append(plan.Steps, fmt.Sprintf(format, n))
		return nil
	}

	var err error
	switch {
	case intensity < cfg.LowIntensityBelow:
		if err = addStep("Today, do %d pushups!"); err == nil {
			err = addStep("Next, do %d situps!")
		}
	case randomNumber == cfg.BreakNumber:
		plan.Steps = append(plan.Steps, "Take a break today! Remember to stay hydrated!")
	default:
		err = addStep("Today, run for %d minutes!")
	}
	if err != nil {
		log.TryEffect(ctx, log.LogError, "workout generation aborted", map[string]any{
			"intensity": intensity,
			"error":     err.Error(),
		})
		return Plan{}, err
	}

	for _, step := range plan.Steps {
		log.TryEffect(ctx, log.LogInfo, step, map[string]any{"intensity": intensity})
	}
	return plan, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
