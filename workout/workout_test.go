package workout_test

import (
	"context"
	"testing"
	"time"

	"github.com/on-the-ground/cacher_ive_go/effects/log"
	"github.com/on-the-ground/cacher_ive_go/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fastConfig() workout.Config {
	cfg := workout.DefaultConfig()
	cfg.Delay = 10 * time.Millisecond
	return cfg
}

func TestGenerate_LowIntensityCalculatesOnce(t *testing.T) {
	ctx := context.Background()
	ctx, endOfLogHandler := log.WithTestEffectHandler(ctx)
	defer endOfLogHandler()

	plan, err := workout.Generate(ctx, fastConfig(), 10, 7)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Today, do 10 pushups!",
		"Next, do 10 situps!",
	}, plan.Steps)
	assert.Equal(t, 1, plan.Calculations)
	assert.GreaterOrEqual(t, plan.Computed.Duration(), 10*time.Millisecond)
}

func TestGenerate_BreakDaySkipsCalculation(t *testing.T) {
	plan, err := workout.Generate(context.Background(), fastConfig(), 30, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"Take a break today! Remember to stay hydrated!"}, plan.Steps)
	assert.Equal(t, 0, plan.Calculations)
	assert.Zero(t, plan.Computed.Duration())
}

func TestGenerate_HighIntensityRuns(t *testing.T) {
	plan, err := workout.Generate(context.Background(), fastConfig(), 30, 7)
	require.NoError(t, err)

	assert.Equal(t, []string{"Today, run for 30 minutes!"}, plan.Steps)
	assert.Equal(t, 1, plan.Calculations)
}

func TestGenerate_BoundaryIntensityIsHigh(t *testing.T) {
	plan, err := workout.Generate(context.Background(), fastConfig(), 25, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Today, run for 25 minutes!"}, plan.Steps)
}

func TestGenerate_CanceledDuringCalculation(t *testing.T) {
	cfg := workout.DefaultConfig() // 2s delay
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	plan, err := workout.Generate(ctx, cfg, 5, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, plan.Steps)
}

func TestGenerate_LogsCalculationOnce(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx, endOfLogHandler := log.WithZapEffectHandler(context.Background(), 8, zap.New(core))
	defer endOfLogHandler()

	_, err := workout.Generate(ctx, fastConfig(), 12, 0)
	require.NoError(t, err)

	// one calculation notice plus two steps
	require.Eventually(t, func() bool { return logs.Len() == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, logs.FilterMessage("calculating slowly...").Len())
	assert.Equal(t, 1, logs.FilterMessage("Next, do 12 situps!").Len())
}
