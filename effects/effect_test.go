package effects_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/on-the-ground/cacher_ive_go/effects"
	effectmodel "github.com/on-the-ground/cacher_ive_go/effects/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnum effectmodel.EffectEnum = "cacher_ive_go_effect_enum_test"

type keyed string

func (k keyed) PartitionKey() string { return string(k) }

func TestPerformResumableEffect_PanicsWithoutHandler(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic without handler")
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, effectmodel.ErrNoEffectHandler)
	}()
	effects.PerformResumableEffect[int, int](context.Background(), testEnum, 1)
}

func TestAwaitResumableEffect_ReturnsValueAndError(t *testing.T) {
	boom := errors.New("boom")
	ctx, end := effects.WithResumableEffectHandler(
		context.Background(),
		1,
		testEnum,
		func(_ context.Context, n int) (int, error) {
			if n == 0 {
				return 0, boom
			}
			return n * 10, nil
		},
	)
	defer end()

	v, err := effects.AwaitResumableEffect[int, int](ctx, testEnum, 4)
	require.NoError(t, err)
	assert.Equal(t, 40, v)

	_, err = effects.AwaitResumableEffect[int, int](ctx, testEnum, 0)
	assert.ErrorIs(t, err, boom)
}

func TestAwaitResumableEffect_CallerContextCanceled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	ctx, end := effects.WithResumableEffectHandler(
		context.Background(),
		1,
		testEnum,
		func(_ context.Context, n int) (int, error) {
			<-release
			return n, nil
		},
	)
	defer end()

	callCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	_, err := effects.AwaitResumableEffect[int, int](callCtx, testEnum, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwaitResumableEffect_ClosedHandler(t *testing.T) {
	ctx, end := effects.WithResumableEffectHandler(
		context.Background(),
		1,
		testEnum,
		func(_ context.Context, n int) (int, error) { return n, nil },
	)
	end()

	_, err := effects.AwaitResumableEffect[int, int](ctx, testEnum, 1)
	assert.ErrorIs(t, err, effectmodel.ErrHandlerClosed)
}

func TestWithResumablePartitionableEffectHandler_TeardownRuns(t *testing.T) {
	tornDown := false
	ctx, end := effects.WithResumablePartitionableEffectHandler(
		context.Background(),
		effectmodel.NewEffectScopeConfig(2, 3),
		testEnum,
		func(_ context.Context, k keyed) (string, error) { return "<" + string(k) + ">", nil },
		func() { tornDown = true },
	)

	v, err := effects.AwaitResumableEffect[keyed, string](ctx, testEnum, "a")
	require.NoError(t, err)
	assert.Equal(t, "<a>", v)

	parent := end()
	assert.True(t, tornDown)
	assert.False(t, effects.HasEffectHandler(parent, testEnum))
	assert.True(t, effects.HasEffectHandler(ctx, testEnum))
}

func TestFireAndForgetEffect_Delivers(t *testing.T) {
	got := make(chan string, 1)
	ctx, end := effects.WithFireAndForgetEffectHandler(
		context.Background(),
		1,
		testEnum,
		func(_ context.Context, msg string) { got <- msg },
	)
	defer end()

	effects.FireAndForgetEffect(ctx, testEnum, "ping")

	select {
	case msg := <-got:
		assert.Equal(t, "ping", msg)
	case <-time.After(time.Second):
		t.Fatal("payload never delivered")
	}
}

func TestWithFireAndForgetEffectHandler_RejectsTwoTeardowns(t *testing.T) {
	assert.Panics(t, func() {
		effects.WithFireAndForgetEffectHandler(
			context.Background(),
			1,
			testEnum,
			func(context.Context, string) {},
			func() {}, func() {},
		)
	})
}
