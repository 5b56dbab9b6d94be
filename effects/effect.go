package effects

import (
	"context"

	"github.com/on-the-ground/cacher_ive_go/effects/internal/handlers"
	"github.com/on-the-ground/cacher_ive_go/effects/internal/helper"
	"go.uber.org/zap"

	effectmodel "github.com/on-the-ground/cacher_ive_go/effects/internal/model"
)

var (
	// ErrNoEffectHandler is the panic value when an effect has no handler in scope.
	ErrNoEffectHandler = effectmodel.ErrNoEffectHandler
	// ErrHandlerClosed is returned when a handler is torn down before answering.
	ErrHandlerClosed = effectmodel.ErrHandlerClosed
)

// WithResumablePartitionableEffectHandler registers a resumable effect handler for a given effect enum.
//
// Payloads are hash-partitioned by PartitionKey() over config.NumWorkers workers,
// so every payload with the same key is served by the same goroutine, in order.
//
// Usage:
//
//	ctx, end := WithResumablePartitionableEffectHandler(ctx, config, MyEffectEnum, handleFn)
//	defer end()
func WithResumablePartitionableEffectHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	td := normalizeTeardown(teardown)
	handler := handlers.NewPartitionableResumableHandler(ctx, effectmodel.NewEffectScopeConfig(config.BufferSize, config.NumWorkers), handleFn, td)
	ctxWith := context.WithValue(ctx, enum, handler)
	zap.L().Sugar().Debugf("created resumable effect handler: effectId: %v, enum: %v", handler.EffectId, enum)

	return ctxWith, func() context.Context {
		handler.Close()
		zap.L().Sugar().Debugf("closed resumable effect handler: effectId: %v, enum: %v", handler.EffectId, enum)
		return ctx
	}
}

// WithResumableEffectHandler registers a resumable effect handler for a given effect enum.
//
// Every payload is served by one goroutine, which makes it the place to keep
// state that must not be shared, such as a single-slot cache.
func WithResumableEffectHandler[P any, R any](
	ctx context.Context,
	bufferSize int,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	td := normalizeTeardown(teardown)
	handler := handlers.NewResumableHandler(ctx, max(bufferSize, 1), handleFn, td)
	ctxWith := context.WithValue(ctx, enum, handler)
	zap.L().Sugar().Debugf("created resumable effect handler: effectId: %v, enum: %v", handler.EffectId, enum)

	return ctxWith, func() context.Context {
		handler.Close()
		zap.L().Sugar().Debugf("closed resumable effect handler: effectId: %v, enum: %v", handler.EffectId, enum)
		return ctx
	}
}

// PerformResumableEffect sends a payload to the resumable effect handler and
// returns the channel its result arrives on. The channel is closed without a
// value if the payload could not be queued.
//
// Panics if no handler is registered for the given effect enum.
func PerformResumableEffect[P any, R any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) <-chan handlers.ResumableResult[R] {
	handler := helper.MustHandler[handlers.ResumableHandler[P, R]](ctx, enum)
	return handler.PerformEffect(ctx, payload)
}

// AwaitResumableEffect performs the effect and waits for its result,
// the caller's context, or the handler stopping, whichever comes first.
//
// Returns ctx.Err() when the caller gives up and ErrHandlerClosed when the
// handler was torn down before answering. Never blocks past teardown.
// Panics if no handler is registered for the given effect enum.
func AwaitResumableEffect[P any, R any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) (R, error) {
	handler := helper.MustHandler[handlers.ResumableHandler[P, R]](ctx, enum)
	return handler.Await(ctx, payload)
}

// WithFireAndForgetEffectHandler registers a fire-and-forget effect handler for a given effect enum.
//
// Suitable for one-shot effects like logging.
// This handler executes without returning a result.
func WithFireAndForgetEffectHandler[P any](
	ctx context.Context,
	bufferSize int,
	enum effectmodel.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	td := normalizeTeardown(teardown)
	handler := handlers.NewFireAndForgetHandler(ctx, max(bufferSize, 1), handleFn, td)
	ctxWith := context.WithValue(ctx, enum, handler)
	zap.L().Sugar().Debugf("created fire/forget effect handler: effectId: %v, enum: %v", handler.EffectId, enum)

	return ctxWith, func() context.Context {
		handler.Close()
		zap.L().Sugar().Debugf("closed fire/forget effect handler: effectId: %v, enum: %v", handler.EffectId, enum)
		return ctx
	}
}

// FireAndForgetEffect triggers a fire-and-forget effect for the given enum and payload.
//
// The handler will process the payload asynchronously.
// Panics if no handler is registered for the given enum.
func FireAndForgetEffect[P any](
	ctx context.Context,
	enum effectmodel.EffectEnum,
	payload P,
) {
	handler := helper.MustHandler[handlers.FireAndForgetHandler[P]](ctx, enum)
	handler.FireAndForgetEffect(ctx, payload)
}

// HasEffectHandler reports whether a handler for enum is in scope.
func HasEffectHandler(ctx context.Context, enum effectmodel.EffectEnum) bool {
	return helper.Registered(ctx, enum)
}

// normalizeTeardown flattens optional teardown functions into a single callable.
//
// Accepts either 0 or 1 teardown functions. Panics if more than one is passed.
func normalizeTeardown(teardown []func()) func() {
	switch len(teardown) {
	case 1:
		return teardown[0]
	case 0:
		return func() {}
	default:
		panic("normalizeTeardown: only one or zero teardown functions allowed")
	}
}
