// Package memo exposes pure caches as effects.
//
// A pure.Cacher is not safe for concurrent use. Registering it through
// WithEffectHandler hands it to a single handler goroutine; every Effect call,
// from any goroutine, is queued to that goroutine. The cacher keeps its
// single-slot contract: the first argument to reach the handler decides the
// value everyone sees.
//
// WithTableEffectHandler does the same for an argument-keyed table, spread
// over several workers by argument so each argument is computed by one worker.
package memo

import (
	"context"

	"github.com/on-the-ground/cacher_ive_go/effects"
	effectmodel "github.com/on-the-ground/cacher_ive_go/effects/internal/model"
	"github.com/on-the-ground/cacher_ive_go/effects/log"
	"github.com/on-the-ground/cacher_ive_go/pure"
)

// call carries the handler context into the cached calculation.
type call[A any] struct {
	ctx context.Context
	arg A
}

type slotHandler[A, R any] struct {
	name   string
	cacher *pure.FallibleCacher[call[A], R]
}

// WithEffectHandler registers a named single-slot cache around calculation.
//
// The calculation receives the handler's context, which is canceled by the
// returned teardown. The teardown returns the parent context.
func WithEffectHandler[A, R any](
	ctx context.Context,
	name string,
	bufferSize int,
	calculation func(context.Context, A) (R, error),
) (context.Context, func() context.Context) {
	h := &slotHandler[A, R]{
		name: name,
		cacher: pure.NewFallibleCacher(func(c call[A]) (R, error) {
			return calculation(c.ctx, c.arg)
		}),
	}
	return effects.WithResumableEffectHandler(
		ctx,
		bufferSize,
		effectmodel.EffectMemo.Named(name),
		h.handle,
	)
}

func (h *slotHandler[A, R]) handle(ctx context.Context, arg A) (R, error) {
	wasPopulated := h.cacher.State() == pure.Populated
	v, err := h.cacher.Value(call[A]{ctx: ctx, arg: arg})
	switch {
	case err != nil:
		log.TryEffect(ctx, log.LogWarn, "memo calculation failed", map[string]any{
			"name":  h.name,
			"arg":   arg,
			"error": err.Error(),
		})
	case wasPopulated:
		log.TryEffect(ctx, log.LogDebug, "memo slot hit", map[string]any{
			"name":        h.name,
			"ignored_arg": arg,
		})
	default:
		log.TryEffect(ctx, log.LogDebug, "memo slot populated", map[string]any{
			"name": h.name,
			"arg":  arg,
		})
	}
	return v, err
}

// Effect asks the named slot for its value.
//
// Returns ctx.Err() if ctx ends first and effects.ErrHandlerClosed if
// the handler was torn down. Panics if no handler with that name is in scope.
func Effect[A, R any](ctx context.Context, name string, arg A) (R, error) {
	return effects.AwaitResumableEffect[A, R](ctx, effectmodel.EffectMemo.Named(name), arg)
}
