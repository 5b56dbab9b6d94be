package memo

import (
	"context"
	"fmt"

	"github.com/on-the-ground/cacher_ive_go/effects"
	effectmodel "github.com/on-the-ground/cacher_ive_go/effects/internal/model"
	"github.com/on-the-ground/cacher_ive_go/effects/log"
)

// TableStore keeps computed results by argument.
// Implementations are called from several workers at once.
type TableStore[A comparable, R any] interface {
	Load(arg A) (R, bool)
	Store(arg A, val R)
}

type tableRequest[A any] struct {
	Arg A
}

func (r tableRequest[A]) PartitionKey() string {
	if s, ok := any(r.Arg).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", r.Arg)
}

type tableHandler[A comparable, R any] struct {
	name        string
	store       TableStore[A, R]
	calculation func(context.Context, A) (R, error)
}

// WithTableEffectHandler registers a named memo table.
//
// Requests are routed to numWorkers workers by argument, so concurrent
// requests for one argument queue behind each other and the calculation runs
// once per argument for as long as the store keeps the result. Failed
// calculations are not stored.
func WithTableEffectHandler[A comparable, R any](
	ctx context.Context,
	name string,
	bufferSize, numWorkers int,
	store TableStore[A, R],
	calculation func(context.Context, A) (R, error),
) (context.Context, func() context.Context) {
	h := &tableHandler[A, R]{
		name:        name,
		store:       store,
		calculation: calculation,
	}
	return effects.WithResumablePartitionableEffectHandler(
		ctx,
		effectmodel.NewEffectScopeConfig(bufferSize, numWorkers),
		effectmodel.EffectTable.Named(name),
		h.handle,
	)
}

func (h *tableHandler[A, R]) handle(ctx context.Context, req tableRequest[A]) (R, error) {
	if v, ok := h.store.Load(req.Arg); ok {
		return v, nil
	}

	v, err := h.calculation(ctx, req.Arg)
	if err != nil {
		log.TryEffect(ctx, log.LogWarn, "memo table calculation failed", map[string]any{
			"name":  h.name,
			"arg":   req.Arg,
			"error": err.Error(),
		})
		return v, err
	}
	h.store.Store(req.Arg, v)
	log.TryEffect(ctx, log.LogDebug, "memo table stored", map[string]any{
		"name": h.name,
		"arg":  req.Arg,
	})
	return v, nil
}

// TableEffect looks arg up in the named table, computing it on a miss.
func TableEffect[A comparable, R any](ctx context.Context, name string, arg A) (R, error) {
	return effects.AwaitResumableEffect[tableRequest[A], R](
		ctx,
		effectmodel.EffectTable.Named(name),
		tableRequest[A]{Arg: arg},
	)
}
