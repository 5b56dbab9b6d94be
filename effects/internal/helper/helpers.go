package helper

import (
	"context"
	"fmt"

	effectmodel "github.com/on-the-ground/cacher_ive_go/effects/internal/model"
	sharedHelper "github.com/on-the-ground/cacher_ive_go/shared/helper"
)

// Handler returns the handler registered under enum as an H.
//
// Fails with ErrNoEffectHandler when nothing is registered, and with
// ErrUnexpectedType when the registered handler serves other payload or
// result types.
func Handler[H any](ctx context.Context, enum effectmodel.EffectEnum) (H, error) {
	return sharedHelper.GetTypedValueOf[H](lookup(ctx, enum))
}

// MustHandler is Handler for call sites where a missing handler is a bug.
func MustHandler[H any](ctx context.Context, enum effectmodel.EffectEnum) H {
	return sharedHelper.MustGetTypedValue[H](lookup(ctx, enum))
}

func lookup(ctx context.Context, enum effectmodel.EffectEnum) func() (any, error) {
	return func() (any, error) {
		if raw := ctx.Value(enum); raw != nil {
			return raw, nil
		}
		return nil, fmt.Errorf("%w: %v", effectmodel.ErrNoEffectHandler, enum)
	}
}

// Registered reports whether anything is registered under enum.
func Registered(ctx context.Context, enum effectmodel.EffectEnum) bool {
	return ctx.Value(enum) != nil
}
