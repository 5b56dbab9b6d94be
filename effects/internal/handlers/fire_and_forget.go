package handlers

import (
	"context"

	"go.uber.org/zap"
)

// NewFireAndForgetHandler serves payloads on one worker without answering.
// Payloads still buffered when the handler closes are handled before the
// teardown runs, with an already canceled context.
func NewFireAndForgetHandler[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
	teardown func(),
) FireAndForgetHandler[T] {
	return FireAndForgetHandler[T]{
		effectScope: newEffectScope(
			ctx,
			func(ctx context.Context) WorkerDispatcher[T] {
				return NewSingleQueue(ctx, bufferSize, handleFn, func(payload T) {
					handleFn(ctx, payload)
				})
			},
			teardown,
		),
	}
}

type FireAndForgetHandler[T any] struct {
	*effectScope[T]
}

func (ffh FireAndForgetHandler[T]) FireAndForgetEffect(ctx context.Context, payload T) {
	if !ffh.send(ctx, payload) {
		zap.L().Debug(
			"fire/forget effect not delivered",
			zap.String("effectId", ffh.EffectId),
			zap.Any("payload", payload),
		)
	}
}
