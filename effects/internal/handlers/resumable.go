package handlers

import (
	"context"

	effectmodel "github.com/on-the-ground/cacher_ive_go/effects/internal/model"
)

// NewResumableHandler serves every payload on a single worker goroutine.
func NewResumableHandler[P any, R any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	return ResumableHandler[P, R]{
		effectScope: newEffectScope(
			ctx,
			func(ctx context.Context) WorkerDispatcher[ResumableEffectMessage[P, R]] {
				return NewSingleQueue(ctx, bufferSize, resume(handleFn), abandon[P, R])
			},
			teardown,
		),
	}
}

// NewPartitionableResumableHandler spreads payloads over config.NumWorkers
// workers by their PartitionKey.
func NewPartitionableResumableHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	return ResumableHandler[P, R]{
		effectScope: newEffectScope(
			ctx,
			func(ctx context.Context) WorkerDispatcher[ResumableEffectMessage[P, R]] {
				return NewPartitionedQueue(ctx, config.NumWorkers, config.BufferSize, resume(handleFn), abandon[P, R])
			},
			teardown,
		),
	}
}

func resume[P, R any](
	handleFn func(context.Context, P) (R, error),
) func(context.Context, ResumableEffectMessage[P, R]) {
	return func(ctx context.Context, msg ResumableEffectMessage[P, R]) {
		msg.ResumeCh <- ResumableResultFrom(handleFn(ctx, msg.Payload))
		close(msg.ResumeCh)
	}
}

// abandon answers a message the workers will never handle.
func abandon[P, R any](msg ResumableEffectMessage[P, R]) {
	close(msg.ResumeCh)
}

type ResumableHandler[P any, R any] struct {
	*effectScope[ResumableEffectMessage[P, R]]
}

// PerformEffect enqueues payload and returns the channel the result will be
// delivered on. The channel holds at most one result and is closed without
// one when ctx ends before the payload is queued, when the handler is
// closing, or when the handler stops before reaching the payload.
//
// A payload queued while the handler is shutting down may be neither
// answered nor closed; callers that wait should also watch Stopped.
func (rh ResumableHandler[P, R]) PerformEffect(ctx context.Context, payload P) <-chan ResumableResult[R] {
	resumeCh := make(chan ResumableResult[R], 1)
	msg := ResumableEffectMessage[P, R]{
		Payload:  payload,
		ResumeCh: resumeCh,
	}
	if !rh.send(ctx, msg) {
		close(resumeCh)
	}
	return resumeCh
}

// Await performs the effect and waits for its result, ctx, or the handler
// stopping, whichever comes first. A result computed before the handler
// stopped is still returned.
func (rh ResumableHandler[P, R]) Await(ctx context.Context, payload P) (R, error) {
	resultCh := rh.PerformEffect(ctx, payload)
	select {
	case res, ok := <-resultCh:
		if ok {
			return res.Value, res.Err
		}
	case <-ctx.Done():
	case <-rh.Stopped():
		select {
		case res, ok := <-resultCh:
			if ok {
				return res.Value, res.Err
			}
		default:
		}
	}

	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return zero, effectmodel.ErrHandlerClosed
}

// ResumableResult represents the result of handled effects.
type ResumableResult[T any] struct {
	Value T
	Err   error
}

func ResumableResultFrom[R any](res R, err error) ResumableResult[R] {
	return ResumableResult[R]{Value: res, Err: err}
}

var _ effectmodel.Partitionable = ResumableEffectMessage[any, any]{}

type ResumableEffectMessage[P any, R any] struct {
	Payload  P
	ResumeCh chan ResumableResult[R]
}

func (rem ResumableEffectMessage[P, R]) PartitionKey() string {
	if p, ok := any(rem.Payload).(effectmodel.Partitionable); ok {
		return p.PartitionKey()
	}
	return ""
}
