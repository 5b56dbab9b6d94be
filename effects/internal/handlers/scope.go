package handlers

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// effectScope owns a dispatcher, the context its workers run under, and the
// teardown to run once they have stopped.
type effectScope[T any] struct {
	EffectId   string
	ctx        context.Context
	cancel     context.CancelFunc
	dispatcher WorkerDispatcher[T]
	teardown   func()
	closeOnce  sync.Once
}

func newEffectScope[T any](
	ctx context.Context,
	newDispatcher func(context.Context) WorkerDispatcher[T],
	teardown func(),
) *effectScope[T] {
	ctx, cancel := context.WithCancel(ctx)
	return &effectScope[T]{
		EffectId:   uuid.New().String(),
		ctx:        ctx,
		cancel:     cancel,
		dispatcher: newDispatcher(ctx),
		teardown:   teardown,
	}
}

// Close stops the workers, waits for them to return and then runs the
// teardown. Safe to call more than once.
func (es *effectScope[T]) Close() {
	es.closeOnce.Do(func() {
		es.cancel()
		<-es.dispatcher.Stopped()
		es.teardown()
		zap.L().Debug("effect scope closed", zap.String("effectId", es.EffectId))
	})
}

// Stopped is closed once no worker of the scope is running.
func (es *effectScope[T]) Stopped() <-chan struct{} {
	return es.dispatcher.Stopped()
}

// send queues msg for its worker. It reports false, without queuing, when
// ctx ends first or the scope is shutting down.
func (es *effectScope[T]) send(ctx context.Context, msg T) bool {
	if es.ctx.Err() != nil || ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case <-es.ctx.Done():
		return false
	case es.dispatcher.InboxOf(msg) <- msg:
		return true
	}
}
