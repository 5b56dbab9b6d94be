package handlers

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"

	effectmodel "github.com/on-the-ground/cacher_ive_go/effects/internal/model"
)

// WorkerDispatcher routes messages to worker goroutines.
//
// Inboxes are never closed. Workers stop when the dispatcher's context ends;
// whatever is still buffered at that point is passed to the drop function
// instead of the handler, and Stopped is closed after the last worker
// returns. Senders must watch the context themselves.
type WorkerDispatcher[T any] interface {
	// InboxOf returns the inbox of the worker responsible for msg.
	InboxOf(msg T) chan<- T
	// Stopped is closed once every worker has returned.
	Stopped() <-chan struct{}
}

type dispatcher[T any] struct {
	inboxes []chan T
	route   func(msg T, n int) int
	stopped chan struct{}
}

func (d *dispatcher[T]) InboxOf(msg T) chan<- T {
	return d.inboxes[d.route(msg, len(d.inboxes))]
}

func (d *dispatcher[T]) Stopped() <-chan struct{} {
	return d.stopped
}

// NewSingleQueue serves every message on one worker, in send order.
func NewSingleQueue[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
	dropFn func(T),
) WorkerDispatcher[T] {
	return startDispatcher(ctx, 1, bufferSize, func(T, int) int { return 0 }, handleFn, dropFn)
}

// NewPartitionedQueue starts numWorkers workers. Messages sharing a
// PartitionKey always land on the same worker, in send order.
func NewPartitionedQueue[T effectmodel.Partitionable](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
	dropFn func(T),
) WorkerDispatcher[T] {
	return startDispatcher(ctx, numWorkers, bufferSize, partitionOf[T], handleFn, dropFn)
}

func partitionOf[T effectmodel.Partitionable](msg T, n int) int {
	if n == 1 {
		return 0
	}
	return int(xxhash.Sum64String(msg.PartitionKey()) % uint64(n))
}

func startDispatcher[T any](
	ctx context.Context,
	numWorkers, bufferSize int,
	route func(T, int) int,
	handleFn func(context.Context, T),
	dropFn func(T),
) *dispatcher[T] {
	if numWorkers <= 0 {
		panic("number of workers must be positive")
	}
	if dropFn == nil {
		dropFn = func(T) {}
	}

	d := &dispatcher[T]{
		inboxes: make([]chan T, numWorkers),
		route:   route,
		stopped: make(chan struct{}),
	}

	var wg sync.WaitGroup
	for i := range d.inboxes {
		inbox := make(chan T, bufferSize)
		d.inboxes[i] = inbox
		wg.Add(1)
		go func() {
			defer wg.Done()
			work(ctx, inbox, handleFn, dropFn)
		}()
	}
	go func() {
		wg.Wait()
		close(d.stopped)
	}()
	return d
}

func work[T any](
	ctx context.Context,
	inbox <-chan T,
	handleFn func(context.Context, T),
	dropFn func(T),
) {
	for {
		select {
		case msg := <-inbox:
			if ctx.Err() != nil {
				dropFn(msg)
				continue
			}
			handleFn(ctx, msg)
		case <-ctx.Done():
			for {
				select {
				case msg := <-inbox:
					dropFn(msg)
				default:
					return
				}
			}
		}
	}
}
