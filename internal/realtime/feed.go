package realtime

import (
	"context"
	"log"
)

// FetchFunc loads the current snapshot of a view.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Feed keeps a view current by re-running its fetch once per change event.
// It never applies changes incrementally.
type Feed[T any] struct {
	sub       *Subscription
	fetch     FetchFunc[T]
	snapshots chan []T
}

func NewFeed[T any](broker *Broker, topic string, fetch FetchFunc[T]) *Feed[T] {
	return &Feed[T]{
		sub:       broker.Subscribe(topic),
		fetch:     fetch,
		snapshots: make(chan []T),
	}
}

// Snapshots is closed when Run returns.
func (f *Feed[T]) Snapshots() <-chan []T {
	return f.snapshots
}

// Run emits an initial snapshot and then one fresh snapshot per event until
// ctx is done. The subscription is released on return.
func (f *Feed[T]) Run(ctx context.Context) {
	defer close(f.snapshots)
	defer f.sub.Close()

	if !f.emit(ctx) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-f.sub.C:
			if !ok {
				return
			}
			if !f.emit(ctx) {
				return
			}
		}
	}
}

func (f *Feed[T]) emit(ctx context.Context) bool {
	rows, err := f.fetch(ctx)
	if err != nil {
		log.Printf("[realtime] feed fetch failed: %v", err)
		rows = []T{}
	}

	select {
	case f.snapshots <- rows:
		return true
	case <-ctx.Done():
		return false
	}
}
