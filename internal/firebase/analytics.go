package firebase

import (
	"context"
)

// Analytics identifies the measurement stream events are reported to.
type Analytics struct {
	ProjectID     string
	AppID         string
	MeasurementID string
}

// Deferred is a value that resolves once, possibly to the zero value.
type Deferred[T any] struct {
	done chan struct{}
	v    T
}

func newDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// resolved returns a Deferred that is already settled with v.
func resolved[T any](v T) *Deferred[T] {
	d := newDeferred[T]()
	d.resolve(v)
	return d
}

func (d *Deferred[T]) resolve(v T) {
	d.v = v
	close(d.done)
}

// Await blocks until the value is resolved or ctx is done. A nil Deferred
// resolves immediately to the zero value.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	var zero T
	if d == nil {
		return zero, nil
	}
	select {
	case <-d.done:
		return d.v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Resolved reports whether Await would return without blocking.
func (d *Deferred[T]) Resolved() bool {
	if d == nil {
		return true
	}
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}
