// Package future provides a minimal one-shot future used to bridge
// callback-style message arrival into promise-style call sites.
package future

import (
	"context"
	"sync"
)

// Deferred is a resolvable, rejectable one-shot future. Resolution and
// rejection are each idempotent: only the first settlement has effect,
// guaranteeing at-most-one outcome for every observer.
//
// The zero value is not usable; create instances with New.
type Deferred[T any] struct {
	mu      sync.Mutex
	done    chan struct{}
	val     T
	err     error
	settled bool
}

// New creates an unsettled Deferred.
func New[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// Resolved creates a Deferred already settled with the given value.
func Resolved[T any](v T) *Deferred[T] {
	d := New[T]()
	d.Resolve(v)
	return d
}

// Rejected creates a Deferred already settled with the given error.
func Rejected[T any](err error) *Deferred[T] {
	d := New[T]()
	d.Reject(err)
	return d
}

// Resolve settles the future with a value. Returns false if the future
// was already settled, in which case the call has no effect.
func (d *Deferred[T]) Resolve(v T) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.settled {
		return false
	}
	d.val = v
	d.settled = true
	close(d.done)
	return true
}

// Reject settles the future with an error. Returns false if the future
// was already settled, in which case the call has no effect.
func (d *Deferred[T]) Reject(err error) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.settled {
		return false
	}
	d.err = err
	d.settled = true
	close(d.done)
	return true
}

// Await blocks until the future settles or the context is cancelled.
// A cancelled context does not settle the future; later observers can
// still await the eventual outcome.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.val, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the future settles.
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// Settled reports whether the future has been resolved or rejected.
func (d *Deferred[T]) Settled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}
