package statemachine

import (
	"context"
	"time"
)

// Pending is the eventual result of an Advance started with Go.
type Pending[S any] struct {
	state S
	err   error
	done  chan struct{}
}

// Go starts Advance in its own goroutine and returns immediately.
// Ordering between concurrent Go calls on one machine is not defined.
func (m *Machine[S, E, D]) Go(ctx context.Context, event E, data D) *Pending[S] {
	p := &Pending[S]{done: make(chan struct{})}

	go func() {
		defer close(p.done)
		p.state, p.err = m.Advance(ctx, event, data)
	}()

	return p
}

// Await blocks until the advance completes and returns its result.
func (p *Pending[S]) Await() (S, error) {
	<-p.done
	return p.state, p.err
}

// AwaitWithTimeout waits at most timeout. On expiry it returns ErrAwaitTimeout;
// the advance itself keeps running and can still be awaited.
func (p *Pending[S]) AwaitWithTimeout(timeout time.Duration) (S, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.done:
		return p.state, p.err
	case <-timer.C:
		var zero S
		return zero, ErrAwaitTimeout
	}
}

// Done is closed once the advance has completed.
func (p *Pending[S]) Done() <-chan struct{} {
	return p.done
}

// IsComplete reports completion without blocking.
func (p *Pending[S]) IsComplete() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
