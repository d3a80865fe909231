package async

import (
	"context"
	"fmt"
	"time"
)

// ExecFuture is a Future for computations that only report an error.
// It satisfies the same Done/Value contract as Future, so observers can
// hand it back to a dispatcher that waits for it to settle.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Exec runs fn asynchronously and returns an ExecFuture for its error.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Skip the call entirely when the context is already gone
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("async function panicked: %v", r)
			}
		}()

		f.err = fn(ctx, param)
	}()

	return f
}

// Await waits for the function to complete and returns its error.
func (f *ExecFuture) Await() error {
	if f == nil {
		return ErrNilFuture
	}
	<-f.done
	return f.err
}

// AwaitWithTimeout waits for completion with a timeout.
// Returns ErrTimeout if the function is still running when the timeout fires.
func (f *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	if f == nil {
		return ErrNilFuture
	}
	select {
	case <-f.done:
		return f.err
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// IsComplete reports whether the function has completed, without blocking.
func (f *ExecFuture) IsComplete() bool {
	if f == nil {
		return true
	}
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the function completes.
func (f *ExecFuture) Done() <-chan struct{} {
	if f == nil {
		return settled
	}
	return f.done
}

// Value returns (nil, err) once the function has completed.
func (f *ExecFuture) Value() (any, error) {
	if f == nil {
		return nil, ErrNilFuture
	}
	select {
	case <-f.done:
		return nil, f.err
	default:
		return nil, nil
	}
}

// ExecAll waits for all futures and returns the first error in slice order.
func ExecAll(futures ...*ExecFuture) error {
	for _, future := range futures {
		if err := future.Await(); err != nil {
			return err
		}
	}
	return nil
}

// ExecAny waits for any of the futures to complete and returns its index and error.
func ExecAny(futures ...*ExecFuture) (int, error) {
	if len(futures) == 0 {
		return -1, ErrNoFutures
	}

	type result struct {
		index int
		err   error
	}

	done := make(chan result, len(futures))
	for i, future := range futures {
		go func(index int, f *ExecFuture) {
			done <- result{index, f.Await()}
		}(i, future)
	}

	res := <-done
	return res.index, res.err
}
