package async

import (
	"context"
	"fmt"
	"time"
)

// Future represents the result of an asynchronous computation.
// It settles exactly once; Done, Value and Await are safe for concurrent use.
type Future[U any] struct {
	val  U
	err  error
	done chan struct{}
}

// Async executes fn in its own goroutine and returns a Future for its result.
// A context that is already canceled settles the future with ctx.Err() without running fn.
// A panic inside fn settles the future with an error instead of crashing the process.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

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

		f.val, f.err = fn(ctx, param)
	}()

	return f
}

// Resolved returns a Future that is already settled with the given value and error.
func Resolved[U any](val U, err error) *Future[U] {
	f := &Future[U]{val: val, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// Await blocks until the computation completes and returns its result.
func (f *Future[U]) Await() (U, error) {
	if f == nil {
		var zero U
		return zero, ErrNilFuture
	}
	<-f.done
	return f.val, f.err
}

// AwaitWithTimeout waits for the computation with a timeout.
// Returns ErrTimeout if the future does not settle in time.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	if f == nil {
		var zero U
		return zero, ErrNilFuture
	}
	select {
	case <-f.done:
		return f.val, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the future has settled, without blocking.
func (f *Future[U]) IsComplete() bool {
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

// Done returns a channel that is closed once the future settles.
// A nil future counts as settled.
func (f *Future[U]) Done() <-chan struct{} {
	if f == nil {
		return settled
	}
	return f.done
}

// Value returns the settled result as an untyped value.
// Callers must wait on Done first; before that the zero value is returned.
// A nil future yields ErrNilFuture.
func (f *Future[U]) Value() (any, error) {
	if f == nil {
		return nil, ErrNilFuture
	}
	select {
	case <-f.done:
		return f.val, f.err
	default:
		var zero U
		return zero, nil
	}
}

// WaitAll waits for every future and returns their results in order.
// The first error encountered (in slice order) is returned along with the results collected so far.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	for i, f := range futures {
		v, err := f.Await()
		if err != nil {
			return results[:i], err
		}
		results[i] = v
	}
	return results, nil
}

// WaitAny returns as soon as any future settles, with its index and result.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	if len(futures) == 0 {
		var zero U
		return -1, zero, ErrNoFutures
	}

	type result struct {
		index int
		val   U
		err   error
	}

	// Buffered so late finishers never block.
	done := make(chan result, len(futures))
	for i, future := range futures {
		go func(index int, f *Future[U]) {
			v, err := f.Await()
			done <- result{index, v, err}
		}(i, future)
	}

	res := <-done
	return res.index, res.val, res.err
}
