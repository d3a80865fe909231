package async

import "errors"

var (
	// ErrTimeout is returned when AwaitWithTimeout exceeds its duration.
	ErrTimeout = errors.New("async operation timed out")

	// ErrNoFutures is returned when WaitAny or ExecAny is called with no futures.
	ErrNoFutures = errors.New("no futures provided")

	// ErrNilFuture is the result of awaiting a nil *Future or *ExecFuture.
	ErrNilFuture = errors.New("nil future")
)

// settled is returned by Done on nil futures.
var settled = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()
