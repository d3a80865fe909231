// Package async provides futures for asynchronous work with Go generics.
//
// Future[U] represents the result of a computation running in its own
// goroutine. ExecFuture is the error-only variant. Both expose Done and
// Value, which makes them deferred values: an observer registered on a
// timeline moment can return one and the dispatcher waits for it to settle
// before moving on to the next observer.
//
// # Usage
//
//	future := async.Async(ctx, userID, fetchUser)
//
//	// Do other work...
//
//	user, err := future.Await()
//
// Using a timeout:
//
//	user, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		log.Println("operation timed out")
//	}
//
// Returning a future from a timeline observer:
//
//	tl.On().Moment("saved")(func(ctx context.Context, args ...any) (any, error) {
//		return async.Exec(ctx, args[0], reindex), nil
//	})
//
// # Coordination
//
// WaitAll and ExecAll wait for every future and report the first error in
// slice order. WaitAny and ExecAny return as soon as one future settles.
//
// # Errors
//
//   - ErrTimeout: AwaitWithTimeout exceeded its duration
//   - ErrNoFutures: WaitAny or ExecAny called with no futures
//
// A context that is already canceled settles a future with ctx.Err()
// without running the function. Panics are recovered into errors.
package async
