package timeline

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Broadcast is the default combinator. It calls every observer in
// registration order with the same arguments, waits for each deferred result
// before calling the next observer, and discards the results. The first
// failure stops the loop and is returned.
func Broadcast(ctx context.Context, observers []Observer, args ...any) (any, error) {
	for _, obs := range observers {
		if _, err := call(ctx, obs, args); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// Number is the constraint for Sum.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum returns a combinator that calls observers in order and adds up their
// results. A nil result counts as zero; any other non-N result fails with ErrResultType.
func Sum[N Number]() Combinator {
	return func(ctx context.Context, observers []Observer, args ...any) (any, error) {
		var total N
		for i, obs := range observers {
			v, err := call(ctx, obs, args)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			n, ok := v.(N)
			if !ok {
				return nil, fmt.Errorf("%w: observer %d returned %T, want %T", ErrResultType, i, v, total)
			}
			total += n
		}
		return total, nil
	}
}

// Collect returns a combinator that calls observers in order and returns
// their awaited results as []any.
func Collect() Combinator {
	return func(ctx context.Context, observers []Observer, args ...any) (any, error) {
		results := make([]any, 0, len(observers))
		for _, obs := range observers {
			v, err := call(ctx, obs, args)
			if err != nil {
				return nil, err
			}
			results = append(results, v)
		}
		return results, nil
	}
}

// First returns a combinator that calls observers in order until one
// returns a non-nil result, and returns that result. Later observers are not called.
func First() Combinator {
	return func(ctx context.Context, observers []Observer, args ...any) (any, error) {
		for _, obs := range observers {
			v, err := call(ctx, obs, args)
			if err != nil {
				return nil, err
			}
			if v != nil {
				return v, nil
			}
		}
		return nil, nil
	}
}

// Waterfall returns a combinator that threads a value through the observers.
// The first observer gets the original arguments; every later observer gets
// the previous result in place of the first argument. The last result is returned.
func Waterfall() Combinator {
	return func(ctx context.Context, observers []Observer, args ...any) (any, error) {
		current := slices.Clone(args)
		var result any
		for _, obs := range observers {
			v, err := call(ctx, obs, current)
			if err != nil {
				return nil, err
			}
			result = v

			// Each observer owns the slice it was given
			next := make([]any, max(len(current), 1))
			copy(next, current)
			next[0] = v
			current = next
		}
		return result, nil
	}
}

// Parallel returns a combinator that runs all observers concurrently and
// waits for them, returning the first failure. Observers get a context that
// is canceled once any of them fails. Results are discarded.
// Unlike every other combinator here, Parallel gives no ordering guarantee.
//
// A panicking observer fails the moment with *PanicError. When the timeline
// was built with WithRecoverPanics(false), the first panic is raised again
// on the caller's goroutine once every observer has returned.
func Parallel() Combinator {
	return func(ctx context.Context, observers []Observer, args ...any) (any, error) {
		var (
			once     sync.Once
			panicked *PanicError
		)

		g, gctx := errgroup.WithContext(ctx)
		for _, obs := range observers {
			g.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						pe := newPanicError(r)
						once.Do(func() { panicked = pe })
						err = pe
					}
				}()
				_, err = call(gctx, obs, args)
				return err
			})
		}

		err := g.Wait()
		if panicked != nil && !recoversPanics(ctx) {
			panic(panicked.Value)
		}
		return nil, err
	}
}

// call invokes one observer and awaits its result.
func call(ctx context.Context, obs Observer, args []any) (any, error) {
	v, err := obs(ctx, args...)
	if err != nil {
		return nil, err
	}
	return Await(v)
}
