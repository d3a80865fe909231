package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/timeline/core/logger"
)

// Decorator wraps an Observer to add cross-cutting behavior such as retries,
// timeouts or logging. Decorators that need the observer's outcome await
// deferred results, so the decorated observer returns settled values.
type Decorator func(Observer) Observer

// Decorate applies decorators to obs. The first decorator becomes the
// outermost wrapper (runs first). A nil obs stays nil so registration still
// rejects it.
//
// Example:
//
//	obs := timeline.Decorate(notifyWebhook,
//	    timeline.Logging(log, "notify-webhook"),
//	    timeline.Retry(3),
//	    timeline.Timeout(5*time.Second),
//	)
//
// Execution order: Logging -> Retry -> Timeout -> notifyWebhook
func Decorate(obs Observer, decorators ...Decorator) Observer {
	if obs == nil {
		return nil
	}
	for i := len(decorators) - 1; i >= 0; i-- {
		obs = decorators[i](obs)
	}
	return obs
}

// Retry re-invokes a failing observer up to maxRetries more times.
// Returns the last error if every attempt fails.
func Retry(maxRetries int) Decorator {
	return func(next Observer) Observer {
		return func(ctx context.Context, args ...any) (any, error) {
			var lastErr error
			for attempt := 0; attempt <= maxRetries; attempt++ {
				if attempt > 0 && ctx.Err() != nil {
					return nil, ctx.Err()
				}

				v, err := call(ctx, next, args)
				if err == nil {
					return v, nil
				}
				lastErr = err
			}
			return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
		}
	}
}

// Backoff is Retry with exponentially increasing delays between attempts,
// starting at initialDelay and capped at maxDelay.
func Backoff(maxRetries int, initialDelay, maxDelay time.Duration) Decorator {
	return func(next Observer) Observer {
		return func(ctx context.Context, args ...any) (any, error) {
			var lastErr error
			delay := initialDelay

			for attempt := 0; attempt <= maxRetries; attempt++ {
				if attempt > 0 {
					select {
					case <-ctx.Done():
						return nil, ctx.Err()
					case <-time.After(delay):
					}

					delay *= 2
					if delay > maxDelay {
						delay = maxDelay
					}
				}

				v, err := call(ctx, next, args)
				if err == nil {
					return v, nil
				}
				lastErr = err
			}
			return nil, fmt.Errorf("failed after %d retries with backoff: %w", maxRetries, lastErr)
		}
	}
}

// Timeout fails the observer if it has not settled within d. The observer's
// context is canceled at the deadline; an observer that ignores it keeps
// running in the background. A panic in the observer is returned as
// *PanicError, or raised again on the caller's goroutine when the timeline
// does not recover panics.
func Timeout(d time.Duration) Decorator {
	return func(next Observer) Observer {
		return func(ctx context.Context, args ...any) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			type outcome struct {
				v        any
				err      error
				panicked *PanicError
			}
			done := make(chan outcome, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						pe := newPanicError(r)
						done <- outcome{err: pe, panicked: pe}
					}
				}()
				v, err := call(ctx, next, args)
				done <- outcome{v: v, err: err}
			}()

			select {
			case out := <-done:
				if out.panicked != nil && !recoversPanics(ctx) {
					panic(out.panicked.Value)
				}
				return out.v, out.err
			case <-ctx.Done():
				return nil, fmt.Errorf("observer timeout after %s: %w", d, ctx.Err())
			}
		}
	}
}

// Logging logs the start, completion and failure of an observer.
func Logging(l *slog.Logger, name string) Decorator {
	return func(next Observer) Observer {
		return func(ctx context.Context, args ...any) (any, error) {
			start := time.Now()
			attrs := []slog.Attr{
				slog.String("observer", name),
				logger.Moment(MomentName(ctx)),
				logger.DispatchID(DispatchID(ctx)),
			}

			l.LogAttrs(ctx, slog.LevelDebug, "observer started", attrs...)

			v, err := call(ctx, next, args)
			if err != nil {
				l.LogAttrs(ctx, slog.LevelError, "observer failed",
					append(attrs, logger.Duration(time.Since(start)), logger.Error(err))...)
				return nil, err
			}

			l.LogAttrs(ctx, slog.LevelDebug, "observer completed",
				append(attrs, logger.Duration(time.Since(start)))...)
			return v, nil
		}
	}
}
