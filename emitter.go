package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/timeline/core/logger"
)

// EmitFunc invokes one moment with the given arguments.
type EmitFunc func(ctx context.Context, args ...any) (any, error)

// Emitter is the dispatch accessor of a timeline. New returns it only to the
// owner, which keeps it unexported so consumers can subscribe but not emit.
type Emitter struct {
	tl  *Timeline
	mu  sync.Mutex
	fns map[string]EmitFunc
}

func newEmitter(tl *Timeline) *Emitter {
	e := &Emitter{
		tl:  tl,
		fns: make(map[string]EmitFunc, len(tl.moments)+2),
	}
	for name := range tl.moments {
		e.fns[name] = e.bind(name)
	}
	e.fns[MomentLog] = e.bind(MomentLog)
	e.fns[MomentError] = e.bind(MomentError)
	return e
}

// Timeline returns the timeline this emitter dispatches for.
func (e *Emitter) Timeline() *Timeline {
	return e.tl
}

// Moment returns the cached invocation function for name.
func (e *Emitter) Moment(name string) EmitFunc {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn, ok := e.fns[name]
	if !ok {
		fn = e.bind(name)
		e.fns[name] = fn
	}
	return fn
}

// Emit invokes the named moment.
//
// With no observers registered, Emit is a no-op returning (nil, nil), except
// for the error moment, which fails with *UnhandledFailureError. Otherwise
// the moment's combinator runs and its (awaited) result is returned. A
// failure in any moment but error is re-dispatched to the error moment with
// the failure as its only argument; Emit then returns nil, or the error
// moment's own failure. Failures in the error moment are returned as is.
func (e *Emitter) Emit(ctx context.Context, name string, args ...any) (any, error) {
	return e.dispatch(ctx, name, args)
}

// Log emits the log moment with message at the timeline's default level.
func (e *Emitter) Log(ctx context.Context, message string) error {
	return e.LogAt(ctx, e.tl.defaultLevel, message)
}

// LogAt emits the log moment with message at the given level.
func (e *Emitter) LogAt(ctx context.Context, level Level, message string) error {
	_, err := e.dispatch(ctx, MomentLog, []any{message, level})
	return err
}

// Logf is Log with fmt.Sprintf formatting.
func (e *Emitter) Logf(ctx context.Context, format string, args ...any) error {
	return e.Log(ctx, fmt.Sprintf(format, args...))
}

// Error emits the error moment with err.
func (e *Emitter) Error(ctx context.Context, err error) error {
	_, dispatchErr := e.dispatch(ctx, MomentError, []any{err})
	return dispatchErr
}

func (e *Emitter) bind(name string) EmitFunc {
	return func(ctx context.Context, args ...any) (any, error) {
		return e.dispatch(ctx, name, args)
	}
}

func (e *Emitter) dispatch(ctx context.Context, name string, args []any) (any, error) {
	t := e.tl

	observers := t.registry.snapshot(name)
	if len(observers) == 0 {
		if name != MomentError {
			return nil, nil
		}

		var failure any
		if len(args) > 0 {
			failure = args[0]
		}
		t.unhandled.Add(1)
		t.logger.ErrorContext(ctx, "unhandled timeline failure",
			slog.String("escalated_from", EscalatedFrom(ctx)),
			logger.ID("failure", failure))
		return nil, &UnhandledFailureError{Value: failure}
	}

	start := time.Now()
	id := uuid.NewString()
	t.dispatched.Add(1)
	t.lastDispatchAt.Store(start.UnixNano())

	dctx := withDispatch(ctx, t, name, id, start)
	result, err := t.invoke(dctx, t.combinator(name), observers, args)
	if err == nil {
		return result, nil
	}

	t.failed.Add(1)

	if name == MomentError {
		return nil, err
	}

	t.escalated.Add(1)
	t.logger.DebugContext(ctx, "escalating moment failure",
		logger.Moment(name),
		logger.DispatchID(id),
		logger.Elapsed(start),
		logger.Error(err))

	_, err = e.dispatch(withEscalatedFrom(ctx, name), MomentError, []any{err})
	return nil, err
}

// invoke runs a combinator and awaits its result.
func (t *Timeline) invoke(ctx context.Context, combine Combinator, observers []Observer, args []any) (result any, err error) {
	if t.recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				t.logger.WarnContext(ctx, "moment panicked",
					logger.Moment(MomentName(ctx)),
					logger.DispatchID(DispatchID(ctx)),
					logger.Panic(r))
				result, err = nil, newPanicError(r)
			}
		}()
	}

	result, err = combine(ctx, observers, args...)
	if err != nil {
		return nil, err
	}
	return Await(result)
}
