package timeline

import (
	"context"
	"fmt"
)

// Hook is a typed handle for a moment whose observers take one argument of
// type A and produce results of type R. It keeps registration and emission
// for that moment checked at compile time.
//
// Example:
//
//	var Greet = timeline.NewHook[string, int]("greet")
//
//	Greet.On(tl, func(ctx context.Context, name string) (int, error) {
//	    return len(name), nil
//	})
//	total, err := Greet.Emit(ctx, emit, "ada")
type Hook[A, R any] struct {
	name string
}

// NewHook creates a typed handle for the moment called name.
func NewHook[A, R any](name string) Hook[A, R] {
	return Hook[A, R]{name: name}
}

// Name returns the moment name.
func (h Hook[A, R]) Name() string {
	return h.name
}

// Observer adapts a typed function into an Observer.
// A nil fn yields a nil Observer, which registration rejects.
func (h Hook[A, R]) Observer(fn func(ctx context.Context, arg A) (R, error)) Observer {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, args ...any) (any, error) {
		arg, err := argAt[A](h.name, args, 0)
		if err != nil {
			return nil, err
		}
		return fn(ctx, arg)
	}
}

// Listener adapts a typed function without a result into an Observer.
func (h Hook[A, R]) Listener(fn func(ctx context.Context, arg A) error) Observer {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, args ...any) (any, error) {
		arg, err := argAt[A](h.name, args, 0)
		if err != nil {
			return nil, err
		}
		return nil, fn(ctx, arg)
	}
}

// On registers fn on tl.
func (h Hook[A, R]) On(tl *Timeline, fn func(ctx context.Context, arg A) (R, error), behavior ...Behavior) ([]Observer, error) {
	return tl.On().Moment(h.name)(h.Observer(fn), behavior...)
}

// Listen registers a result-less fn on tl.
func (h Hook[A, R]) Listen(tl *Timeline, fn func(ctx context.Context, arg A) error, behavior ...Behavior) ([]Observer, error) {
	return tl.On().Moment(h.name)(h.Listener(fn), behavior...)
}

// Emit invokes the moment with arg and converts the result to R.
// A nil result (no observers, escalated failure, broadcast) yields R's zero value.
func (h Hook[A, R]) Emit(ctx context.Context, e *Emitter, arg A) (R, error) {
	var zero R

	v, err := e.Emit(ctx, h.name, arg)
	if err != nil || v == nil {
		return zero, err
	}

	r, ok := v.(R)
	if !ok {
		return zero, fmt.Errorf("%w: moment %q returned %T, want %T", ErrResultType, h.name, v, zero)
	}
	return r, nil
}

// argAt extracts args[i] as T. A nil argument yields T's zero value.
func argAt[T any](moment string, args []any, i int) (T, error) {
	var zero T
	if i >= len(args) {
		return zero, fmt.Errorf("%w: moment %q expects argument %d", ErrMissingArgument, moment, i)
	}
	if args[i] == nil {
		return zero, nil
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: moment %q argument %d is %T, want %T", ErrArgumentType, moment, i, args[i], zero)
	}
	return v, nil
}
