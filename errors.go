package timeline

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrInvalidObserver is returned when a registration receives a nil observer.
	ErrInvalidObserver = errors.New("observer must be a non-nil function")

	// ErrInvalidBehavior is returned for an add behavior other than add, prepend or replace.
	ErrInvalidBehavior = errors.New("unknown add behavior")

	// ErrUnhandledFailure is matched by every *UnhandledFailureError.
	ErrUnhandledFailure = errors.New("unhandled failure: no error observers registered")

	// ErrMissingArgument is returned by typed observers when the moment was emitted without the expected argument.
	ErrMissingArgument = errors.New("missing moment argument")

	// ErrArgumentType is returned by typed observers when an argument has an unexpected type.
	ErrArgumentType = errors.New("unexpected moment argument type")

	// ErrResultType is returned when an observer or combinator result has an unexpected type.
	ErrResultType = errors.New("unexpected moment result type")

	// ErrInvalidLevel is returned when parsing an unknown log level.
	ErrInvalidLevel = errors.New("unknown log level")
)

// UnhandledFailureError is returned when the error moment is emitted while
// no error observers are registered. Value is the failure that nobody handled.
type UnhandledFailureError struct {
	Value any
}

func (e *UnhandledFailureError) Error() string {
	if e.Value == nil {
		return ErrUnhandledFailure.Error()
	}
	return fmt.Sprintf("%s: %v", ErrUnhandledFailure, e.Value)
}

// Unwrap exposes both ErrUnhandledFailure and, when Value is an error, the original failure.
func (e *UnhandledFailureError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrUnhandledFailure, err}
	}
	return []error{ErrUnhandledFailure}
}

// PanicError carries a panic recovered while a combinator or observer was running.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
