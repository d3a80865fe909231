package timeline

import (
	"context"
	"fmt"
)

// LogFunc adapts fn into an observer for the log moment.
// The level defaults to DefaultLevel when the moment is emitted without one.
func LogFunc(fn func(ctx context.Context, message string, level Level) error) Observer {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, args ...any) (any, error) {
		message, level := logArgs(args)
		return nil, fn(ctx, message, level)
	}
}

// ErrorFunc adapts fn into an observer for the error moment.
// A failure value that is not an error is wrapped with fmt.Errorf.
func ErrorFunc(fn func(ctx context.Context, err error) error) Observer {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, args ...any) (any, error) {
		return nil, fn(ctx, failureArg(args))
	}
}

func logArgs(args []any) (string, Level) {
	message := ""
	level := DefaultLevel

	if len(args) > 0 && args[0] != nil {
		if s, ok := args[0].(string); ok {
			message = s
		} else {
			message = fmt.Sprint(args[0])
		}
	}
	if len(args) > 1 {
		if l, ok := args[1].(Level); ok {
			level = l
		}
	}
	return message, level
}

func failureArg(args []any) error {
	if len(args) == 0 || args[0] == nil {
		return nil
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("%v", args[0])
}
