package timeline

import (
	"context"
	"time"
)

type timelineCtx struct{}

type momentCtx struct{}

type dispatchIDCtx struct{}

type dispatchStartCtx struct{}

type escalatedFromCtx struct{}

func withDispatch(ctx context.Context, tl *Timeline, moment, id string, start time.Time) context.Context {
	ctx = context.WithValue(ctx, timelineCtx{}, tl)
	ctx = context.WithValue(ctx, momentCtx{}, moment)
	ctx = context.WithValue(ctx, dispatchIDCtx{}, id)
	ctx = context.WithValue(ctx, dispatchStartCtx{}, start)
	return ctx
}

func withEscalatedFrom(ctx context.Context, moment string) context.Context {
	return context.WithValue(ctx, escalatedFromCtx{}, moment)
}

// FromContext returns the timeline whose moment is being dispatched.
// Observers use it in place of a receiver. Returns nil outside a dispatch.
func FromContext(ctx context.Context) *Timeline {
	if tl, ok := ctx.Value(timelineCtx{}).(*Timeline); ok {
		return tl
	}
	return nil
}

// MomentName returns the name of the moment being dispatched.
// Returns empty string if not present.
func MomentName(ctx context.Context) string {
	if name, ok := ctx.Value(momentCtx{}).(string); ok {
		return name
	}
	return ""
}

// DispatchID returns the unique ID of the current dispatch.
// Returns empty string if not present.
func DispatchID(ctx context.Context) string {
	if id, ok := ctx.Value(dispatchIDCtx{}).(string); ok {
		return id
	}
	return ""
}

// DispatchStartTime returns when the current dispatch began.
// Returns zero time if not present.
func DispatchStartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(dispatchStartCtx{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}

// EscalatedFrom returns the moment whose failure was escalated into the
// error moment being dispatched. Empty for direct error emits.
func EscalatedFrom(ctx context.Context) string {
	if name, ok := ctx.Value(escalatedFromCtx{}).(string); ok {
		return name
	}
	return ""
}
