package timeline

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/timeline/core/logger"
)

// SlogObserver returns a log moment observer that writes each message to l
// at the slog level matching its Level.
//
//	tl.On().Log(timeline.SlogObserver(log))
func SlogObserver(l *slog.Logger) Observer {
	return LogFunc(func(ctx context.Context, message string, level Level) error {
		l.LogAttrs(ctx, level.Slog(), message, dispatchAttrs(ctx)...)
		return nil
	})
}

// ErrorLogObserver returns an error moment observer that logs the failure to
// l and treats it as handled.
func ErrorLogObserver(l *slog.Logger) Observer {
	return ErrorFunc(func(ctx context.Context, err error) error {
		attrs := append(dispatchAttrs(ctx), logger.Error(err))
		if from := EscalatedFrom(ctx); from != "" {
			attrs = append(attrs, slog.String("escalated_from", from))
		}
		l.LogAttrs(ctx, slog.LevelError, "timeline failure", attrs...)
		return nil
	})
}

func dispatchAttrs(ctx context.Context) []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	if tl := FromContext(ctx); tl != nil {
		attrs = append(attrs, logger.TimelineID(tl.ID()))
	}
	return append(attrs,
		logger.Moment(MomentName(ctx)),
		logger.DispatchID(DispatchID(ctx)),
	)
}
