// Package logger provides structured logging utilities built on log/slog.
//
// New builds a *slog.Logger from functional options:
//
//	import "github.com/dmitrymomot/timeline/core/logger"
//
//	// Development: text format, debug level, source locations
//	log := logger.New(logger.WithDevelopment("myapp"))
//
//	// Production: JSON format, info level
//	log := logger.New(logger.WithProduction("myapp"))
//
//	// Custom
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "api")),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, which slog drops,
// so they can be passed without nil checks:
//
//	log.Error("dispatch failed",
//		logger.Moment("greet"),
//		logger.DispatchID(id),
//		logger.Error(err),
//	)
//
// Discard returns a logger that drops everything; components use it as their
// default so logging stays opt-in.
package logger
