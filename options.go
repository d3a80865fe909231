package timeline

import "log/slog"

// Option configures a Timeline.
type Option func(*Timeline)

// WithLogger sets the logger used for the timeline's own diagnostics
// (escalations, recovered panics, unhandled failures). This is not the log
// moment; subscribe SlogObserver to route the log moment into slog.
// Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Timeline) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithName sets a human-readable name that is attached to diagnostics.
func WithName(name string) Option {
	return func(t *Timeline) {
		t.name = name
	}
}

// WithRecoverPanics controls whether panics in combinators and observers are
// recovered into *PanicError failures. Enabled by default.
func WithRecoverPanics(enabled bool) Option {
	return func(t *Timeline) {
		t.recoverPanics = enabled
	}
}

// WithDefaultLevel sets the level Emitter.Log uses.
func WithDefaultLevel(level Level) Option {
	return func(t *Timeline) {
		t.defaultLevel = level
	}
}

// WithConfig applies a Config loaded from the environment.
func WithConfig(cfg Config) Option {
	return func(t *Timeline) {
		if cfg.Name != "" {
			t.name = cfg.Name
		}
		t.defaultLevel = cfg.LogLevel
		t.recoverPanics = !cfg.DisablePanicRecovery
	}
}
