package timeline

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level is the severity carried by the log moment.
// The zero Level is LevelInfo.
type Level int

const (
	LevelVerbose Level = iota - 1
	LevelInfo
	LevelWarning
	LevelError
)

// DefaultLevel is used by Emitter.Log when no level is given.
const DefaultLevel = LevelInfo

func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a level name to a Level. Matching is case-insensitive and
// accepts the slog spellings "debug" and "warn" as aliases.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose", "debug":
		return LevelVerbose, nil
	case "info", "":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	}
	return DefaultLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so Level loads from env vars.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Slog maps the level onto slog's scale.
func (l Level) Slog() slog.Level {
	switch {
	case l <= LevelVerbose:
		return slog.LevelDebug
	case l == LevelInfo:
		return slog.LevelInfo
	case l == LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
