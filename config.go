package timeline

import "github.com/dmitrymomot/timeline/core/config"

// Config holds environment-driven timeline settings.
// The zero Config matches the defaults New uses.
type Config struct {
	Name                 string `env:"TIMELINE_NAME"`
	LogLevel             Level  `env:"TIMELINE_LOG_LEVEL" envDefault:"info"`
	DisablePanicRecovery bool   `env:"TIMELINE_DISABLE_PANIC_RECOVERY"`
}

// DefaultConfig returns the settings New uses when no options are given.
func DefaultConfig() Config {
	return Config{LogLevel: DefaultLevel}
}

// LoadConfig reads Config from the environment (and a .env file, if present).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
