// Package config reads cac settings from the environment. Command-line flags
// take precedence over these values.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment configuration.
type Config struct {
	// Language is the default language for names and macros.
	Language string `env:"CAC_LANGUAGE" envDefault:"en"`

	// Catalog is a CUE catalogue file used instead of the embedded one.
	Catalog string `env:"CAC_CATALOG"`

	// MacroSettings is a YAML file of macro settings.
	MacroSettings string `env:"CAC_MACRO_SETTINGS"`

	// ShareURL is the web viewer base; share links are omitted when empty.
	ShareURL string `env:"CAC_SHARE_URL"`

	LogLevel slog.Level `env:"CAC_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the Config for the current environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
