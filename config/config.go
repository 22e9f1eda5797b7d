// Package config loads runtime settings from ARKFALL_* environment
// variables. Command-line flags in main override what is loaded here.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings.
type Config struct {
	// Seed fixes the RNG; 0 draws a fresh seed.
	Seed int64 `env:"ARKFALL_SEED"`
	// ContentDir loads encounter content from disk instead of the built-in set.
	ContentDir string `env:"ARKFALL_CONTENT_DIR"`
	Plain      bool   `env:"ARKFALL_PLAIN"`

	BarkDelay  time.Duration `env:"ARKFALL_BARK_DELAY" envDefault:"600ms"`
	MaxSalvage int           `env:"ARKFALL_MAX_SALVAGE" envDefault:"300"`
	MaxRations int           `env:"ARKFALL_MAX_RATIONS" envDefault:"30"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.BarkDelay < 0 {
		return fmt.Errorf("bark delay must not be negative, got %s", c.BarkDelay)
	}
	if c.MaxSalvage <= 0 {
		return fmt.Errorf("max salvage must be positive, got %d", c.MaxSalvage)
	}
	if c.MaxRations <= 0 {
		return fmt.Errorf("max rations must be positive, got %d", c.MaxRations)
	}
	return nil
}
