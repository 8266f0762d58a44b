// Package config loads lumiere settings from LUMIERE_* environment
// variables. Command-line flags override these values.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by all commands.
type Config struct {
	// OutDir is the root the build writes artifacts under.
	OutDir string `env:"LUMIERE_OUT_DIR" envDefault:"dist"`
	// Sources are explicit token source files, in merge order.
	Sources []string `env:"LUMIERE_SOURCES" envSeparator:","`
	// Globs are doublestar patterns for source discovery.
	Globs []string `env:"LUMIERE_SOURCE_GLOBS" envSeparator:","`
	// Addr is the viewer listen address.
	Addr string `env:"LUMIERE_ADDR" envDefault:"127.0.0.1:6006"`
	// PrefsDB is the viewer preference database; empty keeps preferences
	// in memory.
	PrefsDB string `env:"LUMIERE_PREFS_DB"`
	// Verbose enables debug logging.
	Verbose bool `env:"LUMIERE_VERBOSE"`
}

// Load parses the environment into a Config with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
