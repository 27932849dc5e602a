// Package config loads flightify settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by every command. Command-line flags take
// precedence over these values.
type Config struct {
	DBPath       string `env:"FLIGHTIFY_DB"`
	CatalogPath  string `env:"FLIGHTIFY_CATALOG"`
	BankStrategy string `env:"FLIGHTIFY_BANK_STRATEGY" envDefault:"dedup"`
	LogLevel     string `env:"FLIGHTIFY_LOG_LEVEL"     envDefault:"INFO"`
	LogFormat    string `env:"FLIGHTIFY_LOG_FORMAT"    envDefault:"CONSOLE"`
	LogFile      string `env:"FLIGHTIFY_LOG_FILE"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DefaultLogFile returns $XDG_STATE_HOME/flightify/flightify.log, falling
// back to ~/.local/state.
func DefaultLogFile() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "flightify", "flightify.log"), nil
}
