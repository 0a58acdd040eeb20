// Package config loads the process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration. The data directory is the only
// knob the core needs; everything under it is laid out by the stores.
type Config struct {
	// DataDir is the root of the shared storage directory.
	DataDir string `env:"LOSTFOUND_DATA_DIR" envDefault:"data"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
