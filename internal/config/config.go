// Package config reads SU2KIT_* environment defaults. Command-line flags
// always win; these only seed the flag defaults so batch jobs can pin a
// site-wide setup in a .env file.
package config

import (
	"os"
	"strconv"

	"su2kit/internal/errors"
)

// Config holds environment-supplied defaults for the analysis commands.
type Config struct {
	NBoot      int
	BlockWidth int
	Seed       int64
	Workers    int
	ArchiveDSN string
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		NBoot:      1000,
		BlockWidth: 1,
		Seed:       0,
		Workers:    0,
		ArchiveDSN: os.Getenv("SU2KIT_ARCHIVE_DSN"),
	}

	var err error
	if cfg.NBoot, err = intEnv("SU2KIT_NBOOT", cfg.NBoot); err != nil {
		return nil, err
	}
	if cfg.BlockWidth, err = intEnv("SU2KIT_BLOCKWIDTH", cfg.BlockWidth); err != nil {
		return nil, err
	}
	if cfg.Workers, err = intEnv("SU2KIT_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if raw := os.Getenv("SU2KIT_SEED"); raw != "" {
		if cfg.Seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, errors.ConfigInvalid("SU2KIT_SEED must be an integer: " + raw)
		}
	}

	if cfg.NBoot < 1 {
		return nil, errors.ConfigInvalid("SU2KIT_NBOOT must be positive")
	}
	if cfg.BlockWidth < 1 {
		return nil, errors.ConfigInvalid("SU2KIT_BLOCKWIDTH must be at least 1")
	}
	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer: " + raw)
	}
	return v, nil
}
