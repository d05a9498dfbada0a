// Package config loads converter defaults from the environment. Command
// line flags override whatever is loaded here.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	hitrack "github.com/mbee/hitrack2tcx"
)

// Config holds the environment-driven defaults of the converter.
type Config struct {
	Sport        string `env:"HITRACK_SPORT" envDefault:"Running"`
	SkipFilter   bool   `env:"HITRACK_SKIP_FILTER"`
	Validate     bool   `env:"HITRACK_VALIDATE"`
	ExportFormat string `env:"HITRACK_EXPORT_FORMAT"`
	ExportFIT    bool   `env:"HITRACK_FIT_EXPORT"`
	OutDir       string `env:"HITRACK_OUT_DIR"`
}

// Load reads the configuration from the environment and validates the
// enumerated fields.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if _, err := hitrack.ParseSport(cfg.Sport); err != nil {
		return Config{}, fmt.Errorf("HITRACK_SPORT: %w", err)
	}
	switch cfg.ExportFormat {
	case "", "parquet", "csv":
	default:
		return Config{}, fmt.Errorf("HITRACK_EXPORT_FORMAT: unsupported format %q", cfg.ExportFormat)
	}
	return cfg, nil
}
