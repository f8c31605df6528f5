// Package config loads placegraph settings from a TOML file and the
// environment.
//
// Values are layered: [Default], then the file at the given path when it
// exists, then PLACEGRAPH_* environment variables:
//
//	PLACEGRAPH_UNIT             project length unit (metre, mm, ft, ...)
//	PLACEGRAPH_TOLERANCE        orthonormality tolerance for input matrices
//	PLACEGRAPH_PROPAGATE        propagate edits to dependents by default
//	PLACEGRAPH_LOG_LEVEL        debug, info, warn or error
//	PLACEGRAPH_RENDER_FORMAT    dot, svg, json, pdf or png
//	PLACEGRAPH_RENDER_DETAILED  include GlobalIds and local transforms
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/geom"
	"github.com/matzehuels/placegraph/pkg/placement"
	"github.com/matzehuels/placegraph/pkg/render"
	"github.com/matzehuels/placegraph/pkg/units"
)

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "PLACEGRAPH_"

// Config holds placegraph settings.
type Config struct {
	Unit      string  `toml:"unit" env:"UNIT"`
	Tolerance float64 `toml:"tolerance" env:"TOLERANCE"`
	Propagate bool    `toml:"propagate" env:"PROPAGATE"`
	LogLevel  string  `toml:"log_level" env:"LOG_LEVEL"`
	Render    Render  `toml:"render" envPrefix:"RENDER_"`
}

// Render holds graph rendering settings.
type Render struct {
	Format   string `toml:"format" env:"FORMAT"`
	Detailed bool   `toml:"detailed" env:"DETAILED"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Unit:      string(units.Metre),
		Tolerance: geom.DefaultTolerance,
		LogLevel:  "info",
		Render:    Render{Format: string(render.FormatDOT)},
	}
}

// Load reads settings from path and the environment. A missing file is not
// an error; pass "" to skip the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "stat %s", path)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports an INVALID_CONFIG error for unknown units, log levels or
// render formats, and for a non-positive tolerance.
func (c Config) Validate() error {
	if _, err := units.Parse(c.Unit); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "unit")
	}
	if c.Tolerance <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tolerance must be positive, got %g", c.Tolerance)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log level")
	}
	if !render.Format(strings.ToLower(c.Render.Format)).Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown render format %q", c.Render.Format)
	}
	return nil
}

// LengthUnit returns the configured project unit, or metre when invalid.
func (c Config) LengthUnit() units.LengthUnit {
	u, err := units.Parse(c.Unit)
	if err != nil {
		return units.Metre
	}
	return u
}

// Level returns the configured log level, or info when invalid.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// RenderFormat returns the configured render format.
func (c Config) RenderFormat() render.Format {
	return render.Format(strings.ToLower(c.Render.Format))
}

// EngineOptions returns placement engine options for these settings.
func (c Config) EngineOptions(logger *log.Logger) placement.Options {
	return placement.Options{Tolerance: c.Tolerance, Logger: logger}
}

// TOML encodes the settings in the file format Load reads.
func (c Config) TOML() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}

// DefaultPath returns $XDG_CONFIG_HOME/placegraph/config.toml, falling back
// to ~/.config/placegraph/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "placegraph", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "placegraph", "config.toml"), nil
}
