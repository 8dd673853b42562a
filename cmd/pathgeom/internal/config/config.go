package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"honnef.co/go/geom"
)

// FileName is the name of the optional configuration file.
const FileName = "pathgeom.yaml"

// Config represents the optional pathgeom.yaml configuration.
type Config struct {
	Flatten   FlattenConfig `yaml:"flatten"`
	Winding   string        `yaml:"winding,omitempty"`
	Transform []float64     `yaml:"transform,omitempty"`
	Raster    RasterConfig  `yaml:"raster"`
	LogLevel  string        `yaml:"log_level,omitempty"`
}

// FlattenConfig contains flattening settings.
type FlattenConfig struct {
	Flatness float64 `yaml:"flatness,omitempty"`
	Limit    int     `yaml:"limit,omitempty"`
}

// RasterConfig contains rasterization settings.
type RasterConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Flatness  float64
	Limit     int
	Winding   geom.WindingRule
	Transform *geom.Affine
	Width     int
	Height    int
	LogLevel  slog.Level
}

// LoadOptional reads pathgeom.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads pathgeom.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve()
}

// Resolve validates the configuration and fills in defaults.
func (cfg *Config) Resolve() (*Resolved, error) {
	res := &Resolved{
		Flatness: cfg.Flatten.Flatness,
		Limit:    cfg.Flatten.Limit,
		Width:    cfg.Raster.Width,
		Height:   cfg.Raster.Height,
		LogLevel: slog.LevelWarn,
	}
	if res.Flatness == 0 {
		res.Flatness = 0.1
	}
	if res.Flatness < 0 {
		return nil, fmt.Errorf("flatten.flatness must not be negative (got %g)", res.Flatness)
	}
	if res.Limit == 0 {
		res.Limit = geom.DefaultRecursionLimit
	}
	if res.Limit < 0 {
		return nil, fmt.Errorf("flatten.limit must not be negative (got %d)", res.Limit)
	}
	if res.Width == 0 {
		res.Width = 256
	}
	if res.Height == 0 {
		res.Height = 256
	}
	if res.Width < 0 || res.Height < 0 {
		return nil, fmt.Errorf("raster size must not be negative (got %dx%d)", res.Width, res.Height)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Winding)) {
	case "", "nonzero", "non-zero":
		res.Winding = geom.NonZero
	case "evenodd", "even-odd":
		res.Winding = geom.EvenOdd
	default:
		return nil, fmt.Errorf("unknown winding rule %q", cfg.Winding)
	}

	if len(cfg.Transform) > 0 {
		if len(cfg.Transform) != 4 && len(cfg.Transform) != 6 {
			return nil, fmt.Errorf("transform must have 4 or 6 coefficients (got %d)", len(cfg.Transform))
		}
		aff, err := geom.NewAffineFlat(cfg.Transform)
		if err != nil {
			return nil, err
		}
		res.Transform = &aff
	}

	if lvl := strings.TrimSpace(cfg.LogLevel); lvl != "" {
		if err := res.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid log_level: %w", err)
		}
	}
	return res, nil
}

// FlattenOptions returns the flattening options of the configuration.
func (r *Resolved) FlattenOptions() []geom.FlattenOption {
	return []geom.FlattenOption{geom.WithLimit(r.Limit)}
}
