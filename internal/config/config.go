package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voxmetric/call-timeline/internal/core/impact"
	"github.com/voxmetric/call-timeline/internal/core/layer"
	"github.com/voxmetric/call-timeline/internal/core/layout"
)

// Config drives one timeline run: which categories become layers, how rows
// are packed, the axis defaults, and the tag table used by the impact
// analyzer.
type Config struct {
	Axis struct {
		Width          float64 `yaml:"width"`
		Duration       float64 `yaml:"duration"`
		MaxGraduations int     `yaml:"maxGraduations"`
	} `yaml:"axis"`
	Layout     layout.Profile         `yaml:"layout"`
	Categories []layer.CategoryConfig `yaml:"categories"`
	Tags       []impact.TagDefinition `yaml:"tags"`
}

// Default returns the configuration used when no file is supplied: automatic
// layer grouping, the default packing profile, a 1280 pixel axis and an
// empty tag table.
func Default() Config {
	var cfg Config
	cfg.Axis.Width = 1280
	cfg.Axis.MaxGraduations = 20
	cfg.Layout = layout.DefaultProfile()
	return cfg
}

// Load reads a YAML configuration file, filling unset fields with defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	if cfg.Axis.Width <= 0 {
		cfg.Axis.Width = 1280
	}
	if cfg.Axis.MaxGraduations <= 0 {
		cfg.Axis.MaxGraduations = 20
	}
	if cfg.Layout.MaxRows <= 0 {
		cfg.Layout.MaxRows = layout.DefaultProfile().MaxRows
	}
	if cfg.Layout.PointWidth <= 0 {
		cfg.Layout.PointWidth = layout.DefaultProfile().PointWidth
	}

	return cfg, nil
}
