// Package config loads histoscope configuration from YAML. The resulting
// struct is passed explicitly to the pieces that need it rather than held
// in a package-level singleton.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ColorScale selects how heatmap cell values map to color intensity.
type ColorScale string

const (
	ScaleLinear ColorScale = "linear"
	ScaleLog    ColorScale = "log"
)

// ThemeMode selects the TUI color theme.
type ThemeMode string

const (
	ThemeAuto  ThemeMode = "auto"
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Config holds all histoscope settings.
type Config struct {
	// Viewer settings
	Viewer ViewerConfig `yaml:"viewer"`

	// Catalog file location
	CatalogPath string `yaml:"catalog_path"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig configures the interactive viewer defaults.
type ViewerConfig struct {
	Theme      ThemeMode  `yaml:"theme"`
	ColorScale ColorScale `yaml:"color_scale"`
	// InitialAxes names the axes displayed when a histogram loads,
	// before any interaction. At most the first two are used.
	InitialAxes []string `yaml:"initial_axes"`
}

// LoggingConfig configures debug logging.
type LoggingConfig struct {
	Verbose bool   `yaml:"verbose"`
	File    string `yaml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Theme:      ThemeAuto,
			ColorScale: ScaleLinear,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".histoscope.yaml"
	}
	return filepath.Join(home, ".histoscope.yaml")
}

// Load reads the config at path, layering it over defaults. A missing
// file is not an error: defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Viewer.ColorScale {
	case "", ScaleLinear, ScaleLog:
	default:
		return fmt.Errorf("unknown color_scale %q", c.Viewer.ColorScale)
	}
	switch c.Viewer.Theme {
	case "", ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("unknown theme %q", c.Viewer.Theme)
	}
	if c.Viewer.ColorScale == "" {
		c.Viewer.ColorScale = ScaleLinear
	}
	if c.Viewer.Theme == "" {
		c.Viewer.Theme = ThemeAuto
	}
	return nil
}
