// Package config reads scanboard.yaml.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/northcutted/scanboard/pkg/dismissal"
	"github.com/northcutted/scanboard/pkg/loader"
	"github.com/northcutted/scanboard/pkg/renderer"
	"github.com/northcutted/scanboard/pkg/view"
)

// DefaultFile is picked up from the working directory when --config is not set.
const DefaultFile = "scanboard.yaml"

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	Sources    loader.Sources `yaml:"sources"`
	Dismissals string         `yaml:"dismissals"`
	Format     string         `yaml:"format"`
	Output     string         `yaml:"output"`
	PageSize   int            `yaml:"page_size"`
	Depth      int            `yaml:"depth"`
	NoColor    bool           `yaml:"no_color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Sources:    loader.DefaultSources(),
		Dismissals: dismissal.DefaultPath,
		Format:     string(renderer.FormatText),
		PageSize:   view.DefaultPageSize,
		Depth:      view.DefaultDepth,
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// LoadOptional behaves like Load but returns the defaults when path does
// not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Sources = cfg.Sources.WithDefaults()
	if cfg.Dismissals == "" {
		cfg.Dismissals = dismissal.DefaultPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", c.Depth)
	}
	if _, err := renderer.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	return nil
}
