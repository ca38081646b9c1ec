// Package config loads editor settings from FSMCANVAS_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/ha1tch/fsm-canvas/pkg/export"
)

// Prefix is the environment variable prefix.
const Prefix = "fsmcanvas"

// Config holds the editor settings.
type Config struct {
	GridSize      int      `envconfig:"GRID_SIZE" default:"4"`
	FontSize      float64  `envconfig:"FONT_SIZE" default:"14"`
	ExportDir     string   `envconfig:"EXPORT_DIR" default:"."`
	ExportFormats []string `envconfig:"EXPORT_FORMATS" default:"svg,png"`
	LogLevel      string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFile       string   `envconfig:"LOG_FILE" default:"fsmcanvas.log"`
	ActionLog     bool     `envconfig:"ACTION_LOG" default:"false"`
	DoubleClickMS int      `envconfig:"DOUBLE_CLICK_MS" default:"400"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.GridSize < 1 {
		return fmt.Errorf("config: GRID_SIZE must be positive, got %d", c.GridSize)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("config: FONT_SIZE must be positive, got %v", c.FontSize)
	}
	if c.DoubleClickMS < 1 {
		return fmt.Errorf("config: DOUBLE_CLICK_MS must be positive, got %d", c.DoubleClickMS)
	}
	if _, err := c.Formats(); err != nil {
		return fmt.Errorf("config: EXPORT_FORMATS: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	return nil
}

// Formats returns the configured export formats in order.
func (c *Config) Formats() ([]export.Format, error) {
	formats := make([]export.Format, 0, len(c.ExportFormats))
	for _, name := range c.ExportFormats {
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// Level returns LogLevel as a slog level ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// DoubleClick returns the double-click window.
func (c *Config) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}
