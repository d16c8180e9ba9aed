package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var errUnsupportedFormat = errors.New("unsupported export format")

// Renderer backends for png/jpg output.
const (
	rendererChrome = "chrome"
	rendererNative = "native"
)

var supportedFormats = map[string]bool{"html": true, "svg": true, "png": true, "jpg": true, "jpeg": true}

// Config is the complete CLI configuration.
type Config struct {
	Render   RenderConfig  `mapstructure:"render"`
	Output   OutputConfig  `mapstructure:"output"`
	Viewport Viewport      `mapstructure:"viewport"`
	Logging  LoggingConfig `mapstructure:"logging"`
}

// RenderConfig tunes the gauge text and defaults.
type RenderConfig struct {
	Locale       string     `mapstructure:"locale"`
	Decimals     int        `mapstructure:"decimals"`
	LabelMaxLine int        `mapstructure:"label_max_line"`
	DefaultLow   float64    `mapstructure:"default_low"`
	DefaultHigh  float64    `mapstructure:"default_high"`
	Stylesheet   string     `mapstructure:"stylesheet"` // CSS file replacing the embedded one
	Colors       BandColors `mapstructure:"colors"`
}

// OutputConfig selects the export format and backend.
type OutputConfig struct {
	Format        string        `mapstructure:"format"`   // svg, html, png, jpg, jpeg
	Renderer      string        `mapstructure:"renderer"` // chrome or native
	JPEGQuality   int           `mapstructure:"jpeg_quality"`
	Concurrency   int           `mapstructure:"concurrency"`
	ChromeTimeout time.Duration `mapstructure:"chrome_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // text or json
	File       string `mapstructure:"file"`   // rotated log file; stderr when empty
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// loadConfig reads defaults, then the config file, then CIRCLEGAUGE_*
// environment variables. With an empty path the file is searched in
// ./config, ~/.circlegauge and /etc/circlegauge and may be absent.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("circlegauge")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(filepath.Join(homeDir(), ".circlegauge"))
		v.AddConfigPath("/etc/circlegauge")
	}

	v.SetEnvPrefix("CIRCLEGAUGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Output.Renderer = strings.ToLower(cfg.Output.Renderer)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultRenderOptions()
	v.SetDefault("render.locale", d.Locale)
	v.SetDefault("render.decimals", d.Decimals)
	v.SetDefault("render.label_max_line", d.LabelMaxLine)
	v.SetDefault("render.default_low", d.DefaultLow)
	v.SetDefault("render.default_high", d.DefaultHigh)
	v.SetDefault("render.stylesheet", "")
	v.SetDefault("render.colors.low", d.Colors.Low)
	v.SetDefault("render.colors.mid", d.Colors.Mid)
	v.SetDefault("render.colors.high", d.Colors.High)

	v.SetDefault("output.format", "svg")
	v.SetDefault("output.renderer", rendererChrome)
	v.SetDefault("output.jpeg_quality", 90)
	v.SetDefault("output.concurrency", 4)
	v.SetDefault("output.chrome_timeout", "30s")

	v.SetDefault("viewport.width", 300)
	v.SetDefault("viewport.height", 300)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
}

func (c *Config) validate() error {
	if !supportedFormats[c.Output.Format] {
		return fmt.Errorf("output.format %q: %w", c.Output.Format, errUnsupportedFormat)
	}
	if c.Output.Renderer != rendererChrome && c.Output.Renderer != rendererNative {
		return fmt.Errorf("output.renderer must be %q or %q, got %q", rendererChrome, rendererNative, c.Output.Renderer)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("output.jpeg_quality must be within 1..100, got %d", c.Output.JPEGQuality)
	}
	if c.Output.Concurrency < 1 {
		return fmt.Errorf("output.concurrency must be positive, got %d", c.Output.Concurrency)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Render.Decimals < 0 {
		return fmt.Errorf("render.decimals must not be negative, got %d", c.Render.Decimals)
	}
	if c.Render.LabelMaxLine < 1 {
		return fmt.Errorf("render.label_max_line must be positive, got %d", c.Render.LabelMaxLine)
	}
	return nil
}

// options converts the render section into renderer options.
func (c RenderConfig) options() RenderOptions {
	return RenderOptions{
		Locale:       c.Locale,
		Decimals:     c.Decimals,
		LabelMaxLine: c.LabelMaxLine,
		DefaultLow:   c.DefaultLow,
		DefaultHigh:  c.DefaultHigh,
		Colors:       c.Colors,
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
