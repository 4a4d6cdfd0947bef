// Package config loads xkcdfs settings from an optional TOML file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"

	"github.com/dendrascience/xkcdfs/content"
)

// Config holds the settings shared by every command that reaches the archive.
// Durations are kept as strings in the file and parsed on use.
type Config struct {
	BaseURL         string `toml:"base_url"`
	Timeout         string `toml:"timeout"`
	LogLevel        string `toml:"log_level"`
	MetricsInterval string `toml:"metrics_interval"` // "0" or empty disables periodic metrics logging
	AllowOther      bool   `toml:"allow_other"`
}

// Default returns the settings used when neither a file nor flags say otherwise.
func Default() *Config {
	return &Config{
		BaseURL:  content.DefaultBaseURL,
		Timeout:  content.DefaultTimeout.String(),
		LogLevel: log.InfoLevel.String(),
	}
}

// LoadConfig reads path over the defaults. Keys absent from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that every field parses.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", c.BaseURL)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.MetricsIntervalDuration(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// TimeoutDuration parses Timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", c.Timeout)
	}
	return d, nil
}

// MetricsIntervalDuration parses MetricsInterval; empty means disabled.
func (c *Config) MetricsIntervalDuration() (time.Duration, error) {
	if c.MetricsInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.MetricsInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid metrics_interval %q: %w", c.MetricsInterval, err)
	}
	return d, nil
}
