// SPDX-License-Identifier: MIT
// Package config reads the bassgraph TOML configuration file.
//
//	defaults_file      = "speaker.csv"
//	input_invalidation = false
//	log_level          = "info"
//	metrics_addr       = ":9100"
//	watch              = true
//
//	[display]
//	precision = 4
//	group     = "driver"
//
// Every key is optional; missing keys keep the values of Default.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Sentinel errors.
var (
	// ErrInvalid indicates a configuration value outside its domain.
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the decoded configuration file.
type Config struct {
	DefaultsFile      string  `toml:"defaults_file"`
	InputInvalidation bool    `toml:"input_invalidation"`
	LogLevel          string  `toml:"log_level"`
	MetricsAddr       string  `toml:"metrics_addr"`
	Watch             bool    `toml:"watch"`
	Display           Display `toml:"display"`
}

// Display holds presentation settings.
type Display struct {
	// Precision overrides every parameter's significant digits when > 0.
	Precision int `toml:"precision"`
	// Group restricts listings to one group when set.
	Group string `toml:"group"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Watch:    true,
	}
}

// Load reads path over Default. A missing file is not an error when
// optional is true.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// Decode parses TOML text into cfg and validates the result. Unknown keys
// are rejected so typos surface.
func Decode(text string, cfg *Config) error {
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}

	return cfg.Validate()
}

// Validate checks value domains.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Display.Precision < 0 {
		return fmt.Errorf("%w: display.precision %d", ErrInvalid, c.Display.Precision)
	}

	return nil
}

// Level returns the slog level of LogLevel, info when unparsable.
func (c *Config) Level() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}

	return l
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, s)
	}

	return l, nil
}
