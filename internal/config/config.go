// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads and saves permcalc settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/gofrs/flock"
	"github.com/janderssonse/permcalc/internal/permission"
	"github.com/pelletier/go-toml/v2"
)

// Default values.
const (
	DefaultTheme      = "tokyo-night"
	DefaultLogLevel   = "warn"
	DefaultMaxSizeMB  = 5
	DefaultMaxBackups = 3

	filePerm = 0o644
	dirPerm  = 0o755
)

// Config errors.
var (
	// ErrInvalidConfig is returned when the config file is not valid TOML.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidDefault is returned when a default digit is not empty or 0-7.
	ErrInvalidDefault = errors.New("default digit must be empty or 0-7")
	// ErrUnknownTheme is returned when the theme is not built in.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrConfigExists is returned by Save when the file exists and overwrite is not allowed.
	ErrConfigExists = errors.New("config file already exists")
)

// Themes lists the built-in theme names.
var Themes = []string{"tokyo-night", "nord", "gruvbox"} //nolint:gochecknoglobals

// Config represents the structure of config.toml.
type Config struct {
	Theme    string    `toml:"theme"`
	Defaults Defaults  `toml:"defaults"`
	Log      LogConfig `toml:"log"`
}

// Defaults holds the digits seeded into a new session.
type Defaults struct {
	Owner  string `toml:"owner"`
	Group  string `toml:"group"`
	Public string `toml:"public"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme: DefaultTheme,
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
		},
	}
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	cfg.applyFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks theme and default digits.
func (c *Config) Validate() error {
	if !slices.Contains(Themes, c.Theme) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, c.Theme)
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{permission.Owner.String(), c.Defaults.Owner},
		{permission.Group.String(), c.Defaults.Group},
		{permission.Public.String(), c.Defaults.Public},
	} {
		if field.value != "" && !permission.IsValidDigit(field.value) {
			return fmt.Errorf("%w: %s = %q", ErrInvalidDefault, field.name, field.value)
		}
	}

	return nil
}

// LogFile returns the configured log file or the XDG default.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}

	return DefaultLogPath()
}

func (c *Config) applyFallbacks() {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = DefaultMaxSizeMB
	}

	if c.Log.MaxBackups < 0 {
		c.Log.MaxBackups = DefaultMaxBackups
	}
}

// Save writes cfg to path under a file lock, replacing the file atomically.
func Save(path string, cfg *Config, overwrite bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock config: %w", err)
	}

	defer func() { _ = lock.Unlock() }()

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("failed to set config permissions: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}

	return nil
}
