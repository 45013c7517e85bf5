// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

// Package logging builds the zerolog loggers used by the CLI and the TUI.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/janderssonse/permcalc/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrInvalidLevel is returned when a log level name is not recognised.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel converts a level name. An empty name means warn.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.WarnLevel, nil
	}

	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}

	return level, nil
}

// NewConsole returns a human-readable logger writing to w.
// Verbose forces debug level regardless of the configured level.
func NewConsole(w io.Writer, cfg config.LogConfig, verbose bool) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb",
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger(), nil
}

// FileLogger writes JSON log lines to a rotated file.
type FileLogger struct {
	zerolog.Logger

	rotator *lumberjack.Logger
}

// NewFile returns a JSON logger writing to the configured log file with rotation.
// The TUI owns the terminal, so interactive sessions log here instead of stderr.
func NewFile(cfg *config.Config, verbose bool) (*FileLogger, error) {
	level, err := ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	if verbose {
		level = zerolog.DebugLevel
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile(),
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   false,
	}

	logger := zerolog.New(rotator).Level(level).With().Timestamp().Str("service", "permcalc").Logger()

	return &FileLogger{Logger: logger, rotator: rotator}, nil
}

// Close flushes and closes the log file.
func (l *FileLogger) Close() error {
	if err := l.rotator.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}

	return nil
}
