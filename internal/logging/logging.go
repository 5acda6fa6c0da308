// Package logging constructs the application's zerolog loggers from
// configuration: console output for terminals, JSON otherwise, with an
// optional file sink.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Unparseable
	// values fall back to info.
	Level string

	// Format is "console" or "json".
	Format string

	// File, when non-empty, adds an append-mode file sink alongside the
	// primary writer.
	File string
}

// New builds a logger per cfg. The returned closer releases the file sink if
// one was opened; it is safe to call even when no file is in use.
func New(cfg Config) (zerolog.Logger, func() error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var primary io.Writer = os.Stderr
	if cfg.Format != "json" {
		primary = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	closer := func() error { return nil }
	writers := []io.Writer{primary}
	if cfg.File != "" {
		file, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			logger := zerolog.New(primary).Level(level).With().Timestamp().Logger()
			logger.Warn().Err(openErr).Str("file", cfg.File).Msg("could not open log file, logging to stderr only")
			return logger, closer
		}
		writers = append(writers, file)
		closer = file.Close
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, closer
}

// Component returns a child logger tagged with a component name, so log lines
// can be traced back to the subsystem that emitted them.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
