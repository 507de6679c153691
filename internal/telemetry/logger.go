// Package telemetry provides logging setup and remote-call metrics recorders.
package telemetry

import (
	"io"
	"log/slog"
	"os"
)

// LogConfig controls handler construction.
type LogConfig struct {
	Level  string // debug|info|warn|error (default info)
	Format string // json|text (default text)
	Output io.Writer
}

// NewLogger builds a slog.Logger from config. Defaults: text to stderr at
// info level.
func NewLogger(cfg LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
