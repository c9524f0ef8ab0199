// Package logging builds the slog loggers handed to the rest of the application.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"linkstats/internal/config"
)

// New returns a logger writing to stderr and, when a logs directory is
// configured outside tests, to a size-rotated file inside it. Production logs
// are JSON; development logs carry the source location.
func New(cfg *config.Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with a caller-supplied console writer.
func NewWithWriter(cfg *config.Config, console io.Writer) *slog.Logger {
	out := console
	if rotating := FileWriter(cfg); rotating != nil {
		out = io.MultiWriter(console, rotating)
	}

	opts := &slog.HandlerOptions{
		Level:     Level(cfg.LogLevel),
		AddSource: cfg.IsDevelopment(),
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler).With(slog.String("app", cfg.AppName))
}

// FileWriter returns the rotating log file for cfg, or nil when file logging
// is off. The test environment never writes log files.
func FileWriter(cfg *config.Config) *lumberjack.Logger {
	if cfg.LogsDirectory == "" || cfg.IsTest() {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogsDirectory, cfg.AppName+"-"+cfg.Environment+".log"),
		MaxSize:    cfg.LogsMaxSizeInMb,
		MaxBackups: cfg.LogsMaxBackups,
		MaxAge:     cfg.LogsMaxAgeInDays,
	}
}

// Level maps a configured level to its slog equivalent. Unknown values log at info.
func Level(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
