// Package logging writes structured JSON logs to a rotating file. The
// terminal belongs to the UI, so nothing is logged to stdout or stderr.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	closer  io.Closer
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%s: invalid log level", level)
}

// New opens dir/navdata.slog. An empty dir uses the user config dir.
func New(level string, dir string) (*Logger, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		dir = filepath.Join(base, "navdata-terminal")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "navdata.slog"),
		MaxSize:    16, // MB
		MaxBackups: 2,
	}
	l := NewWithWriter(w, lvl)
	l.LogFile = w.Filename
	l.closer = w

	l.Info("Hello logging",
		slog.String("GOOS", runtime.GOOS),
		slog.String("GOARCH", runtime.GOARCH))
	if bi, ok := debug.ReadBuildInfo(); ok {
		l.Info("Build", slog.String("Go version", bi.GoVersion), slog.String("Path", bi.Path))
	}
	return l, nil
}

// NewWithWriter logs JSON to w; used by tests and by New.
func NewWithWriter(w io.Writer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(h)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(io.Discard, slog.LevelError+1)
}

// The wrappers below accept a nil *Logger so callers never need to
// check.

func (l *Logger) Debug(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelDebug) {
		l.Logger.Debug(msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelInfo) {
		l.Logger.Info(msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l != nil {
		l.Logger.Warn(msg, args...)
	}
}

func (l *Logger) Error(msg string, args ...any) {
	if l != nil {
		l.Logger.Error(msg, args...)
	}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
