// Package logger implements the logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/toolcube/toolcube/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

// New creates a new Logger writing human-readable text to stderr. The
// default level logs errors only; SetVerbosity raises it.
func New() ports.Logger {
	return NewWithOutput(os.Stderr)
}

// NewWithOutput creates a Logger writing to w.
func NewWithOutput(w io.Writer) *Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelError)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{
		logger: slog.New(handler),
		level:  level,
	}
}

// SetVerbosity raises the log level by one step per count: 0 is errors
// only, 1 adds warnings, 2 info, 3 and above debug.
func (l *Logger) SetVerbosity(v int) {
	level := slog.LevelError - slog.Level(4*v)
	if level < slog.LevelDebug {
		level = slog.LevelDebug
	}
	l.level.Set(level)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.logger.Error("operation failed", "error", err)
}
