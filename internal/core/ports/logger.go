// Package ports defines the core interfaces for the application.
package ports

// Logger defines the interface for logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error)

	// SetVerbosity raises the log level: 0 logs errors only, each increment
	// enables the next finer level down to debug.
	SetVerbosity(v int)
}
