// Package logger provides the process-wide structured logger.
//
// Calls accept either a plain message or a message followed by key/value
// pairs, e.g. log.Info("shift confirmed", "shift_id", id). Pairs become slog
// attributes; anything else is rendered with fmt.Sprint.
package logger

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
