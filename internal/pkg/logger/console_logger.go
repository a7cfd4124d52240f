package logger

import (
	"io"
	"log/slog"
	"os"
)

// NewConsoleLogger creates a text logger on stdout with the specified level.
func NewConsoleLogger(level string) Logger {
	return newWriterLogger(os.Stdout, level)
}

func newWriterLogger(w io.Writer, level string) Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &slogLogger{logger: slog.New(handler), exit: os.Exit}
}
