//go:build unit
// +build unit

package logger

import (
	"bytes"
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := newWriterLogger(&buf, config.LogLevelDebug)

	logger.Debug("debug message")
	logger.Info("shift confirmed", "shift_id", "abc-123")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "shift confirmed")
	assert.Contains(t, output, "shift_id=abc-123")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestConsoleLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newWriterLogger(&buf, config.LogLevelError)

	logger.Info("hidden")
	logger.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConsoleLogger_FatalUsesExit(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	l := &slogLogger{logger: newWriterLogger(&buf, config.LogLevelInfo).(*slogLogger).logger, exit: func(c int) { code = c }}

	l.Fatal("fatal message")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "fatal message")
}

func TestNewConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, logger)

	require.NotPanics(t, func() {
		logger.Info("test")
		logger.Warn("test")
		logger.Error("test")
	})
	require.Panics(t, func() { logger.Panic("boom") })
}
