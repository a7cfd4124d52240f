//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rotatingFileLogger() LoggerSettings {
	return LoggerSettings{
		LogLevel:   LogLevelWarning,
		LogType:    LogTypeFile,
		FilePath:   "/var/log/carelink/api.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

func TestLoggerSettings_Levels(t *testing.T) {
	for _, level := range []string{LogLevelInfo, LogLevelDebug, LogLevelError, LogLevelWarning, LogLevelCritical} {
		settings := LoggerSettings{LogLevel: level, LogType: LogTypeConsole}
		assert.NoError(t, settings.Validate(), level)
	}

	for _, level := range []string{"", "warn", "trace", "INFO"} {
		settings := LoggerSettings{LogLevel: level, LogType: LogTypeConsole}
		assert.Error(t, settings.Validate(), level)
	}
}

func TestLoggerSettings_Types(t *testing.T) {
	assert.Error(t, (&LoggerSettings{LogLevel: LogLevelInfo}).Validate(), "log type is required")
	assert.Error(t, (&LoggerSettings{LogLevel: LogLevelInfo, LogType: "syslog"}).Validate())

	// Rotation bounds only apply to the file logger
	console := LoggerSettings{LogLevel: LogLevelInfo, LogType: LogTypeConsole, MaxSize: 500}
	assert.NoError(t, console.Validate())
}

func TestLoggerSettings_FileRotation(t *testing.T) {
	valid := rotatingFileLogger()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(s *LoggerSettings)
		errMsg string
	}{
		{"no file path", func(s *LoggerSettings) { s.FilePath = "" }, "file path is required"},
		{"size zero", func(s *LoggerSettings) { s.MaxSize = 0 }, "max size"},
		{"size above 100 MB", func(s *LoggerSettings) { s.MaxSize = 101 }, "max size"},
		{"no backups", func(s *LoggerSettings) { s.MaxBackups = 0 }, "max backups"},
		{"too many backups", func(s *LoggerSettings) { s.MaxBackups = 11 }, "max backups"},
		{"age zero", func(s *LoggerSettings) { s.MaxAge = 0 }, "max age"},
		{"age above a year", func(s *LoggerSettings) { s.MaxAge = 366 }, "max age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := rotatingFileLogger()
			tt.mutate(&settings)

			err := settings.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
