//go:build unit
// +build unit

package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoggerSingleton() {
	loggerInstance = nil
	loggerErr = nil
	loggerOnce = sync.Once{}
}

func TestInitLogger_Console(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	require.NoError(t, InitLogger(&config.LoggerSettings{
		LogLevel: config.LogLevelDebug,
		LogType:  config.LogTypeConsole,
	}))

	first, err := GetLogger()
	require.NoError(t, err)
	second, err := GetLogger()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestInitLogger_RotatingFile(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	path := filepath.Join(t.TempDir(), "carelink.log")
	require.NoError(t, InitLogger(&config.LoggerSettings{
		LogLevel:   config.LogLevelInfo,
		LogType:    config.LogTypeFile,
		FilePath:   path,
		MaxSize:    5,
		MaxBackups: 2,
		MaxAge:     7,
	}))

	l, err := GetLogger()
	require.NoError(t, err)
	l.Info("shift confirmed", "shift_id", "s-1", "caregiver_id", "c-1")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `"msg":"shift confirmed"`)
	assert.Contains(t, string(contents), `"shift_id":"s-1"`)
}

func TestInitLogger_RejectsInvalidSettings(t *testing.T) {
	for name, settings := range map[string]*config.LoggerSettings{
		"unknown level":       {LogLevel: "verbose", LogType: config.LogTypeConsole},
		"unknown type":        {LogLevel: config.LogLevelInfo, LogType: "syslog"},
		"file without bounds": {LogLevel: config.LogLevelInfo, LogType: config.LogTypeFile, FilePath: "/tmp/carelink.log"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(resetLoggerSingleton)

			require.Error(t, InitLogger(settings))

			l, err := GetLogger()
			assert.Error(t, err)
			assert.Nil(t, l)
		})
	}
}

func TestGetLogger_BeforeInit(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	_, err := GetLogger()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestInitLogger_FirstSettingsWin(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	require.NoError(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelError, LogType: config.LogTypeConsole}))
	before, _ := GetLogger()

	// A later, different configuration is ignored
	require.NoError(t, InitLogger(&config.LoggerSettings{LogLevel: config.LogLevelDebug, LogType: config.LogTypeConsole}))
	after, _ := GetLogger()

	assert.Same(t, before, after)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{config.LogLevelDebug, slog.LevelDebug},
		{config.LogLevelInfo, slog.LevelInfo},
		{config.LogLevelWarning, slog.LevelWarn},
		{config.LogLevelError, slog.LevelError},
		{config.LogLevelCritical, slog.LevelError},
		{"unknown", slog.LevelInfo}, // default case
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			result := parseLevel(tt.level)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []interface{}
		wantMsg   string
		wantAttrs int
	}{
		{"empty", []interface{}{}, "", 0},
		{"message only", []interface{}{"test"}, "test", 0},
		{"message with pairs", []interface{}{"lead updated", "lead_id", "1", "status", "CLOSED"}, "lead updated", 2},
		{"odd trailing value", []interface{}{"Starting server on port ", "8080"}, "Starting server on port 8080", 0},
		{"non-string key", []interface{}{"count", 1, 2}, "count1 2", 0},
		{"non-string first", []interface{}{42}, "42", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, attrs := splitArgs(tt.args...)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Len(t, attrs, tt.wantAttrs)
		})
	}
}
