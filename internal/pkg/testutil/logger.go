package testutil

import (
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/stretchr/testify/require"
)

// SetupTestLogger returns the process-wide console logger, initializing it at
// warning level on first use so service logs stay out of test output.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	require.NoError(t, logger.InitLogger(&config.LoggerSettings{
		LogLevel: config.LogLevelWarning,
		LogType:  config.LogTypeConsole,
	}))

	l, err := logger.GetLogger()
	require.NoError(t, err)
	return l
}
