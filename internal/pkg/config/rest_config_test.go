//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
port: "9090"
logger:
  log_level: debug
  log_type: console
database:
  type: sqlite
  dsn: ":memory:"
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  token_ttl: 2h
  issuer: CareLinkAI
  encryption_key: "phi-encryption-key-for-tests"
storage:
  provider: local
  local_dir: /tmp/carelink-uploads
mail:
  provider: log
audit:
  enabled: true
  retention_days: 90
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestInitializeRestConfig_FromFile(t *testing.T) {
	cfg, err := InitializeRestConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, DefaultAppURL, cfg.Auth.AppURL)
	assert.Equal(t, 90, cfg.Audit.RetentionDays)
	assert.Equal(t, DefaultAuditPurgeSchedule, cfg.Audit.PurgeSchedule)
	assert.Equal(t, DefaultComplianceWarnDays, cfg.Compliance.WarningDays)
	assert.Equal(t, DefaultRequestsPerSecond, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Storage.UploadLimit())
}

func TestInitializeRestConfig_EnvOverride(t *testing.T) {
	t.Setenv("CARELINK_PORT", "7070")
	t.Setenv("CARELINK_AUDIT_RETENTION_DAYS", "30")

	cfg, err := InitializeRestConfig(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
}

func TestInitializeRestConfig_MissingSecret(t *testing.T) {
	_, err := InitializeRestConfig(writeConfig(t, `
port: "8080"
auth:
  jwt_secret: short
  encryption_key: "phi-encryption-key-for-tests"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AuthSettings")
}

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name      string
		settings  interface{ Validate() error }
		expectErr bool
	}{
		{"local storage", &StorageSettings{Provider: LocalStorageProvider, LocalDir: "uploads"}, false},
		{"local storage without dir", &StorageSettings{Provider: LocalStorageProvider}, true},
		{"s3 storage", &StorageSettings{Provider: S3StorageProvider, Bucket: "docs", Region: "us-east-1"}, false},
		{"s3 storage without bucket", &StorageSettings{Provider: S3StorageProvider, Region: "us-east-1"}, true},
		{"log mail", &MailSettings{Provider: LogMailProvider}, false},
		{"ses mail", &MailSettings{Provider: SESMailProvider, Sender: "noreply@carelink.ai", Region: "us-east-1"}, false},
		{"ses mail without sender", &MailSettings{Provider: SESMailProvider, Region: "us-east-1"}, true},
		{"redis disabled", &RedisSettings{}, false},
		{"redis enabled without addr", &RedisSettings{Enabled: true}, true},
		{"audit schedule", &AuditSettings{PurgeSchedule: "0 3 * * *"}, false},
		{"audit bad schedule", &AuditSettings{PurgeSchedule: "every night"}, true},
		{"compliance bad schedule", &ComplianceSettings{ExpirySchedule: "* *"}, true},
		{"auth short ttl", &AuthSettings{JWTSecret: "0123456789abcdef0123456789abcdef", TokenTTL: time.Second, Issuer: "x", EncryptionKey: "0123456789abcdef"}, true},
		{"auth bad app url", &AuthSettings{JWTSecret: "0123456789abcdef0123456789abcdef", TokenTTL: time.Hour, Issuer: "x", EncryptionKey: "0123456789abcdef", AppURL: "not a url"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
