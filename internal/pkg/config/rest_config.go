package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. CARELINK_DATABASE_DSN
const EnvPrefix = "CARELINK"

// RestConfig is the complete configuration of the REST server
type RestConfig struct {
	Port       string             `mapstructure:"port" validate:"required,numeric"`
	Logger     LoggerSettings     `mapstructure:"logger"`
	Database   DatabaseSettings   `mapstructure:"database"`
	Auth       AuthSettings       `mapstructure:"auth"`
	Storage    StorageSettings    `mapstructure:"storage"`
	Mail       MailSettings       `mapstructure:"mail"`
	Redis      RedisSettings      `mapstructure:"redis"`
	RateLimit  RateLimitSettings  `mapstructure:"rate_limit"`
	Audit      AuditSettings      `mapstructure:"audit"`
	Compliance ComplianceSettings `mapstructure:"compliance"`
}

// Validate checks every section of RestConfig
func (c *RestConfig) Validate() error {
	if err := validator.New().Var(c.Port, "required,numeric"); err != nil {
		return fmt.Errorf("validation failed for port: %w", err)
	}

	sections := []interface{ Validate() error }{
		&c.Logger, &c.Database, &c.Auth, &c.Storage, &c.Mail,
		&c.Redis, &c.RateLimit, &c.Audit, &c.Compliance,
	}
	for _, section := range sections {
		if err := section.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InitializeRestConfig loads an optional .env file, then the YAML file at path,
// then CARELINK_* environment overrides, applies defaults and validates the result.
// A missing YAML file is tolerated when the environment supplies the settings.
func InitializeRestConfig(path string) (*RestConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.RateLimit.applyDefaults()
	cfg.Audit.applyDefaults()
	cfg.Compliance.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "carelink.db")
	v.SetDefault("database.name", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.issuer", "CareLinkAI")
	v.SetDefault("auth.encryption_key", "")
	v.SetDefault("auth.app_url", DefaultAppURL)

	v.SetDefault("storage.provider", LocalStorageProvider)
	v.SetDefault("storage.local_dir", "uploads")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.max_upload_bytes", DefaultMaxUploadBytes)

	v.SetDefault("mail.provider", LogMailProvider)
	v.SetDefault("mail.sender", "")
	v.SetDefault("mail.region", "")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rate_limit.requests_per_second", DefaultRequestsPerSecond)
	v.SetDefault("rate_limit.burst", DefaultRateLimitBurst)

	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.retention_days", DefaultAuditRetentionDays)
	v.SetDefault("audit.purge_schedule", DefaultAuditPurgeSchedule)

	v.SetDefault("compliance.expiry_schedule", DefaultComplianceSchedule)
	v.SetDefault("compliance.warning_days", DefaultComplianceWarnDays)
}
