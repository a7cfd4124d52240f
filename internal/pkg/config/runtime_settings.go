package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
)

// Defaults applied when a section leaves the value empty
const (
	DefaultAuditRetentionDays = 2555
	DefaultAuditPurgeSchedule = "0 3 * * *"
	DefaultComplianceSchedule = "0 6 * * *"
	DefaultComplianceWarnDays = 30
	DefaultRequestsPerSecond  = 20
	DefaultRateLimitBurst     = 40
)

// RedisSettings configures the optional redis backend of the rate limiter
type RedisSettings struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0,lte=15"`
}

// RateLimitSettings bounds requests per client
type RateLimitSettings struct {
	RequestsPerSecond int `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int `mapstructure:"burst" validate:"gte=0"`
}

// AuditSettings toggles audit logging and its retention job
type AuditSettings struct {
	Enabled       bool   `mapstructure:"enabled"`
	RetentionDays int    `mapstructure:"retention_days" validate:"gte=0"`
	PurgeSchedule string `mapstructure:"purge_schedule"`
}

// ComplianceSettings drives the credential expiry sweep
type ComplianceSettings struct {
	ExpirySchedule string `mapstructure:"expiry_schedule"`
	WarningDays    int    `mapstructure:"warning_days" validate:"gte=0"`
}

// Validate checks RedisSettings
func (s *RedisSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for RedisSettings: %w", err)
	}
	return nil
}

// Validate checks RateLimitSettings
func (s *RateLimitSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for RateLimitSettings: %w", err)
	}
	return nil
}

// Validate checks AuditSettings, including the cron expression
func (s *AuditSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuditSettings: %w", err)
	}
	if s.PurgeSchedule != "" {
		if _, err := cron.ParseStandard(s.PurgeSchedule); err != nil {
			return fmt.Errorf("invalid purge schedule %q: %w", s.PurgeSchedule, err)
		}
	}
	return nil
}

// Validate checks ComplianceSettings, including the cron expression
func (s *ComplianceSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for ComplianceSettings: %w", err)
	}
	if s.ExpirySchedule != "" {
		if _, err := cron.ParseStandard(s.ExpirySchedule); err != nil {
			return fmt.Errorf("invalid expiry schedule %q: %w", s.ExpirySchedule, err)
		}
	}
	return nil
}

func (s *RateLimitSettings) applyDefaults() {
	if s.RequestsPerSecond == 0 {
		s.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if s.Burst == 0 {
		s.Burst = DefaultRateLimitBurst
	}
}

func (s *AuditSettings) applyDefaults() {
	if s.RetentionDays == 0 {
		s.RetentionDays = DefaultAuditRetentionDays
	}
	if s.PurgeSchedule == "" {
		s.PurgeSchedule = DefaultAuditPurgeSchedule
	}
}

func (s *ComplianceSettings) applyDefaults() {
	if s.ExpirySchedule == "" {
		s.ExpirySchedule = DefaultComplianceSchedule
	}
	if s.WarningDays == 0 {
		s.WarningDays = DefaultComplianceWarnDays
	}
}
