package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Document storage providers
const (
	LocalStorageProvider = "local"
	S3StorageProvider    = "s3"
)

// Mail providers
const (
	LogMailProvider = "log"
	SESMailProvider = "ses"
)

// DefaultMaxUploadBytes caps a single document upload at 10 MiB
const DefaultMaxUploadBytes = 10 << 20

// StorageSettings selects where uploaded family documents are kept
type StorageSettings struct {
	Provider       string `mapstructure:"provider" validate:"required,oneof=local s3"`
	LocalDir       string `mapstructure:"local_dir"`
	Bucket         string `mapstructure:"bucket"`
	Region         string `mapstructure:"region"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" validate:"gte=0"`
}

// Validate checks StorageSettings
func (s *StorageSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StorageSettings: %w", err)
	}

	switch s.Provider {
	case LocalStorageProvider:
		if s.LocalDir == "" {
			return fmt.Errorf("local_dir is required for local storage")
		}
	case S3StorageProvider:
		if s.Bucket == "" || s.Region == "" {
			return fmt.Errorf("bucket and region are required for s3 storage")
		}
	}
	return nil
}

// UploadLimit returns the configured upload cap or the default
func (s *StorageSettings) UploadLimit() int64 {
	if s.MaxUploadBytes <= 0 {
		return DefaultMaxUploadBytes
	}
	return s.MaxUploadBytes
}

// MailSettings selects the outbound mail transport
type MailSettings struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=log ses"`
	Sender   string `mapstructure:"sender" validate:"required_if=Provider ses"`
	Region   string `mapstructure:"region" validate:"required_if=Provider ses"`
}

// Validate checks MailSettings
func (s *MailSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for MailSettings: %w", err)
	}
	return nil
}
