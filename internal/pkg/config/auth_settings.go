package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultAppURL prefixes the links in verification and reset mails
const DefaultAppURL = "http://localhost:3000"

// AuthSettings configures token issuance and at-rest encryption of account secrets
type AuthSettings struct {
	JWTSecret     string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenTTL      time.Duration `mapstructure:"token_ttl" validate:"required"`
	Issuer        string        `mapstructure:"issuer" validate:"required"`
	EncryptionKey string        `mapstructure:"encryption_key" validate:"required,min=16"`
	AppURL        string        `mapstructure:"app_url" validate:"omitempty,url"`
}

// Validate checks AuthSettings
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	if s.TokenTTL < time.Minute {
		return fmt.Errorf("token ttl must be at least one minute")
	}
	return nil
}
