package users

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// TokenPurpose says what an account token may be redeemed for
type TokenPurpose string

// Token purposes
const (
	PurposeEmailVerification TokenPurpose = "EMAIL_VERIFICATION"
	PurposePasswordReset     TokenPurpose = "PASSWORD_RESET"
)

// Token lifetimes
const (
	EmailVerificationTTL = 24 * time.Hour
	PasswordResetTTL     = time.Hour
)

// TTL is how long a token issued for p stays redeemable
func (p TokenPurpose) TTL() time.Duration {
	if p == PurposePasswordReset {
		return PasswordResetTTL
	}
	return EmailVerificationTTL
}

// AccountToken is a single-use secret mailed to the account owner.
// Only the bcrypt hash of the secret is stored.
type AccountToken struct {
	ID        string       `validate:"required,uuid4"`
	UserID    string       `validate:"required"`
	Purpose   TokenPurpose `validate:"required,oneof=EMAIL_VERIFICATION PASSWORD_RESET"`
	TokenHash string       `validate:"required"`
	ExpiresAt time.Time    `validate:"required"`
	UsedAt    *time.Time
	CreatedAt time.Time `validate:"required"`
}

// Validate for validating AccountToken struct
func (t *AccountToken) Validate() error {
	return validators.ValidateStruct(t)
}

// Expired reports whether the token can no longer be redeemed at now
func (t *AccountToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
