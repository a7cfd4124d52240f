//go:build unit
// +build unit

package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenPurpose_TTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, PurposeEmailVerification.TTL())
	assert.Equal(t, time.Hour, PurposePasswordReset.TTL())
}

func TestAccountToken_Expired(t *testing.T) {
	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	token := &AccountToken{ExpiresAt: issued.Add(PasswordResetTTL)}

	assert.False(t, token.Expired(issued))
	assert.False(t, token.Expired(issued.Add(59*time.Minute)))
	assert.True(t, token.Expired(issued.Add(time.Hour)))
}

func TestAccountToken_Validate(t *testing.T) {
	now := time.Now().UTC()
	token := &AccountToken{
		ID:        "5a3c9a52-7d1e-4b0a-9f3e-2c1d0b9a8e7f",
		UserID:    "user-1",
		Purpose:   PurposePasswordReset,
		TokenHash: "$2a$04$hash",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	assert.NoError(t, token.Validate())

	token.Purpose = "LOGIN"
	assert.Error(t, token.Validate())
}
