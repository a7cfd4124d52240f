//go:build unit
// +build unit

package cryptography

import (
	"regexp"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTOTPProvider(t *testing.T) {
	provider := NewTOTPProvider("")

	secret, url, err := provider.Generate("ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.Contains(t, url, "otpauth://totp/")
	assert.Contains(t, url, "issuer=CareLinkAI")

	now := time.Now()
	code, err := totp.GenerateCode(secret, now)
	require.NoError(t, err)

	assert.True(t, provider.Validate(code, secret, now))
	assert.True(t, provider.Validate(code, secret, now.Add(TOTPPeriod*time.Second)), "one step of skew")
	assert.False(t, provider.Validate(code, secret, now.Add(5*time.Minute)))
	assert.False(t, provider.Validate("000000x", secret, now))
}

func TestGenerateBackupCodes(t *testing.T) {
	codes, err := GenerateBackupCodes(BackupCodeCount)
	require.NoError(t, err)
	require.Len(t, codes, BackupCodeCount)

	format := regexp.MustCompile(`^[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}$`)
	seen := map[string]bool{}
	for _, code := range codes {
		assert.Regexp(t, format, code)
		assert.False(t, seen[code])
		seen[code] = true
	}

	assert.Equal(t, "ABCD-0123", NormalizeBackupCode(" abcd-0123 "))
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	assert.True(t, hasher.Compare(hash, "correct horse"))
	assert.False(t, hasher.Compare(hash, "wrong horse"))
	assert.False(t, hasher.Compare("not-a-hash", "correct horse"))
}
