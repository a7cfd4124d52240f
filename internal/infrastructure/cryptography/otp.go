package cryptography

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/cryptoalg"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
)

// TOTP parameters shared with authenticator apps
const (
	TOTPIssuer = "CareLinkAI"
	TOTPDigits = otp.DigitsSix
	TOTPPeriod = 30
	TOTPSkew   = 1

	BackupCodeCount = 10
)

type totpProvider struct {
	issuer string
}

// NewTOTPProvider returns a provider issuing 6 digit, 30 second codes
func NewTOTPProvider(issuer string) cryptoalg.TOTPProvider {
	if issuer == "" {
		issuer = TOTPIssuer
	}
	return &totpProvider{issuer: issuer}
}

func (p *totpProvider) Generate(accountName string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      p.issuer,
		AccountName: accountName,
		Period:      TOTPPeriod,
		Digits:      TOTPDigits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate TOTP key: %w", err)
	}
	return key.Secret(), key.URL(), nil
}

func (p *totpProvider) Validate(code, secret string, at time.Time) bool {
	valid, err := totp.ValidateCustom(strings.TrimSpace(code), secret, at, totp.ValidateOpts{
		Period:    TOTPPeriod,
		Skew:      TOTPSkew,
		Digits:    TOTPDigits,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && valid
}

// GenerateBackupCodes returns n codes formatted XXXX-XXXX-XXXX-XXXX in uppercase hex
func GenerateBackupCodes(n int) ([]string, error) {
	codes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		raw := make([]byte, 8)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("failed to generate backup code: %w", err)
		}
		h := strings.ToUpper(hex.EncodeToString(raw))
		codes = append(codes, h[0:4]+"-"+h[4:8]+"-"+h[8:12]+"-"+h[12:16])
	}
	return codes, nil
}

// NormalizeBackupCode upper-cases a code typed by a user
func NormalizeBackupCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher returns a bcrypt hasher; cost 0 means bcrypt.DefaultCost
func NewPasswordHasher(cost int) cryptoalg.PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
