package cryptoalg

import "time"

// TOTPProvider issues and checks time-based one-time passwords
type TOTPProvider interface {
	// Generate creates a secret for accountName and its otpauth:// URL.
	Generate(accountName string) (secret, url string, err error)
	Validate(code, secret string, at time.Time) bool
}

// PasswordHasher hashes passwords and backup codes
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}
