package cryptography

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/profyt7/carelinkai-sub005/internal/domain/cryptoalg"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"
)

// aesProcessor struct that implements the AESProcessor interface
type aesProcessor struct {
	logger logger.Logger
}

// NewAESProcessor creates and returns a new instance of aesProcessor
func NewAESProcessor(logger logger.Logger) (cryptoalg.AESProcessor, error) {
	return &aesProcessor{
		logger: logger,
	}, nil
}

// GenerateKey generates a random AES key of the specified size
func (a *aesProcessor) GenerateKey(keySize int) ([]byte, error) {
	switch keySize {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("invalid AES key size %d: must be 16, 24 or 32 bytes", keySize)
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate AES key: %w", err)
	}
	a.logger.Debug("Generated AES key", "size", keySize)
	return key, nil
}

// Encrypt seals data with AES-GCM and prefixes the random nonce
func (a *aesProcessor) Encrypt(data, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

// Decrypt opens a nonce-prefixed AES-GCM ciphertext
func (a *aesProcessor) Decrypt(ciphertext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize()+gcm.Overhead() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, sealed := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %w", err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// DeriveKey turns a configured passphrase into an AES-256 key
func DeriveKey(passphrase string) []byte {
	sum := sha256.Sum256([]byte(passphrase))
	return sum[:]
}

// keyedCipher seals values under one application key
type keyedCipher struct {
	processor cryptoalg.AESProcessor
	key       []byte
}

// NewSecretCipher returns a SecretCipher keyed with sha256(passphrase)
func NewSecretCipher(logger logger.Logger, passphrase string) (cryptoalg.SecretCipher, error) {
	if passphrase == "" {
		return nil, errors.New("encryption passphrase cannot be empty")
	}
	processor, err := NewAESProcessor(logger)
	if err != nil {
		return nil, err
	}
	return &keyedCipher{processor: processor, key: DeriveKey(passphrase)}, nil
}

func (c *keyedCipher) Encrypt(plaintext []byte) ([]byte, error) {
	return c.processor.Encrypt(plaintext, c.key)
}

func (c *keyedCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	return c.processor.Decrypt(ciphertext, c.key)
}

func (c *keyedCipher) EncryptString(plaintext string) (string, error) {
	sealed, err := c.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *keyedCipher) DecryptString(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret: %w", err)
	}
	plaintext, err := c.Decrypt(sealed)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
