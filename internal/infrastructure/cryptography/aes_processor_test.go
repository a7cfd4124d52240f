//go:build unit
// +build unit

package cryptography

import (
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/domain/cryptoalg"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TestAESKey128 = 16
	TestAESKey256 = 32
)

func setupAESProcessor(t *testing.T) cryptoalg.AESProcessor {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	processor, err := NewAESProcessor(logger)
	require.NoError(t, err)
	return processor
}

func TestAESProcessor(t *testing.T) {
	processor := setupAESProcessor(t)

	t.Run("EncryptDecrypt", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey256)
		require.NoError(t, err)

		plainText := []byte("Care plan for room 12.")

		ciphertext, err := processor.Encrypt(plainText, key)
		require.NoError(t, err)
		assert.NotEqual(t, plainText, ciphertext)

		decryptedText, err := processor.Decrypt(ciphertext, key)
		require.NoError(t, err)
		assert.Equal(t, plainText, decryptedText)
	})

	t.Run("NonceMakesCiphertextsDiffer", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey128)
		require.NoError(t, err)

		first, err := processor.Encrypt([]byte("same"), key)
		require.NoError(t, err)
		second, err := processor.Encrypt([]byte("same"), key)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("EncryptionWithInvalidKey", func(t *testing.T) {
		_, err := processor.Encrypt([]byte("This is a test."), []byte("shortkey"))
		assert.Error(t, err)
	})

	t.Run("GenerateKey", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey128)
		assert.NoError(t, err)
		assert.Len(t, key, TestAESKey128)

		_, err = processor.GenerateKey(20)
		assert.Error(t, err)
	})

	t.Run("DecryptWithWrongKey", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey256)
		require.NoError(t, err)
		ciphertext, err := processor.Encrypt([]byte("Test decryption with wrong key."), key)
		require.NoError(t, err)

		wrongKey, err := processor.GenerateKey(TestAESKey256)
		require.NoError(t, err)

		_, err = processor.Decrypt(ciphertext, wrongKey)
		assert.Error(t, err)
	})

	t.Run("DecryptTamperedCiphertext", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey256)
		require.NoError(t, err)
		ciphertext, err := processor.Encrypt([]byte("do not touch"), key)
		require.NoError(t, err)

		ciphertext[len(ciphertext)-1] ^= 0xff
		_, err = processor.Decrypt(ciphertext, key)
		assert.Error(t, err)
	})

	t.Run("DecryptShortCiphertext", func(t *testing.T) {
		key, err := processor.GenerateKey(TestAESKey128)
		require.NoError(t, err)

		_, err = processor.Decrypt([]byte("short"), key)
		assert.Error(t, err)
	})
}

func TestSecretCipher(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	c, err := NewSecretCipher(logger, "a-long-application-passphrase")
	require.NoError(t, err)

	encoded, err := c.EncryptString("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	assert.NotContains(t, encoded, "JBSWY3DPEHPK3PXP")

	decoded, err := c.DecryptString(encoded)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", decoded)

	other, err := NewSecretCipher(logger, "another-passphrase")
	require.NoError(t, err)
	_, err = other.DecryptString(encoded)
	assert.Error(t, err)

	_, err = NewSecretCipher(logger, "")
	assert.Error(t, err)
}

func TestDeriveKey(t *testing.T) {
	assert.Len(t, DeriveKey("x"), 32)
	assert.Equal(t, DeriveKey("x"), DeriveKey("x"))
	assert.NotEqual(t, DeriveKey("x"), DeriveKey("y"))
}
