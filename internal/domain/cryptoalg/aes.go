package cryptoalg

// AESProcessor performs authenticated AES-GCM encryption.
// Ciphertexts carry their nonce as a prefix.
type AESProcessor interface {
	// GenerateKey generates a random AES key of the specified size.
	// Supported key sizes: 16 (AES-128), 24 (AES-192), 32 (AES-256) bytes.
	GenerateKey(keySize int) ([]byte, error)

	// Encrypt seals data with key and returns nonce || ciphertext.
	Encrypt(data, key []byte) ([]byte, error)

	// Decrypt opens a ciphertext produced by Encrypt. Tampered input or a wrong key fails.
	Decrypt(ciphertext, key []byte) ([]byte, error)
}

// SecretCipher encrypts values at rest under a fixed application key.
// It serves document content and stored two-factor secrets.
type SecretCipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)

	// EncryptString returns base64 of the sealed value, for text columns.
	EncryptString(plaintext string) (string, error)
	DecryptString(encoded string) (string, error)
}
