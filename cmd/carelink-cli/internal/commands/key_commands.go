package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/profyt7/carelinkai-sub005/internal/domain/cryptoalg"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/cryptography"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// KeyCommandHandler encapsulates logic for generating secrets via CLI.
type KeyCommandHandler struct {
	aesProcessor cryptoalg.AESProcessor
	logger       logger.Logger
}

// NewKeyCommandHandler initializes and returns a KeyCommandHandler instance with
// configured logger and AES processor.
func NewKeyCommandHandler() (*KeyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	aesProcessor, err := cryptography.NewAESProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES processor: %w", err)
	}

	return &KeyCommandHandler{
		aesProcessor: aesProcessor,
		logger:       loggerInstance,
	}, nil
}

// GenerateKeyCmd prints a random base64 key suitable for auth.encryption_key or auth.jwt_secret
func (commandHandler *KeyCommandHandler) GenerateKeyCmd(cmd *cobra.Command, _ []string) error {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return fmt.Errorf("invalid key-size flag: %w", err)
	}

	secretKey, err := commandHandler.aesProcessor.GenerateKey(keySize)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(secretKey))
	return err
}

// InitKeyCommands registers the generate-encryption-key command
func InitKeyCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create key command handler: %w", err)
	}

	generateKeyCmd := &cobra.Command{
		Use:   "generate-encryption-key",
		Short: "Generate a random base64 encoded secret",
		RunE:  handler.GenerateKeyCmd,
	}
	generateKeyCmd.Flags().Int("key-size", 32, "Key size in bytes: 16, 24 or 32")
	rootCmd.AddCommand(generateKeyCmd)

	return nil
}
