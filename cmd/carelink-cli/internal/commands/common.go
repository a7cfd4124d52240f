package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/profyt7/carelinkai-sub005/internal/app"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/connector"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/cryptography"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/realtime"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const configFlag = "config"

// AddConfigFlag registers the persistent --config flag on the root command
func AddConfigFlag(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String(configFlag, os.Getenv("CONFIG_PATH"), "Path to the YAML configuration file")
}

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// platform is the configured database and services a command runs against
type platform struct {
	cfg      *config.RestConfig
	db       *gorm.DB
	services *app.Services
	hub      *realtime.Hub
	logger   logger.Logger
}

// openDatabase loads the configuration and connects to the configured database
func openDatabase(cmd *cobra.Command) (*config.RestConfig, *gorm.DB, logger.Logger, error) {
	log, err := setupLogger()
	if err != nil {
		return nil, nil, nil, err
	}

	configPath, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config flag: %w", err)
	}
	cfg, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	return cfg, db, log, nil
}

// openPlatform connects to a migrated database and wires the application services
func openPlatform(cmd *cobra.Command) (*platform, error) {
	cfg, db, log, err := openDatabase(cmd)
	if err != nil {
		return nil, err
	}

	p := &platform{cfg: cfg, db: db, logger: log, hub: realtime.NewHub(log)}
	if err := p.wire(cmd.Context()); err != nil {
		p.close()
		return nil, err
	}
	return p, nil
}

func (p *platform) wire(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	repos, err := persistence.NewRepositories(p.db, p.logger)
	if err != nil {
		return err
	}
	storage, err := connector.NewDocumentStorage(ctx, &p.cfg.Storage, p.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}
	mailer, err := connector.NewMailer(ctx, &p.cfg.Mail, p.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	cipher, err := cryptography.NewSecretCipher(p.logger, p.cfg.Auth.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to create secret cipher: %w", err)
	}

	p.services, err = app.NewServices(repos, &app.Collaborators{
		Storage:   storage,
		Mailer:    mailer,
		Publisher: p.hub,
		Cipher:    cipher,
		Hasher:    cryptography.NewPasswordHasher(bcrypt.DefaultCost),
		TOTP:      cryptography.NewTOTPProvider(p.cfg.Auth.Issuer),
	}, &app.Settings{
		Auth:       &p.cfg.Auth,
		Storage:    &p.cfg.Storage,
		Audit:      &p.cfg.Audit,
		Compliance: &p.cfg.Compliance,
	}, p.logger)
	return err
}

func (p *platform) close() {
	p.hub.Close()
	if err := persistence.CloseDB(p.db); err != nil {
		p.logger.Warn("Failed to close database", "error", err)
	}
}

// printJSON writes v indented to w
func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
