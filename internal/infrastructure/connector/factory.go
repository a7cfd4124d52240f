package connector

import (
	"context"
	"fmt"

	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"
)

// NewDocumentStorage creates the storage selected by settings
func NewDocumentStorage(ctx context.Context, settings *config.StorageSettings, logger logger.Logger) (documents.DocumentStorage, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Provider {
	case config.LocalStorageProvider:
		return NewLocalStorage(settings.LocalDir, logger)
	case config.S3StorageProvider:
		return NewS3Storage(ctx, settings.Bucket, settings.Region, logger)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", settings.Provider)
	}
}

// NewMailer creates the mail transport selected by settings
func NewMailer(ctx context.Context, settings *config.MailSettings, logger logger.Logger) (notifications.Mailer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.Provider {
	case config.LogMailProvider:
		return NewLogMailer(logger), nil
	case config.SESMailProvider:
		return NewSESMailer(ctx, settings.Sender, settings.Region, logger)
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", settings.Provider)
	}
}
