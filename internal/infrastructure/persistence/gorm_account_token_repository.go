package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAccountTokenRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAccountTokenRepository creates a new GORM-based AccountTokenRepository implementation
func NewGormAccountTokenRepository(db *gorm.DB, logger logger.Logger) (users.AccountTokenRepository, error) {
	return &gormAccountTokenRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAccountTokenRepository) Create(ctx context.Context, token *users.AccountToken) error {
	if err := token.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.AccountTokenModel{}
	model.FromDomain(token)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create account token")
	}

	r.logger.Info("Created account token", "token_id", token.ID, "user_id", token.UserID, "purpose", token.Purpose)
	return nil
}

func (r *gormAccountTokenRepository) GetByID(ctx context.Context, tokenID string) (*users.AccountToken, error) {
	var model models.AccountTokenModel
	if err := r.db.WithContext(ctx).Where("id = ?", tokenID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("account token", tokenID)
		}
		return nil, wrapError(err, "failed to fetch account token")
	}
	return model.ToDomain(), nil
}

func (r *gormAccountTokenRepository) Consume(ctx context.Context, tokenID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.AccountTokenModel{}).
		Where("id = ? AND used_at IS NULL", tokenID).
		Update("used_at", at)
	if result.Error != nil {
		return false, wrapError(result.Error, "failed to consume account token")
	}
	return result.RowsAffected > 0, nil
}

func (r *gormAccountTokenRepository) Revoke(ctx context.Context, userID string, purpose users.TokenPurpose, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.AccountTokenModel{}).
		Where("user_id = ? AND purpose = ? AND used_at IS NULL", userID, string(purpose)).
		Update("used_at", at)
	if result.Error != nil {
		return 0, wrapError(result.Error, "failed to revoke account tokens")
	}
	if result.RowsAffected > 0 {
		r.logger.Info("Revoked account tokens", "user_id", userID, "purpose", purpose, "count", result.RowsAffected)
	}
	return result.RowsAffected, nil
}
