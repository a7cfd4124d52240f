package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormNotificationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormNotificationRepository creates a new GORM-based NotificationRepository implementation
func NewGormNotificationRepository(db *gorm.DB, logger logger.Logger) (notifications.NotificationRepository, error) {
	return &gormNotificationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormNotificationRepository) Create(ctx context.Context, notification *notifications.Notification) error {
	if err := notification.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.NotificationModel{}
	model.FromDomain(notification)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create notification")
	}

	r.logger.Debug("Created notification", "notification_id", notification.ID, "user_id", notification.UserID, "type", notification.Type)
	return nil
}

func (r *gormNotificationRepository) GetByID(ctx context.Context, notificationID string) (*notifications.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", notificationID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("notification", notificationID)
		}
		return nil, wrapError(err, "failed to fetch notification")
	}
	return model.ToDomain(), nil
}

func (r *gormNotificationRepository) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*notifications.Notification, error) {
	dbQuery := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		dbQuery = dbQuery.Where("read_at IS NULL")
	}
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	var modelList []*models.NotificationModel
	if err := dbQuery.Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch notifications")
	}

	domainList := make([]*notifications.Notification, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormNotificationRepository) MarkRead(ctx context.Context, notificationID string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("id = ?", notificationID).
		Update("read_at", at)
	if result.Error != nil {
		return wrapError(result.Error, "failed to mark notification read")
	}
	if result.RowsAffected == 0 {
		return notFound("notification", notificationID)
	}
	return nil
}

func (r *gormNotificationRepository) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	if result.Error != nil {
		return 0, wrapError(result.Error, "failed to mark notifications read")
	}
	return result.RowsAffected, nil
}

func (r *gormNotificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, wrapError(err, "failed to count unread notifications")
	}
	return count, nil
}
