package persistence

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/messages"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

// latestPerPartnerSQL selects the newest message of every conversation of a user
const latestPerPartnerSQL = `
SELECT m.* FROM messages m
JOIN (
	SELECT CASE WHEN sender_id = @user THEN recipient_id ELSE sender_id END AS partner_id,
		MAX(created_at) AS last_at
	FROM messages
	WHERE sender_id = @user OR recipient_id = @user
	GROUP BY partner_id
) latest ON m.created_at = latest.last_at
	AND ((m.sender_id = @user AND m.recipient_id = latest.partner_id)
		OR (m.recipient_id = @user AND m.sender_id = latest.partner_id))
ORDER BY m.created_at DESC`

type gormMessageRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMessageRepository creates a new GORM-based MessageRepository implementation
func NewGormMessageRepository(db *gorm.DB, logger logger.Logger) (messages.MessageRepository, error) {
	return &gormMessageRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMessageRepository) Create(ctx context.Context, message *messages.Message) error {
	if err := message.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.MessageModel{}
	model.FromDomain(message)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create message")
	}

	r.logger.Debug("Created message", "message_id", message.ID, "sender_id", message.SenderID)
	return nil
}

func (r *gormMessageRepository) ListThread(ctx context.Context, userID string, query *messages.ThreadQuery) ([]*messages.Message, error) {
	if err := query.Validate(); err != nil {
		return nil, validationError(err)
	}

	dbQuery := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, query.WithUserID, query.WithUserID, userID)
	if query.Before != nil {
		dbQuery = dbQuery.Where("created_at < ?", *query.Before)
	}

	var modelList []*models.MessageModel
	if err := dbQuery.Order("created_at desc").Limit(query.Limit).Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch messages")
	}
	return messagesToDomain(modelList), nil
}

func (r *gormMessageRepository) MarkThreadRead(ctx context.Context, recipientID, senderID string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Where("recipient_id = ? AND sender_id = ? AND read_at IS NULL", recipientID, senderID).
		Update("read_at", at).Error
	if err != nil {
		return wrapError(err, "failed to mark messages read")
	}
	return nil
}

func (r *gormMessageRepository) ListLatestPerPartner(ctx context.Context, userID string) ([]*messages.Message, error) {
	var modelList []*models.MessageModel
	if err := r.db.WithContext(ctx).
		Raw(latestPerPartnerSQL, map[string]interface{}{"user": userID}).
		Scan(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch conversations")
	}

	// identical timestamps can yield more than one row per partner
	seen := make(map[string]bool, len(modelList))
	domainList := make([]*messages.Message, 0, len(modelList))
	for _, model := range modelList {
		partner := model.SenderID
		if partner == userID {
			partner = model.RecipientID
		}
		if seen[partner] {
			continue
		}
		seen[partner] = true
		domainList = append(domainList, model.ToDomain())
	}
	return domainList, nil
}

func (r *gormMessageRepository) UnreadCountByPartner(ctx context.Context, userID string) (map[string]int64, error) {
	var rows []struct {
		SenderID string
		Count    int64
	}
	if err := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Select("sender_id, COUNT(*) AS count").
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Group("sender_id").Scan(&rows).Error; err != nil {
		return nil, wrapError(err, "failed to count unread messages")
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.SenderID] = row.Count
	}
	return counts, nil
}

func (r *gormMessageRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.MessageModel{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, wrapError(err, "failed to count unread messages")
	}
	return count, nil
}

func messagesToDomain(modelList []*models.MessageModel) []*messages.Message {
	domainList := make([]*messages.Message, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
