package app

import (
	"context"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

// Realtime event types
const (
	EventNotification = "notification"
	EventMessage      = "message"
)

// Notification listing bounds
const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

// notificationService implements notifications.NotificationService
type notificationService struct {
	repo      notifications.NotificationRepository
	userRepo  users.UserRepository
	mailer    notifications.Mailer
	publisher notifications.Publisher
	logger    logger.Logger
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(
	repo notifications.NotificationRepository,
	userRepo users.UserRepository,
	mailer notifications.Mailer,
	publisher notifications.Publisher,
	logger logger.Logger,
) (notifications.NotificationService, error) {
	return &notificationService{
		repo:      repo,
		userRepo:  userRepo,
		mailer:    mailer,
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (s *notificationService) Notify(ctx context.Context, userID string, kind notifications.Type, title, message string, data map[string]string) (*notifications.Notification, error) {
	notification := &notifications.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	s.publisher.Publish(userID, &notifications.Event{
		Type: EventNotification,
		Payload: map[string]interface{}{
			"id":        notification.ID,
			"type":      notification.Type,
			"title":     notification.Title,
			"message":   notification.Message,
			"data":      notification.Data,
			"createdAt": notification.CreatedAt,
		},
	})

	if kind.Emailed() {
		s.email(ctx, notification)
	}
	return notification, nil
}

func (s *notificationService) email(ctx context.Context, notification *notifications.Notification) {
	user, err := s.userRepo.GetByID(ctx, notification.UserID)
	if err != nil {
		s.logger.Warn("Skipping notification email", "notification_id", notification.ID, "error", err)
		return
	}

	err = s.mailer.Send(ctx, &notifications.Email{
		To:      user.Email,
		Subject: notification.Title,
		Body:    fmt.Sprintf("Hello %s,\n\n%s\n\nCareLinkAI", user.FirstName, notification.Message),
	})
	if err != nil {
		s.logger.Error("Failed to email notification", "notification_id", notification.ID, "type", notification.Type, "error", err)
	}
}

func (s *notificationService) List(ctx context.Context, caller users.Principal, unreadOnly bool, limit int) ([]*notifications.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}
	return s.repo.List(ctx, caller.ID, unreadOnly, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, caller users.Principal, notificationID string) error {
	notification, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != caller.ID {
		return fmt.Errorf("%w: notification %s belongs to another user", apperr.ErrForbidden, notificationID)
	}
	if notification.ReadAt != nil {
		return nil
	}
	return s.repo.MarkRead(ctx, notificationID, time.Now().UTC())
}

func (s *notificationService) MarkAllRead(ctx context.Context, caller users.Principal) (int64, error) {
	return s.repo.MarkAllRead(ctx, caller.ID, time.Now().UTC())
}

func (s *notificationService) UnreadCount(ctx context.Context, caller users.Principal) (int64, error) {
	return s.repo.UnreadCount(ctx, caller.ID)
}
