package app

import (
	"context"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/messages"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

const defaultThreadLimit = 50

// messageService implements messages.MessageService
type messageService struct {
	repo      messages.MessageRepository
	userRepo  users.UserRepository
	notifier  notifications.NotificationService
	publisher notifications.Publisher
	logger    logger.Logger
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(
	repo messages.MessageRepository,
	userRepo users.UserRepository,
	notifier notifications.NotificationService,
	publisher notifications.Publisher,
	logger logger.Logger,
) (messages.MessageService, error) {
	return &messageService{
		repo:      repo,
		userRepo:  userRepo,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Send stores a sanitised message and pushes it to the recipient
func (s *messageService) Send(ctx context.Context, caller users.Principal, input *messages.SendInput) (*messages.Message, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.RecipientID == caller.ID {
		return nil, fmt.Errorf("%w: cannot send a message to yourself", apperr.ErrValidation)
	}
	if _, err := s.userRepo.GetByID(ctx, input.RecipientID); err != nil {
		return nil, err
	}

	content := sanitizeText(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: message is empty after removing markup", apperr.ErrValidation)
	}

	message := &messages.Message{
		ID:          uuid.NewString(),
		SenderID:    caller.ID,
		RecipientID: input.RecipientID,
		Content:     content,
		LeadID:      input.LeadID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}

	s.publisher.Publish(message.RecipientID, &notifications.Event{
		Type: EventMessage,
		Payload: map[string]interface{}{
			"id":        message.ID,
			"senderId":  message.SenderID,
			"content":   message.Content,
			"createdAt": message.CreatedAt,
		},
	})
	if _, err := s.notifier.Notify(ctx, message.RecipientID, notifications.TypeNewMessage,
		"New message", "You have a new message.", map[string]string{"messageId": message.ID, "senderId": caller.ID}); err != nil {
		s.logger.Warn("Failed to notify message recipient", "message_id", message.ID, "error", err)
	}
	return message, nil
}

// ListThread pages the conversation with another user and marks what the caller received as read
func (s *messageService) ListThread(ctx context.Context, caller users.Principal, query *messages.ThreadQuery) ([]*messages.Message, error) {
	if query.Limit == 0 {
		query.Limit = defaultThreadLimit
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	thread, err := s.repo.ListThread(ctx, caller.ID, query)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkThreadRead(ctx, caller.ID, query.WithUserID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return thread, nil
}

// ListConversations returns one entry per partner, most recent first
func (s *messageService) ListConversations(ctx context.Context, caller users.Principal) ([]*messages.Conversation, error) {
	latest, err := s.repo.ListLatestPerPartner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.UnreadCountByPartner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	conversations := make([]*messages.Conversation, 0, len(latest))
	for _, message := range latest {
		partner := message.SenderID
		if partner == caller.ID {
			partner = message.RecipientID
		}
		conversations = append(conversations, &messages.Conversation{
			PartnerID:   partner,
			LastMessage: message,
			UnreadCount: unread[partner],
		})
	}
	return conversations, nil
}

func (s *messageService) UnreadCount(ctx context.Context, caller users.Principal) (int64, error) {
	return s.repo.UnreadCount(ctx, caller.ID)
}
