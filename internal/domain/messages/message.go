// Package messages models direct messages between users.
package messages

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// MaxContentLength bounds a message body
const MaxContentLength = 5000

// Message is a direct message
type Message struct {
	ID          string  `validate:"required,uuid4"`
	SenderID    string  `validate:"required,uuid4"`
	RecipientID string  `validate:"required,uuid4,nefield=SenderID"`
	Content     string  `validate:"required,notblank,max=5000"`
	LeadID      *string `validate:"omitempty,uuid4"`
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// Validate for validating Message struct
func (m *Message) Validate() error {
	return validators.ValidateStruct(m)
}

// SendInput is a new message from the caller
type SendInput struct {
	RecipientID string  `validate:"required,uuid4"`
	Content     string  `validate:"required,notblank,max=5000"`
	LeadID      *string `validate:"omitempty,uuid4"`
}

// Validate for validating SendInput struct
func (in *SendInput) Validate() error {
	return validators.ValidateStruct(in)
}

// ThreadQuery pages backwards through a conversation
type ThreadQuery struct {
	WithUserID string `validate:"required,uuid4"`
	Limit      int    `validate:"gte=1,lte=100"`
	Before     *time.Time
}

// Validate for validating ThreadQuery struct
func (q *ThreadQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// Conversation summarises the exchange with one partner
type Conversation struct {
	PartnerID   string
	LastMessage *Message
	UnreadCount int64
}

// MessageService sends and reads direct messages.
type MessageService interface {
	Send(ctx context.Context, caller users.Principal, input *SendInput) (*Message, error)
	// ListThread returns the conversation newest first and marks received messages read.
	ListThread(ctx context.Context, caller users.Principal, query *ThreadQuery) ([]*Message, error)
	ListConversations(ctx context.Context, caller users.Principal) ([]*Conversation, error)
	UnreadCount(ctx context.Context, caller users.Principal) (int64, error)
}

// MessageRepository defines persistence for messages
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	ListThread(ctx context.Context, userID string, query *ThreadQuery) ([]*Message, error)
	MarkThreadRead(ctx context.Context, recipientID, senderID string, at time.Time) error
	// ListLatestPerPartner returns the newest message exchanged with each partner of userID.
	ListLatestPerPartner(ctx context.Context, userID string) ([]*Message, error)
	UnreadCountByPartner(ctx context.Context, userID string) (map[string]int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}
