// Package notifications models in-app notifications and the channels that deliver them.
package notifications

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// Type of a notification
type Type string

// Notification types
const (
	TypeShiftApplication   Type = "SHIFT_APPLICATION"
	TypeShiftOffer         Type = "SHIFT_OFFER"
	TypeShiftConfirmed     Type = "SHIFT_CONFIRMED"
	TypeNewMessage         Type = "NEW_MESSAGE"
	TypeComplianceExpiring Type = "COMPLIANCE_EXPIRING"
	TypeLeadUpdate         Type = "LEAD_UPDATE"
	TypeSystem             Type = "SYSTEM"
)

// Emailed reports whether notifications of this type are also sent by mail
func (t Type) Emailed() bool {
	switch t {
	case TypeShiftOffer, TypeShiftConfirmed, TypeComplianceExpiring:
		return true
	}
	return false
}

// Notification is a message to one user
type Notification struct {
	ID        string `validate:"required,uuid4"`
	UserID    string `validate:"required,uuid4"`
	Type      Type   `validate:"required,oneof=SHIFT_APPLICATION SHIFT_OFFER SHIFT_CONFIRMED NEW_MESSAGE COMPLIANCE_EXPIRING LEAD_UPDATE SYSTEM"`
	Title     string `validate:"required,notblank,max=200"`
	Message   string `validate:"required,max=2000"`
	Data      map[string]string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Validate for validating Notification struct
func (n *Notification) Validate() error {
	return validators.ValidateStruct(n)
}

// Event is what the realtime hub pushes to connected clients
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Email is an outgoing mail
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers email
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// Publisher pushes events to a user's live connections
type Publisher interface {
	Publish(userID string, event *Event)
}

// NotificationService delivers and lists notifications.
type NotificationService interface {
	// Notify persists, publishes and, for mail-worthy types, emails a notification.
	// Delivery failures are logged; only persistence errors are returned.
	Notify(ctx context.Context, userID string, kind Type, title, message string, data map[string]string) (*Notification, error)
	List(ctx context.Context, caller users.Principal, unreadOnly bool, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, caller users.Principal, notificationID string) error
	MarkAllRead(ctx context.Context, caller users.Principal) (int64, error)
	UnreadCount(ctx context.Context, caller users.Principal) (int64, error)
}

// NotificationRepository defines persistence for notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByID(ctx context.Context, notificationID string) (*Notification, error)
	List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, notificationID string, at time.Time) error
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}
