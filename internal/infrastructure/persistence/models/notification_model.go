package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
)

// NotificationModel is the GORM database model for notifications
type NotificationModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"not null;index;type:uuid"`
	Type      string    `gorm:"not null;type:varchar(30)"`
	Title     string    `gorm:"not null;type:varchar(200)"`
	Message   string    `gorm:"not null;type:varchar(2000)"`
	Data      StringMap `gorm:"type:text"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts GORM model to domain entity
func (m *NotificationModel) ToDomain() *notifications.Notification {
	return &notifications.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      notifications.Type(m.Type),
		Title:     m.Title,
		Message:   m.Message,
		Data:      map[string]string(m.Data),
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *NotificationModel) FromDomain(n *notifications.Notification) {
	m.ID = n.ID
	m.UserID = n.UserID
	m.Type = string(n.Type)
	m.Title = n.Title
	m.Message = n.Message
	m.Data = StringMap(n.Data)
	m.ReadAt = n.ReadAt
	m.CreatedAt = n.CreatedAt
}
