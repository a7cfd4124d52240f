package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/messages"
)

// MessageModel is the GORM database model for direct messages
type MessageModel struct {
	ID          string  `gorm:"primaryKey;type:uuid"`
	SenderID    string  `gorm:"not null;index:idx_message_pair;type:uuid"`
	RecipientID string  `gorm:"not null;index:idx_message_pair;index;type:uuid"`
	Content     string  `gorm:"not null;type:text"`
	LeadID      *string `gorm:"index;type:uuid"`
	ReadAt      *time.Time
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts GORM model to domain entity
func (m *MessageModel) ToDomain() *messages.Message {
	return &messages.Message{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		LeadID:      m.LeadID,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MessageModel) FromDomain(msg *messages.Message) {
	m.ID = msg.ID
	m.SenderID = msg.SenderID
	m.RecipientID = msg.RecipientID
	m.Content = msg.Content
	m.LeadID = msg.LeadID
	m.ReadAt = msg.ReadAt
	m.CreatedAt = msg.CreatedAt
}
