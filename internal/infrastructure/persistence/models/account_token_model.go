package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
)

// AccountTokenModel is the GORM database model for mailed account tokens
type AccountTokenModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"not null;index:idx_account_tokens_user_purpose;type:uuid"`
	Purpose   string    `gorm:"not null;index:idx_account_tokens_user_purpose;type:varchar(30)"`
	TokenHash string    `gorm:"not null;type:varchar(255)"`
	ExpiresAt time.Time `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AccountTokenModel) TableName() string {
	return "account_tokens"
}

// ToDomain converts GORM model to domain entity
func (m *AccountTokenModel) ToDomain() *users.AccountToken {
	return &users.AccountToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Purpose:   users.TokenPurpose(m.Purpose),
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		UsedAt:    m.UsedAt,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AccountTokenModel) FromDomain(t *users.AccountToken) {
	m.ID = t.ID
	m.UserID = t.UserID
	m.Purpose = string(t.Purpose)
	m.TokenHash = t.TokenHash
	m.ExpiresAt = t.ExpiresAt
	m.UsedAt = t.UsedAt
	m.CreatedAt = t.CreatedAt
}
