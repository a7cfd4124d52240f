package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
)

// UserModel is the GORM database model for accounts
type UserModel struct {
	ID               string     `gorm:"primaryKey;type:uuid"`
	Email            string     `gorm:"not null;uniqueIndex;type:varchar(255)"`
	PasswordHash     string     `gorm:"not null;type:varchar(255)"`
	FirstName        string     `gorm:"not null;type:varchar(100)"`
	LastName         string     `gorm:"not null;type:varchar(100)"`
	Phone            string     `gorm:"type:varchar(32)"`
	Role             string     `gorm:"not null;index;type:varchar(20)"`
	Status           string     `gorm:"not null;index;type:varchar(20)"`
	TwoFactorEnabled bool       `gorm:"not null;default:false"`
	TwoFactorSecret  string     `gorm:"type:text"`
	BackupCodeHashes StringList `gorm:"type:text"`
	EmailVerifiedAt  *time.Time
	LastLoginAt      *time.Time
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:               m.ID,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Phone:            m.Phone,
		Role:             users.Role(m.Role),
		Status:           users.Status(m.Status),
		TwoFactorEnabled: m.TwoFactorEnabled,
		TwoFactorSecret:  m.TwoFactorSecret,
		BackupCodeHashes: []string(m.BackupCodeHashes),
		EmailVerifiedAt:  m.EmailVerifiedAt,
		LastLoginAt:      m.LastLoginAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Phone = u.Phone
	m.Role = string(u.Role)
	m.Status = string(u.Status)
	m.TwoFactorEnabled = u.TwoFactorEnabled
	m.TwoFactorSecret = u.TwoFactorSecret
	m.BackupCodeHashes = StringList(u.BackupCodeHashes)
	m.EmailVerifiedAt = u.EmailVerifiedAt
	m.LastLoginAt = u.LastLoginAt
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}
