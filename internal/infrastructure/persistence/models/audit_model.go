package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
)

// AuditLogModel is the GORM database model for audit entries
type AuditLogModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	UserID       string    `gorm:"not null;index;type:varchar(64)"`
	ActionedBy   *string   `gorm:"index;type:varchar(64)"`
	Action       string    `gorm:"not null;index;type:varchar(30)"`
	ResourceType string    `gorm:"not null;index:idx_audit_resource;type:varchar(100)"`
	ResourceID   *string   `gorm:"index:idx_audit_resource;type:varchar(64)"`
	Description  string    `gorm:"not null;type:varchar(2000)"`
	Metadata     JSONMap   `gorm:"type:text"`
	IPAddress    string    `gorm:"index;type:varchar(100)"`
	UserAgent    string    `gorm:"type:varchar(500)"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts GORM model to domain entity
func (m *AuditLogModel) ToDomain() *audit.Log {
	return &audit.Log{
		ID:           m.ID,
		UserID:       m.UserID,
		ActionedBy:   m.ActionedBy,
		Action:       audit.Action(m.Action),
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		Description:  m.Description,
		Metadata:     map[string]interface{}(m.Metadata),
		IPAddress:    m.IPAddress,
		UserAgent:    m.UserAgent,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AuditLogModel) FromDomain(l *audit.Log) {
	m.ID = l.ID
	m.UserID = l.UserID
	m.ActionedBy = l.ActionedBy
	m.Action = string(l.Action)
	m.ResourceType = l.ResourceType
	m.ResourceID = l.ResourceID
	m.Description = l.Description
	m.Metadata = JSONMap(l.Metadata)
	m.IPAddress = l.IPAddress
	m.UserAgent = l.UserAgent
	m.CreatedAt = l.CreatedAt
}
