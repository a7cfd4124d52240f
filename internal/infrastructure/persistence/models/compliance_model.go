package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
)

// ComplianceItemModel is the GORM database model for compliance items
type ComplianceItemModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	OwnerType  string `gorm:"not null;index:idx_compliance_owner;type:varchar(20)"`
	OwnerID    string `gorm:"not null;index:idx_compliance_owner;type:uuid"`
	Type       string `gorm:"not null;type:varchar(30)"`
	Title      string `gorm:"not null;type:varchar(200)"`
	IssuedAt   *time.Time
	ExpiresAt  *time.Time `gorm:"index"`
	Status     string     `gorm:"not null;index;type:varchar(20)"`
	VerifiedBy *string    `gorm:"type:uuid"`
	VerifiedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (ComplianceItemModel) TableName() string {
	return "compliance_items"
}

// ToDomain converts GORM model to domain entity
func (m *ComplianceItemModel) ToDomain() *compliance.Item {
	return &compliance.Item{
		ID:         m.ID,
		OwnerType:  compliance.OwnerType(m.OwnerType),
		OwnerID:    m.OwnerID,
		Type:       compliance.ItemType(m.Type),
		Title:      m.Title,
		IssuedAt:   m.IssuedAt,
		ExpiresAt:  m.ExpiresAt,
		Status:     compliance.Status(m.Status),
		VerifiedBy: m.VerifiedBy,
		VerifiedAt: m.VerifiedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ComplianceItemModel) FromDomain(i *compliance.Item) {
	m.ID = i.ID
	m.OwnerType = string(i.OwnerType)
	m.OwnerID = i.OwnerID
	m.Type = string(i.Type)
	m.Title = i.Title
	m.IssuedAt = i.IssuedAt
	m.ExpiresAt = i.ExpiresAt
	m.Status = string(i.Status)
	m.VerifiedBy = i.VerifiedBy
	m.VerifiedAt = i.VerifiedAt
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}
