package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/leads"

	"gorm.io/gorm"
)

// LeadModel is the GORM database model for leads. Deletion is soft.
type LeadModel struct {
	ID                   string `gorm:"primaryKey;type:uuid"`
	FamilyID             string `gorm:"not null;index;type:uuid"`
	TargetType           string `gorm:"not null;index;type:varchar(20)"`
	TargetID             string `gorm:"not null;type:uuid"`
	Status               string `gorm:"not null;index;type:varchar(20)"`
	Message              string `gorm:"type:text"`
	PreferredStartDate   *time.Time
	ExpectedHoursPerWeek *int
	Location             string  `gorm:"type:varchar(500)"`
	OperatorNotes        string  `gorm:"type:text"`
	AssignedOperatorID   *string `gorm:"index;type:uuid"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts GORM model to domain entity
func (m *LeadModel) ToDomain() *leads.Lead {
	lead := &leads.Lead{
		ID:                   m.ID,
		FamilyID:             m.FamilyID,
		TargetType:           leads.TargetType(m.TargetType),
		TargetID:             m.TargetID,
		Status:               leads.Status(m.Status),
		Message:              m.Message,
		PreferredStartDate:   m.PreferredStartDate,
		ExpectedHoursPerWeek: m.ExpectedHoursPerWeek,
		Location:             m.Location,
		OperatorNotes:        m.OperatorNotes,
		AssignedOperatorID:   m.AssignedOperatorID,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		lead.DeletedAt = &deletedAt
	}
	return lead
}

// FromDomain converts domain entity to GORM model
func (m *LeadModel) FromDomain(l *leads.Lead) {
	m.ID = l.ID
	m.FamilyID = l.FamilyID
	m.TargetType = string(l.TargetType)
	m.TargetID = l.TargetID
	m.Status = string(l.Status)
	m.Message = l.Message
	m.PreferredStartDate = l.PreferredStartDate
	m.ExpectedHoursPerWeek = l.ExpectedHoursPerWeek
	m.Location = l.Location
	m.OperatorNotes = l.OperatorNotes
	m.AssignedOperatorID = l.AssignedOperatorID
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
	m.DeletedAt = gorm.DeletedAt{}
	if l.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *l.DeletedAt, Valid: true}
	}
}
