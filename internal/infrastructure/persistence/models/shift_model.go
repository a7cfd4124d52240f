package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"

	"github.com/shopspring/decimal"
)

// ShiftModel is the GORM database model for shifts. Version guards concurrent transitions.
type ShiftModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	HomeID        string          `gorm:"not null;index;type:uuid"`
	StartTime     time.Time       `gorm:"not null;index"`
	EndTime       time.Time       `gorm:"not null"`
	HourlyRate    decimal.Decimal `gorm:"not null;type:numeric(10,2)"`
	Notes         string          `gorm:"type:text"`
	Status        string          `gorm:"not null;index;type:varchar(20)"`
	CaregiverID   *string         `gorm:"index;type:uuid"`
	AppointmentID *string         `gorm:"type:uuid"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (ShiftModel) TableName() string {
	return "shifts"
}

// ToDomain converts GORM model to domain entity
func (m *ShiftModel) ToDomain() *shifts.Shift {
	return &shifts.Shift{
		ID:            m.ID,
		HomeID:        m.HomeID,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		HourlyRate:    m.HourlyRate,
		Notes:         m.Notes,
		Status:        shifts.Status(m.Status),
		CaregiverID:   m.CaregiverID,
		AppointmentID: m.AppointmentID,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ShiftModel) FromDomain(s *shifts.Shift) {
	m.ID = s.ID
	m.HomeID = s.HomeID
	m.StartTime = s.StartTime
	m.EndTime = s.EndTime
	m.HourlyRate = s.HourlyRate
	m.Notes = s.Notes
	m.Status = string(s.Status)
	m.CaregiverID = s.CaregiverID
	m.AppointmentID = s.AppointmentID
	m.Version = s.Version
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}

// ShiftApplicationModel is the GORM database model for shift applications
type ShiftApplicationModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	ShiftID     string `gorm:"not null;uniqueIndex:idx_shift_caregiver;type:uuid"`
	CaregiverID string `gorm:"not null;uniqueIndex:idx_shift_caregiver;index;type:uuid"`
	Status      string `gorm:"not null;index;type:varchar(20)"`
	Notes       string `gorm:"type:text"`
	AppliedAt   *time.Time
	OfferedAt   *time.Time
	AcceptedAt  *time.Time
	RejectedAt  *time.Time
	WithdrawnAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ShiftApplicationModel) TableName() string {
	return "shift_applications"
}

// ToDomain converts GORM model to domain entity
func (m *ShiftApplicationModel) ToDomain() *shifts.Application {
	return &shifts.Application{
		ID:          m.ID,
		ShiftID:     m.ShiftID,
		CaregiverID: m.CaregiverID,
		Status:      shifts.ApplicationStatus(m.Status),
		Notes:       m.Notes,
		AppliedAt:   m.AppliedAt,
		OfferedAt:   m.OfferedAt,
		AcceptedAt:  m.AcceptedAt,
		RejectedAt:  m.RejectedAt,
		WithdrawnAt: m.WithdrawnAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ShiftApplicationModel) FromDomain(a *shifts.Application) {
	m.ID = a.ID
	m.ShiftID = a.ShiftID
	m.CaregiverID = a.CaregiverID
	m.Status = string(a.Status)
	m.Notes = a.Notes
	m.AppliedAt = a.AppliedAt
	m.OfferedAt = a.OfferedAt
	m.AcceptedAt = a.AcceptedAt
	m.RejectedAt = a.RejectedAt
	m.WithdrawnAt = a.WithdrawnAt
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}
