package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
)

// AppointmentModel is the GORM database model for calendar appointments
type AppointmentModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Type         string    `gorm:"not null;type:varchar(30)"`
	Title        string    `gorm:"not null;type:varchar(200)"`
	Description  string    `gorm:"type:text"`
	Status       string    `gorm:"not null;index;type:varchar(20)"`
	StartTime    time.Time `gorm:"not null;index"`
	EndTime      time.Time `gorm:"not null;index"`
	Location     string    `gorm:"type:varchar(500)"`
	CreatedBy    string    `gorm:"not null;index;type:uuid"`
	HomeID       *string   `gorm:"index;type:uuid"`
	ResidentID   *string   `gorm:"index;type:uuid"`
	CancelReason string    `gorm:"type:varchar(1000)"`
	CancelledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Participants []AppointmentParticipantModel `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToDomain converts GORM model to domain entity
func (m *AppointmentModel) ToDomain() *appointments.Appointment {
	participants := make([]appointments.Participant, len(m.Participants))
	for i, p := range m.Participants {
		participants[i] = appointments.Participant{UserID: p.UserID, Status: appointments.ParticipantStatus(p.Status)}
	}
	return &appointments.Appointment{
		ID:           m.ID,
		Type:         appointments.Type(m.Type),
		Title:        m.Title,
		Description:  m.Description,
		Status:       appointments.Status(m.Status),
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Location:     m.Location,
		CreatedBy:    m.CreatedBy,
		HomeID:       m.HomeID,
		ResidentID:   m.ResidentID,
		Participants: participants,
		CancelReason: m.CancelReason,
		CancelledAt:  m.CancelledAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AppointmentModel) FromDomain(a *appointments.Appointment) {
	m.ID = a.ID
	m.Type = string(a.Type)
	m.Title = a.Title
	m.Description = a.Description
	m.Status = string(a.Status)
	m.StartTime = a.StartTime
	m.EndTime = a.EndTime
	m.Location = a.Location
	m.CreatedBy = a.CreatedBy
	m.HomeID = a.HomeID
	m.ResidentID = a.ResidentID
	m.CancelReason = a.CancelReason
	m.CancelledAt = a.CancelledAt
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Participants = make([]AppointmentParticipantModel, len(a.Participants))
	for i, p := range a.Participants {
		m.Participants[i] = AppointmentParticipantModel{AppointmentID: a.ID, UserID: p.UserID, Status: string(p.Status)}
	}
}

// AppointmentParticipantModel is the GORM database model for invitees
type AppointmentParticipantModel struct {
	AppointmentID string `gorm:"primaryKey;type:uuid"`
	UserID        string `gorm:"primaryKey;index;type:uuid"`
	Status        string `gorm:"not null;type:varchar(20)"`
}

// TableName specifies the table name for GORM
func (AppointmentParticipantModel) TableName() string {
	return "appointment_participants"
}

// AvailabilitySlotModel is the GORM database model for weekly availability
type AvailabilitySlotModel struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	UserID      string `gorm:"not null;index;type:uuid"`
	DayOfWeek   int    `gorm:"not null"`
	StartMinute int    `gorm:"not null"`
	EndMinute   int    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AvailabilitySlotModel) TableName() string {
	return "availability_slots"
}

// ToDomain converts GORM model to domain entity
func (m *AvailabilitySlotModel) ToDomain() *appointments.AvailabilitySlot {
	return &appointments.AvailabilitySlot{
		ID:          m.ID,
		UserID:      m.UserID,
		DayOfWeek:   m.DayOfWeek,
		StartMinute: m.StartMinute,
		EndMinute:   m.EndMinute,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AvailabilitySlotModel) FromDomain(s *appointments.AvailabilitySlot) {
	m.ID = s.ID
	m.UserID = s.UserID
	m.DayOfWeek = s.DayOfWeek
	m.StartMinute = s.StartMinute
	m.EndMinute = s.EndMinute
}
