package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/profiles"

	"github.com/shopspring/decimal"
)

// CaregiverProfileModel is the GORM database model for caregiver profiles
type CaregiverProfileModel struct {
	UserID          string          `gorm:"primaryKey;type:uuid"`
	Bio             string          `gorm:"type:text"`
	HourlyRate      decimal.Decimal `gorm:"not null;type:numeric(10,2)"`
	YearsExperience int             `gorm:"not null;default:0"`
	Specialties     StringList      `gorm:"type:text"`
	Available       bool            `gorm:"not null;index"`
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (CaregiverProfileModel) TableName() string {
	return "caregiver_profiles"
}

// ToDomain converts GORM model to domain entity
func (m *CaregiverProfileModel) ToDomain() *profiles.CaregiverProfile {
	return &profiles.CaregiverProfile{
		UserID:          m.UserID,
		Bio:             m.Bio,
		HourlyRate:      m.HourlyRate,
		YearsExperience: m.YearsExperience,
		Specialties:     []string(m.Specialties),
		Available:       m.Available,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CaregiverProfileModel) FromDomain(p *profiles.CaregiverProfile) {
	m.UserID = p.UserID
	m.Bio = p.Bio
	m.HourlyRate = p.HourlyRate
	m.YearsExperience = p.YearsExperience
	m.Specialties = StringList(p.Specialties)
	m.Available = p.Available
	m.UpdatedAt = p.UpdatedAt
}

// ProviderProfileModel is the GORM database model for provider profiles
type ProviderProfileModel struct {
	UserID       string     `gorm:"primaryKey;type:uuid"`
	BusinessName string     `gorm:"not null;type:varchar(200)"`
	ServiceTypes StringList `gorm:"type:text"`
	ServiceArea  string     `gorm:"type:varchar(200)"`
	Verified     bool       `gorm:"not null;index"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (ProviderProfileModel) TableName() string {
	return "provider_profiles"
}

// ToDomain converts GORM model to domain entity
func (m *ProviderProfileModel) ToDomain() *profiles.ProviderProfile {
	return &profiles.ProviderProfile{
		UserID:       m.UserID,
		BusinessName: m.BusinessName,
		ServiceTypes: []string(m.ServiceTypes),
		ServiceArea:  m.ServiceArea,
		Verified:     m.Verified,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ProviderProfileModel) FromDomain(p *profiles.ProviderProfile) {
	m.UserID = p.UserID
	m.BusinessName = p.BusinessName
	m.ServiceTypes = StringList(p.ServiceTypes)
	m.ServiceArea = p.ServiceArea
	m.Verified = p.Verified
	m.UpdatedAt = p.UpdatedAt
}
