package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/assessments"
)

// AssessmentModel is the GORM database model for resident assessments
type AssessmentModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	ResidentID      string    `gorm:"not null;index;type:uuid"`
	Type            string    `gorm:"not null;type:varchar(20)"`
	Score           int       `gorm:"not null"`
	Findings        string    `gorm:"type:text"`
	Recommendations string    `gorm:"type:text"`
	AssessedBy      string    `gorm:"not null;type:uuid"`
	AssessedAt      time.Time `gorm:"not null;index"`
	CreatedAt       time.Time
}

// TableName specifies the table name for GORM
func (AssessmentModel) TableName() string {
	return "assessments"
}

// ToDomain converts GORM model to domain entity
func (m *AssessmentModel) ToDomain() *assessments.Assessment {
	return &assessments.Assessment{
		ID:              m.ID,
		ResidentID:      m.ResidentID,
		Type:            assessments.Type(m.Type),
		Score:           m.Score,
		Findings:        m.Findings,
		Recommendations: m.Recommendations,
		AssessedBy:      m.AssessedBy,
		AssessedAt:      m.AssessedAt,
		CreatedAt:       m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AssessmentModel) FromDomain(a *assessments.Assessment) {
	m.ID = a.ID
	m.ResidentID = a.ResidentID
	m.Type = string(a.Type)
	m.Score = a.Score
	m.Findings = a.Findings
	m.Recommendations = a.Recommendations
	m.AssessedBy = a.AssessedBy
	m.AssessedAt = a.AssessedAt
	m.CreatedAt = a.CreatedAt
}
