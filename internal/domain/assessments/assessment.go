// Package assessments models clinical assessments of residents.
package assessments

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// Type of an assessment
type Type string

// Assessment types
const (
	TypeADL       Type = "ADL"
	TypeCognitive Type = "COGNITIVE"
	TypeFallRisk  Type = "FALL_RISK"
	TypeNutrition Type = "NUTRITION"
	TypeGeneral   Type = "GENERAL"
)

// Assessment of a resident
type Assessment struct {
	ID              string `validate:"required,uuid4"`
	ResidentID      string `validate:"required,uuid4"`
	Type            Type   `validate:"required,oneof=ADL COGNITIVE FALL_RISK NUTRITION GENERAL"`
	Score           int    `validate:"gte=0,lte=100"`
	Findings        string `validate:"max=5000"`
	Recommendations string `validate:"max=5000"`
	AssessedBy      string `validate:"required,uuid4"`
	AssessedAt      time.Time
	CreatedAt       time.Time
}

// Validate for validating Assessment struct
func (a *Assessment) Validate() error {
	return validators.ValidateStruct(a)
}

// CreateInput describes a new assessment
type CreateInput struct {
	ResidentID      string `validate:"required,uuid4"`
	Type            Type   `validate:"required,oneof=ADL COGNITIVE FALL_RISK NUTRITION GENERAL"`
	Score           int    `validate:"gte=0,lte=100"`
	Findings        string `validate:"max=5000"`
	Recommendations string `validate:"max=5000"`
	AssessedAt      *time.Time
}

// Validate for validating CreateInput struct
func (in *CreateInput) Validate() error {
	return validators.ValidateStruct(in)
}

// AssessmentService records and reads assessments; reads are PHI access.
type AssessmentService interface {
	Create(ctx context.Context, caller users.Principal, input *CreateInput) (*Assessment, error)
	ListByResident(ctx context.Context, caller users.Principal, residentID string) ([]*Assessment, error)
	Get(ctx context.Context, caller users.Principal, assessmentID string) (*Assessment, error)
}

// AssessmentRepository defines persistence for assessments
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *Assessment) error
	GetByID(ctx context.Context, assessmentID string) (*Assessment, error)
	ListByResident(ctx context.Context, residentID string) ([]*Assessment, error)
}
