// Package profiles holds the public marketplace profiles of caregivers and providers.
package profiles

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"

	"github.com/shopspring/decimal"
)

// CaregiverProfile is the public card of a CAREGIVER account
type CaregiverProfile struct {
	UserID          string          `validate:"required,uuid4"`
	Bio             string          `validate:"max=2000"`
	HourlyRate      decimal.Decimal `validate:"decimal_gte0"`
	YearsExperience int             `validate:"gte=0,lte=70"`
	Specialties     []string        `validate:"max=20,dive,notblank,max=50"`
	Available       bool
	UpdatedAt       time.Time
}

// Validate for validating CaregiverProfile struct
func (p *CaregiverProfile) Validate() error {
	return validators.ValidateStruct(p)
}

// ProviderProfile is the public card of a PROVIDER account
type ProviderProfile struct {
	UserID       string   `validate:"required,uuid4"`
	BusinessName string   `validate:"required,notblank,max=200"`
	ServiceTypes []string `validate:"max=20,dive,notblank,max=50"`
	ServiceArea  string   `validate:"max=200"`
	Verified     bool
	UpdatedAt    time.Time
}

// Validate for validating ProviderProfile struct
func (p *ProviderProfile) Validate() error {
	return validators.ValidateStruct(p)
}

// CaregiverQuery filters the caregiver search
type CaregiverQuery struct {
	Specialty     string `validate:"max=50"`
	MaxRate       *decimal.Decimal
	AvailableOnly bool
	Limit         int `validate:"gte=0,lte=100"`
	Offset        int `validate:"gte=0"`
}

// Validate for validating CaregiverQuery struct
func (q *CaregiverQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// ProviderQuery filters the provider search
type ProviderQuery struct {
	ServiceType  string `validate:"max=50"`
	VerifiedOnly bool
	Limit        int `validate:"gte=0,lte=100"`
	Offset       int `validate:"gte=0"`
}

// Validate for validating ProviderQuery struct
func (q *ProviderQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// ProfileService manages caregiver and provider profiles.
type ProfileService interface {
	UpsertCaregiver(ctx context.Context, caller users.Principal, profile *CaregiverProfile) (*CaregiverProfile, error)
	UpsertProvider(ctx context.Context, caller users.Principal, profile *ProviderProfile) (*ProviderProfile, error)
	GetCaregiver(ctx context.Context, userID string) (*CaregiverProfile, error)
	GetProvider(ctx context.Context, userID string) (*ProviderProfile, error)
	SearchCaregivers(ctx context.Context, query *CaregiverQuery) ([]*CaregiverProfile, error)
	SearchProviders(ctx context.Context, query *ProviderQuery) ([]*ProviderProfile, error)
	// SetProviderVerified flips the verified badge; ADMIN or STAFF only.
	SetProviderVerified(ctx context.Context, caller users.Principal, userID string, verified bool) (*ProviderProfile, error)
}

// ProfileRepository defines persistence for profiles
type ProfileRepository interface {
	SaveCaregiver(ctx context.Context, profile *CaregiverProfile) error
	SaveProvider(ctx context.Context, profile *ProviderProfile) error
	GetCaregiver(ctx context.Context, userID string) (*CaregiverProfile, error)
	GetProvider(ctx context.Context, userID string) (*ProviderProfile, error)
	SearchCaregivers(ctx context.Context, query *CaregiverQuery) ([]*CaregiverProfile, error)
	SearchProviders(ctx context.Context, query *ProviderQuery) ([]*ProviderProfile, error)
}
