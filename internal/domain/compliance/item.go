// Package compliance tracks licenses, certifications and checks that expire.
package compliance

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// OwnerType of a compliance item
type OwnerType string

// Owner types
const (
	OwnerCaregiver OwnerType = "CAREGIVER"
	OwnerHome      OwnerType = "HOME"
)

// ItemType of a compliance item
type ItemType string

// Item types
const (
	TypeLicense         ItemType = "LICENSE"
	TypeCertification   ItemType = "CERTIFICATION"
	TypeBackgroundCheck ItemType = "BACKGROUND_CHECK"
	TypeTraining        ItemType = "TRAINING"
	TypeInsurance       ItemType = "INSURANCE"
)

// Status of a compliance item
type Status string

// Item statuses
const (
	StatusPendingReview Status = "PENDING_REVIEW"
	StatusCurrent       Status = "CURRENT"
	StatusExpiringSoon  Status = "EXPIRING_SOON"
	StatusExpired       Status = "EXPIRED"
)

// Item is one tracked credential
type Item struct {
	ID         string    `validate:"required,uuid4"`
	OwnerType  OwnerType `validate:"required,oneof=CAREGIVER HOME"`
	OwnerID    string    `validate:"required,uuid4"`
	Type       ItemType  `validate:"required,oneof=LICENSE CERTIFICATION BACKGROUND_CHECK TRAINING INSURANCE"`
	Title      string    `validate:"required,notblank,max=200"`
	IssuedAt   *time.Time
	ExpiresAt  *time.Time
	Status     Status  `validate:"required,oneof=PENDING_REVIEW CURRENT EXPIRING_SOON EXPIRED"`
	VerifiedBy *string `validate:"omitempty,uuid4"`
	VerifiedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate for validating Item struct
func (i *Item) Validate() error {
	return validators.ValidateStruct(i)
}

// StatusAt derives the status of a verified item at now. Unverified items stay PENDING_REVIEW
// until they expire.
func (i *Item) StatusAt(now time.Time, warningDays int) Status {
	if i.ExpiresAt != nil && !i.ExpiresAt.After(now) {
		return StatusExpired
	}
	if i.VerifiedBy == nil {
		return StatusPendingReview
	}
	if i.ExpiresAt != nil && i.ExpiresAt.Before(now.AddDate(0, 0, warningDays)) {
		return StatusExpiringSoon
	}
	return StatusCurrent
}

// Query filters compliance items
type Query struct {
	OwnerType      OwnerType `validate:"omitempty,oneof=CAREGIVER HOME"`
	OwnerIDs       []string  `validate:"omitempty,dive,uuid4"`
	Statuses       []Status
	ExpiringBefore *time.Time
	Limit          int `validate:"gte=0,lte=500"`
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.ValidateStruct(q)
}

// CreateInput describes a new item
type CreateInput struct {
	OwnerType OwnerType `validate:"required,oneof=CAREGIVER HOME"`
	OwnerID   string    `validate:"required,uuid4"`
	Type      ItemType  `validate:"required,oneof=LICENSE CERTIFICATION BACKGROUND_CHECK TRAINING INSURANCE"`
	Title     string    `validate:"required,notblank,max=200"`
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Validate for validating CreateInput struct
func (in *CreateInput) Validate() error {
	return validators.ValidateStruct(in)
}

// SweepResult counts what a sweep changed
type SweepResult struct {
	Checked      int
	ExpiringSoon int
	Expired      int
}

// ComplianceService manages compliance items.
type ComplianceService interface {
	Create(ctx context.Context, caller users.Principal, input *CreateInput) (*Item, error)
	List(ctx context.Context, caller users.Principal, query *Query) ([]*Item, error)
	Verify(ctx context.Context, caller users.Principal, itemID string) (*Item, error)
	// SweepExpirations recomputes statuses at now and notifies owners of items that changed.
	SweepExpirations(ctx context.Context, now time.Time, warningDays int) (*SweepResult, error)
}

// ComplianceRepository defines persistence for compliance items
type ComplianceRepository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, itemID string) (*Item, error)
	List(ctx context.Context, query *Query) ([]*Item, error)
	Update(ctx context.Context, item *Item) error
	// ListExpiring returns items with an expiry before cutoff that are not EXPIRED yet.
	ListExpiring(ctx context.Context, cutoff time.Time) ([]*Item, error)
}
