// Package homes models assisted-living homes and the residents they care for.
// Resident records are PHI: every read is audited.
package homes

import (
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// HomeStatus of a home listing
type HomeStatus string

// Home statuses
const (
	HomeActive   HomeStatus = "ACTIVE"
	HomeInactive HomeStatus = "INACTIVE"
)

// Home is an assisted-living facility run by an operator
type Home struct {
	ID         string     `validate:"required,uuid4"`
	OperatorID string     `validate:"required,uuid4"`
	Name       string     `validate:"required,notblank,max=200"`
	Address    string     `validate:"required,notblank,max=500"`
	Capacity   int        `validate:"gt=0,lte=10000"`
	Status     HomeStatus `validate:"required,oneof=ACTIVE INACTIVE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate for validating Home struct
func (h *Home) Validate() error {
	return validators.ValidateStruct(h)
}

// ResidentStatus of a resident
type ResidentStatus string

// Resident statuses
const (
	ResidentActive     ResidentStatus = "ACTIVE"
	ResidentDischarged ResidentStatus = "DISCHARGED"
)

// Resident is a person living in a home
type Resident struct {
	ID          string         `validate:"required,uuid4"`
	HomeID      string         `validate:"required,uuid4"`
	FamilyID    *string        `validate:"omitempty,uuid4"`
	FirstName   string         `validate:"required,notblank,max=100"`
	LastName    string         `validate:"required,notblank,max=100"`
	DateOfBirth time.Time      `validate:"required"`
	CareLevel   string         `validate:"max=50"`
	Status      ResidentStatus `validate:"required,oneof=ACTIVE DISCHARGED"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the resident and that the birth date lies in the past
func (r *Resident) Validate() error {
	if err := validators.ValidateStruct(r); err != nil {
		return err
	}
	if r.DateOfBirth.After(time.Now()) {
		return fmt.Errorf("%w: date of birth lies in the future", apperr.ErrValidation)
	}
	return nil
}
