// Package shifts models caregiver shifts posted by homes and the
// apply → offer → accept → confirm → start → complete lifecycle around them.
package shifts

import (
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"

	"github.com/shopspring/decimal"
)

// Status of a shift
type Status string

// Shift statuses
const (
	StatusOpen       Status = "OPEN"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCanceled   Status = "CANCELED"
)

// ApplicationStatus of a caregiver's application
type ApplicationStatus string

// Application statuses
const (
	ApplicationApplied   ApplicationStatus = "APPLIED"
	ApplicationOffered   ApplicationStatus = "OFFERED"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

// Live reports whether the application still blocks a new one
func (s ApplicationStatus) Live() bool {
	return s != ApplicationWithdrawn && s != ApplicationRejected
}

// Shift is a block of paid work at a home
type Shift struct {
	ID            string `validate:"required,uuid4"`
	HomeID        string `validate:"required,uuid4"`
	StartTime     time.Time
	EndTime       time.Time
	HourlyRate    decimal.Decimal `validate:"decimal_gt0"`
	Notes         string          `validate:"max=5000"`
	Status        Status          `validate:"required,oneof=OPEN ASSIGNED IN_PROGRESS COMPLETED CANCELED"`
	CaregiverID   *string         `validate:"omitempty,uuid4"`
	AppointmentID *string         `validate:"omitempty,uuid4"`
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks fields and that the shift does not end before it starts
func (s *Shift) Validate() error {
	if err := validators.ValidateStruct(s); err != nil {
		return err
	}
	if s.StartTime.IsZero() || !s.StartTime.Before(s.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", apperr.ErrValidation)
	}
	return nil
}

// Hours worked, rounded to two decimals
func (s *Shift) Hours() decimal.Decimal {
	minutes := decimal.NewFromInt(int64(s.EndTime.Sub(s.StartTime) / time.Minute))
	return minutes.Div(decimal.NewFromInt(60)).Round(2)
}

// Pay owed for the shift: hourly rate times rounded hours
func (s *Shift) Pay() decimal.Decimal {
	return s.HourlyRate.Mul(s.Hours()).Round(2)
}

// AssignedTo reports whether caregiverID holds the shift
func (s *Shift) AssignedTo(caregiverID string) bool {
	return s.CaregiverID != nil && *s.CaregiverID == caregiverID
}

// RequireStatus fails with ErrInvalidState unless the shift is in one of allowed
func (s *Shift) RequireStatus(action string, allowed ...Status) error {
	for _, status := range allowed {
		if s.Status == status {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s a shift that is %s", apperr.ErrInvalidState, action, s.Status)
}

// Application of a caregiver to a shift; one per (shift, caregiver)
type Application struct {
	ID          string            `validate:"required,uuid4"`
	ShiftID     string            `validate:"required,uuid4"`
	CaregiverID string            `validate:"required,uuid4"`
	Status      ApplicationStatus `validate:"required,oneof=APPLIED OFFERED ACCEPTED REJECTED WITHDRAWN"`
	Notes       string            `validate:"max=2000"`
	AppliedAt   *time.Time
	OfferedAt   *time.Time
	AcceptedAt  *time.Time
	RejectedAt  *time.Time
	WithdrawnAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate for validating Application struct
func (a *Application) Validate() error {
	return validators.ValidateStruct(a)
}

// RequireStatus fails with ErrInvalidState unless the application is in one of allowed
func (a *Application) RequireStatus(action string, allowed ...ApplicationStatus) error {
	for _, status := range allowed {
		if a.Status == status {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s an application that is %s", apperr.ErrInvalidState, action, a.Status)
}

// Transition moves the application to status and stamps the matching timestamp
func (a *Application) Transition(status ApplicationStatus, at time.Time) {
	a.Status = status
	a.UpdatedAt = at
	switch status {
	case ApplicationApplied:
		a.AppliedAt = &at
	case ApplicationOffered:
		a.OfferedAt = &at
	case ApplicationAccepted:
		a.AcceptedAt = &at
	case ApplicationRejected:
		a.RejectedAt = &at
	case ApplicationWithdrawn:
		a.WithdrawnAt = &at
	}
}

// ChooseAccepted picks the application to confirm: the one of caregiverID when given,
// else the single ACCEPTED application.
func ChooseAccepted(applications []*Application, caregiverID string) (*Application, error) {
	var accepted []*Application
	for _, app := range applications {
		if app.Status == ApplicationAccepted {
			accepted = append(accepted, app)
		}
	}
	if caregiverID != "" {
		for _, app := range accepted {
			if app.CaregiverID == caregiverID {
				return app, nil
			}
		}
		return nil, fmt.Errorf("%w: caregiver %s has not accepted this shift", apperr.ErrInvalidState, caregiverID)
	}
	switch len(accepted) {
	case 0:
		return nil, fmt.Errorf("%w: no caregiver has accepted this shift", apperr.ErrInvalidState)
	case 1:
		return accepted[0], nil
	default:
		return nil, fmt.Errorf("%w: %d caregivers accepted; choose one", apperr.ErrValidation, len(accepted))
	}
}

// AppendCancelReason adds the cancellation reason to the operator notes
func AppendCancelReason(notes, reason string) string {
	if reason == "" {
		return notes
	}
	if notes == "" {
		return "Cancellation reason: " + reason
	}
	return notes + "\n\nCancellation reason: " + reason
}
