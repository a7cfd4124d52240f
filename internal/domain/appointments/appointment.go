// Package appointments models the shared calendar: appointments, their participants,
// weekly availability and the overlap rule that detects double booking.
package appointments

import (
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// Type of an appointment
type Type string

// Appointment types
const (
	TypeCareEvaluation     Type = "CARE_EVALUATION"
	TypeFacilityTour       Type = "FACILITY_TOUR"
	TypeCaregiverShift     Type = "CAREGIVER_SHIFT"
	TypeFamilyVisit        Type = "FAMILY_VISIT"
	TypeConsultation       Type = "CONSULTATION"
	TypeMedicalAppointment Type = "MEDICAL_APPOINTMENT"
	TypeAdminMeeting       Type = "ADMIN_MEETING"
	TypeSocialEvent        Type = "SOCIAL_EVENT"
)

// Status of an appointment
type Status string

// Appointment statuses
const (
	StatusConfirmed   Status = "CONFIRMED"
	StatusPending     Status = "PENDING"
	StatusCompleted   Status = "COMPLETED"
	StatusCancelled   Status = "CANCELLED"
	StatusRescheduled Status = "RESCHEDULED"
)

// Terminal reports whether no further transition is allowed
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParticipantStatus is an invitee's answer
type ParticipantStatus string

// Participant statuses
const (
	ParticipantPending  ParticipantStatus = "PENDING"
	ParticipantAccepted ParticipantStatus = "ACCEPTED"
	ParticipantDeclined ParticipantStatus = "DECLINED"
)

// Participant of an appointment
type Participant struct {
	UserID string            `validate:"required,uuid4"`
	Status ParticipantStatus `validate:"required,oneof=PENDING ACCEPTED DECLINED"`
}

// Appointment on the shared calendar
type Appointment struct {
	ID           string `validate:"required,uuid4"`
	Type         Type   `validate:"required,oneof=CARE_EVALUATION FACILITY_TOUR CAREGIVER_SHIFT FAMILY_VISIT CONSULTATION MEDICAL_APPOINTMENT ADMIN_MEETING SOCIAL_EVENT"`
	Title        string `validate:"required,notblank,max=200"`
	Description  string `validate:"max=2000"`
	Status       Status `validate:"required,oneof=CONFIRMED PENDING COMPLETED CANCELLED RESCHEDULED"`
	StartTime    time.Time
	EndTime      time.Time
	Location     string        `validate:"max=500"`
	CreatedBy    string        `validate:"required,uuid4"`
	HomeID       *string       `validate:"omitempty,uuid4"`
	ResidentID   *string       `validate:"omitempty,uuid4"`
	Participants []Participant `validate:"dive"`
	CancelReason string        `validate:"max=1000"`
	CancelledAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks fields and that the window is not empty
func (a *Appointment) Validate() error {
	if err := validators.ValidateStruct(a); err != nil {
		return err
	}
	return ValidateWindow(a.StartTime, a.EndTime)
}

// ValidateWindow requires start strictly before end
func ValidateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end time are required", apperr.ErrValidation)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start time must be before end time", apperr.ErrValidation)
	}
	return nil
}

// Involves reports whether userID created or was invited to the appointment
func (a *Appointment) Involves(userID string) bool {
	if a.CreatedBy == userID {
		return true
	}
	return a.Participant(userID) != nil
}

// Participant returns userID's participation, or nil
func (a *Appointment) Participant(userID string) *Participant {
	for i := range a.Participants {
		if a.Participants[i].UserID == userID {
			return &a.Participants[i]
		}
	}
	return nil
}

// UserIDs returns the creator followed by every participant, without duplicates
func (a *Appointment) UserIDs() []string {
	seen := map[string]bool{a.CreatedBy: true}
	ids := []string{a.CreatedBy}
	for _, p := range a.Participants {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}
	return ids
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching windows do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Conflict names an appointment that blocks a proposed window
type Conflict struct {
	AppointmentID string
	UserID        string
	Title         string
	StartTime     time.Time
	EndTime       time.Time
}

// ConflictError reports every blocking appointment
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict with %d appointment(s)", len(e.Conflicts))
}

// Unwrap lets errors.Is match apperr.ErrConflict
func (e *ConflictError) Unwrap() error {
	return apperr.ErrConflict
}

// AppointmentIDs returns the distinct conflicting appointment IDs
func (e *ConflictError) AppointmentIDs() []string {
	seen := map[string]bool{}
	var ids []string
	for _, c := range e.Conflicts {
		if !seen[c.AppointmentID] {
			seen[c.AppointmentID] = true
			ids = append(ids, c.AppointmentID)
		}
	}
	return ids
}
