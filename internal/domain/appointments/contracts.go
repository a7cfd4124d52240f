package appointments

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// CreateInput describes a new appointment; the caller becomes its creator
type CreateInput struct {
	Type           Type   `validate:"required,oneof=CARE_EVALUATION FACILITY_TOUR CAREGIVER_SHIFT FAMILY_VISIT CONSULTATION MEDICAL_APPOINTMENT ADMIN_MEETING SOCIAL_EVENT"`
	Title          string `validate:"required,notblank,max=200"`
	Description    string `validate:"max=2000"`
	StartTime      time.Time
	EndTime        time.Time
	Location       string   `validate:"max=500"`
	HomeID         *string  `validate:"omitempty,uuid4"`
	ResidentID     *string  `validate:"omitempty,uuid4"`
	ParticipantIDs []string `validate:"max=50,dive,uuid4"`
}

// Validate for validating CreateInput struct
func (in *CreateInput) Validate() error {
	if err := validators.ValidateStruct(in); err != nil {
		return err
	}
	return ValidateWindow(in.StartTime, in.EndTime)
}

// Query filters the calendar of one user
type Query struct {
	From     *time.Time
	To       *time.Time
	Types    []Type
	Statuses []Status
	Limit    int `validate:"gte=0,lte=500"`
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.ValidateStruct(q)
}

// AppointmentService manages the calendar.
type AppointmentService interface {
	// Create books an appointment; overlapping bookings of any involved user fail with *ConflictError.
	Create(ctx context.Context, caller users.Principal, input *CreateInput) (*Appointment, error)
	List(ctx context.Context, caller users.Principal, query *Query) ([]*Appointment, error)
	Get(ctx context.Context, caller users.Principal, appointmentID string) (*Appointment, error)
	Reschedule(ctx context.Context, caller users.Principal, appointmentID string, start, end time.Time) (*Appointment, error)
	Cancel(ctx context.Context, caller users.Principal, appointmentID, reason string) (*Appointment, error)
	Complete(ctx context.Context, caller users.Principal, appointmentID string) (*Appointment, error)
	Respond(ctx context.Context, caller users.Principal, appointmentID string, answer ParticipantStatus) (*Appointment, error)

	CheckAvailability(ctx context.Context, userID string, start, end time.Time) (*AvailabilityResult, error)
	FindSlots(ctx context.Context, query *SlotQuery) ([]TimeSlot, error)
	// SetAvailability replaces the caller's weekly schedule.
	SetAvailability(ctx context.Context, caller users.Principal, slots []*AvailabilitySlot) ([]*AvailabilitySlot, error)
	ListAvailability(ctx context.Context, userID string) ([]*AvailabilitySlot, error)
}

// AppointmentRepository defines persistence for appointments and availability
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *Appointment) error
	GetByID(ctx context.Context, appointmentID string) (*Appointment, error)
	// ListForUser returns appointments userID created or participates in.
	ListForUser(ctx context.Context, userID string, query *Query) ([]*Appointment, error)
	Update(ctx context.Context, appointment *Appointment) error

	// FindConflicts returns non-cancelled appointments of any of userIDs overlapping [start, end),
	// skipping excludeID when it is not empty.
	FindConflicts(ctx context.Context, userIDs []string, start, end time.Time, excludeID string) ([]Conflict, error)

	ReplaceAvailability(ctx context.Context, userID string, slots []*AvailabilitySlot) error
	ListAvailability(ctx context.Context, userID string) ([]*AvailabilitySlot, error)
}
