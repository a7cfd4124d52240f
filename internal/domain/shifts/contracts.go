package shifts

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"

	"github.com/shopspring/decimal"
)

// Query filters the shift listing
type Query struct {
	HomeID            string `validate:"omitempty,uuid4"`
	Statuses          []Status
	From              *time.Time
	To                *time.Time
	MyApplications    bool
	ApplicationStatus ApplicationStatus `validate:"omitempty,oneof=APPLIED OFFERED ACCEPTED REJECTED WITHDRAWN"`
	Limit             int               `validate:"gte=1,lte=100"`
	Offset            int               `validate:"gte=0"`
}

// DefaultListLimit of the shift listing
const DefaultListLimit = 50

// NewQuery returns a query with the default page size
func NewQuery() *Query {
	return &Query{Limit: DefaultListLimit}
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.ValidateStruct(q)
}

// Filter is the scoped query handed to the repository
type Filter struct {
	HomeIDs           []string
	Statuses          []Status
	From              *time.Time
	To                *time.Time
	ApplicantID       string
	ApplicationStatus ApplicationStatus
	Limit             int
	Offset            int
}

// CreateInput describes a new shift posting
type CreateInput struct {
	HomeID     string `validate:"required,uuid4"`
	StartTime  time.Time
	EndTime    time.Time
	HourlyRate decimal.Decimal `validate:"decimal_gt0"`
	Notes      string          `validate:"max=5000"`
}

// Validate for validating CreateInput struct
func (in *CreateInput) Validate() error {
	return validators.ValidateStruct(in)
}

// Timesheet is a caregiver's completed shifts and what they earned
type Timesheet struct {
	Shifts     []*Shift
	Payments   []*payments.Payment
	TotalHours decimal.Decimal
	TotalPay   decimal.Decimal
}

// ShiftService drives the shift lifecycle.
type ShiftService interface {
	List(ctx context.Context, caller users.Principal, query *Query) ([]*Shift, int64, error)
	Create(ctx context.Context, caller users.Principal, input *CreateInput) (*Shift, error)
	Get(ctx context.Context, caller users.Principal, shiftID string) (*Shift, error)

	Apply(ctx context.Context, caller users.Principal, shiftID, notes string) (*Application, error)
	Withdraw(ctx context.Context, caller users.Principal, shiftID string) (*Application, error)
	Offer(ctx context.Context, caller users.Principal, shiftID, caregiverID, notes string) (*Application, error)
	Reject(ctx context.Context, caller users.Principal, shiftID, caregiverID string) (*Application, error)
	Accept(ctx context.Context, caller users.Principal, shiftID string) (*Application, error)

	// Confirm assigns the shift to an accepted caregiver and books the appointment.
	// An empty caregiverID requires exactly one ACCEPTED application.
	Confirm(ctx context.Context, caller users.Principal, shiftID, caregiverID string) (*Shift, error)
	Start(ctx context.Context, caller users.Principal, shiftID string) (*Shift, error)
	Cancel(ctx context.Context, caller users.Principal, shiftID, reason string) (*Shift, error)
	// Complete closes the shift and creates the caregiver payment.
	Complete(ctx context.Context, caller users.Principal, shiftID string) (*Shift, *payments.Payment, error)

	ListApplications(ctx context.Context, caller users.Principal, shiftID string) ([]*Application, error)
	Timesheets(ctx context.Context, caller users.Principal) (*Timesheet, error)
}

// ShiftRepository defines persistence for shifts and applications.
// Every shift write is conditional on Version and fails with apperr.ErrConflict when stale;
// on success the stored and in-memory Version are incremented.
type ShiftRepository interface {
	Create(ctx context.Context, shift *Shift) error
	GetByID(ctx context.Context, shiftID string) (*Shift, error)
	List(ctx context.Context, filter *Filter) ([]*Shift, int64, error)
	Update(ctx context.Context, shift *Shift) error

	GetApplication(ctx context.Context, shiftID, caregiverID string) (*Application, error)
	SaveApplication(ctx context.Context, application *Application) error
	// TransitionApplication stores application only while its stored status is one of from,
	// and bumps shift's version in the same transaction so a racing Confirm loses.
	TransitionApplication(ctx context.Context, shift *Shift, application *Application, from ...ApplicationStatus) error
	ListApplications(ctx context.Context, shiftID string) ([]*Application, error)
	CountApplications(ctx context.Context, homeIDs []string, status ApplicationStatus) (int64, error)

	// Confirm books appointment and assigns shift in one transaction, provided the
	// chosen application is still ACCEPTED.
	Confirm(ctx context.Context, shift *Shift, chosen *Application, appointment *appointments.Appointment) error
	// Cancel cancels shift and, if linked, its appointment in one transaction.
	Cancel(ctx context.Context, shift *Shift, reason string) error
	// Complete closes shift, completes its appointment and stores payment in one transaction.
	Complete(ctx context.Context, shift *Shift, payment *payments.Payment) error

	ListCompletedByCaregiver(ctx context.Context, caregiverID string) ([]*Shift, error)
}
