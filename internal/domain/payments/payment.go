// Package payments models caregiver payouts produced by completed shifts.
package payments

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"

	"github.com/shopspring/decimal"
)

// Type of a payment
type Type string

// Payment types
const (
	TypeCaregiverPayment Type = "CAREGIVER_PAYMENT"
)

// Status of a payment
type Status string

// Payment statuses
const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// Payment owed to a user
type Payment struct {
	ID        string          `validate:"required,uuid4"`
	PayeeID   string          `validate:"required,uuid4"`
	ShiftID   *string         `validate:"omitempty,uuid4"`
	Type      Type            `validate:"required,oneof=CAREGIVER_PAYMENT"`
	Amount    decimal.Decimal `validate:"decimal_gte0"`
	Status    Status          `validate:"required,oneof=PENDING PAID FAILED CANCELLED"`
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate for validating Payment struct
func (p *Payment) Validate() error {
	return validators.ValidateStruct(p)
}

// Query filters the admin payment listing
type Query struct {
	PayeeID string `validate:"omitempty,uuid4"`
	Status  Status `validate:"omitempty,oneof=PENDING PAID FAILED CANCELLED"`
	Limit   int    `validate:"gte=0,lte=100"`
	Offset  int    `validate:"gte=0"`
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.ValidateStruct(q)
}

// PaymentService lists and settles payments.
type PaymentService interface {
	ListMine(ctx context.Context, caller users.Principal) ([]*Payment, error)
	ListAll(ctx context.Context, caller users.Principal, query *Query) ([]*Payment, error)
	MarkPaid(ctx context.Context, caller users.Principal, paymentID string) (*Payment, error)
}

// PaymentRepository defines persistence for payments
type PaymentRepository interface {
	GetByID(ctx context.Context, paymentID string) (*Payment, error)
	List(ctx context.Context, query *Query) ([]*Payment, error)
	ListByShifts(ctx context.Context, shiftIDs []string) ([]*Payment, error)
	Update(ctx context.Context, payment *Payment) error
}
