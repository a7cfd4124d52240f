// Package leads models inquiries sent by families to aides and providers,
// and the operator pipeline that works them.
package leads

import (
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// Status of a lead in the pipeline
type Status string

// Lead statuses
const (
	StatusNew       Status = "NEW"
	StatusInReview  Status = "IN_REVIEW"
	StatusContacted Status = "CONTACTED"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
)

// AllStatuses lists every lead status
var AllStatuses = []Status{StatusNew, StatusInReview, StatusContacted, StatusClosed, StatusCancelled}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TargetType is what a lead is addressed to
type TargetType string

// Target types
const (
	TargetAide     TargetType = "AIDE"
	TargetProvider TargetType = "PROVIDER"
)

// MaxTextLength bounds the message and operator notes
const MaxTextLength = 5000

// Lead is an inquiry from a family
type Lead struct {
	ID                   string     `validate:"required,uuid4"`
	FamilyID             string     `validate:"required,uuid4"`
	TargetType           TargetType `validate:"required,oneof=AIDE PROVIDER"`
	TargetID             string     `validate:"required,uuid4"`
	Status               Status     `validate:"required,oneof=NEW IN_REVIEW CONTACTED CLOSED CANCELLED"`
	Message              string     `validate:"max=5000"`
	PreferredStartDate   *time.Time
	ExpectedHoursPerWeek *int    `validate:"omitempty,gte=0,lte=168"`
	Location             string  `validate:"max=500"`
	OperatorNotes        string  `validate:"max=5000"`
	AssignedOperatorID   *string `validate:"omitempty,uuid4"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

// Validate for validating Lead struct
func (l *Lead) Validate() error {
	return validators.ValidateStruct(l)
}

// Query filters the operator lead listing
type Query struct {
	Statuses   []Status
	TargetType TargetType `validate:"omitempty,oneof=AIDE PROVIDER"`
	AssignedTo string     `validate:"omitempty,uuid4"`
	Page       int        `validate:"gte=1"`
	Limit      int        `validate:"gte=1,lte=100"`
	SortBy     string     `validate:"oneof=createdAt updatedAt status"`
	SortOrder  string     `validate:"oneof=asc desc"`
}

// Query defaults
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// NewQuery returns a query with default paging and ordering
func NewQuery() *Query {
	return &Query{Page: DefaultPage, Limit: DefaultLimit, SortBy: "createdAt", SortOrder: "desc"}
}

// Validate checks paging, sorting and every status filter
func (q *Query) Validate() error {
	if err := validators.ValidateStruct(q); err != nil {
		return err
	}
	for _, status := range q.Statuses {
		if !status.Valid() {
			return fmt.Errorf("%w: unknown lead status %q", apperr.ErrValidation, status)
		}
	}
	return nil
}

// Offset of the first row of the page
func (q *Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Page is a page of leads
type Page struct {
	Leads      []*Lead
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage computes the page count for total rows
func NewPage(leads []*Lead, total int64, query *Query) *Page {
	pages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	return &Page{Leads: leads, Total: total, Page: query.Page, Limit: query.Limit, TotalPages: pages}
}

// CreateInput is what a family submits
type CreateInput struct {
	TargetType           TargetType `validate:"required,oneof=AIDE PROVIDER"`
	TargetID             string     `validate:"required,uuid4"`
	Message              string     `validate:"max=5000"`
	PreferredStartDate   *time.Time
	ExpectedHoursPerWeek *int   `validate:"omitempty,gte=0,lte=168"`
	Location             string `validate:"max=500"`
}

// Validate for validating CreateInput struct
func (in *CreateInput) Validate() error {
	return validators.ValidateStruct(in)
}

// Update carries the fields an operator may change; nil means unchanged.
// An empty AssignedOperatorID clears the assignment.
type Update struct {
	Status             *Status `validate:"omitempty,oneof=NEW IN_REVIEW CONTACTED CLOSED CANCELLED"`
	OperatorNotes      *string `validate:"omitempty,max=5000"`
	AssignedOperatorID *string `validate:"omitempty,len=0|uuid4"`
}

// Validate for validating Update struct
func (u *Update) Validate() error {
	return validators.ValidateStruct(u)
}

// Empty reports whether the update changes nothing
func (u *Update) Empty() bool {
	return u.Status == nil && u.OperatorNotes == nil && u.AssignedOperatorID == nil
}
