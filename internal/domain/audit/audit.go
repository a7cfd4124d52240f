// Package audit models the compliance audit trail: who did what to which
// resource, from where, with sensitive metadata redacted before it is stored.
package audit

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// Action recorded in the trail
type Action string

// Audit actions
const (
	ActionCreate           Action = "CREATE"
	ActionRead             Action = "READ"
	ActionUpdate           Action = "UPDATE"
	ActionDelete           Action = "DELETE"
	ActionLogin            Action = "LOGIN"
	ActionLogout           Action = "LOGOUT"
	ActionAccessDenied     Action = "ACCESS_DENIED"
	ActionAccessGranted    Action = "ACCESS_GRANTED"
	ActionExport           Action = "EXPORT"
	ActionDocumentUploaded Action = "DOCUMENT_UPLOADED"
	ActionError            Action = "ERROR"
	ActionOther            Action = "OTHER"
)

// Resource types written to the trail
const (
	ResourceResident          = "Resident"
	ResourceHome              = "AssistedLivingHome"
	ResourceCaregiver         = "Caregiver"
	ResourceDocument          = "Document"
	ResourcePayment           = "Payment"
	ResourceUser              = "User"
	ResourceLead              = "LEAD"
	ResourceShift             = "Shift"
	ResourceAppointment       = "Appointment"
	ResourceAssessment        = "Assessment"
	ResourceCompliance        = "ComplianceItem"
	ResourceFamily            = "Family"
	ResourceAuditLog          = "AuditLog"
	ResourceEmailVerification = "EMAIL_VERIFICATION"
	ResourcePasswordReset     = "PASSWORD_RESET"
)

// Log is one stored audit entry
type Log struct {
	ID           string `validate:"required,uuid4"`
	UserID       string `validate:"required"`
	ActionedBy   *string
	Action       Action `validate:"required,oneof=CREATE READ UPDATE DELETE LOGIN LOGOUT ACCESS_DENIED ACCESS_GRANTED EXPORT DOCUMENT_UPLOADED ERROR OTHER"`
	ResourceType string `validate:"required,max=100"`
	ResourceID   *string
	Description  string `validate:"required,max=2000"`
	Metadata     map[string]interface{}
	IPAddress    string `validate:"max=100"`
	UserAgent    string `validate:"max=500"`
	CreatedAt    time.Time
}

// Validate for validating Log struct
func (l *Log) Validate() error {
	return validators.ValidateStruct(l)
}

// Entry is what callers hand to the recorder. IP and user agent are taken from the context.
type Entry struct {
	UserID       string
	ActionedBy   string
	Action       Action
	ResourceType string
	ResourceID   string
	Description  string
	Metadata     map[string]interface{}
}

// Default limits of the read side
const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 1000
	DefaultTrailLimit = 50
	TopUsersInReport  = 10
)

// Query filters the audit trail
type Query struct {
	UserID        string
	ActionedBy    string
	Actions       []Action
	ResourceTypes []string
	ResourceID    string
	From          *time.Time
	To            *time.Time
	IPAddress     string
	Limit         int    `validate:"gte=1,lte=1000"`
	Offset        int    `validate:"gte=0"`
	SortOrder     string `validate:"oneof=asc desc"`
}

// NewQuery returns a query with the default limit, newest first
func NewQuery() *Query {
	return &Query{Limit: DefaultQueryLimit, SortOrder: "desc"}
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.ValidateStruct(q)
}

// QueryResult is a page of the trail
type QueryResult struct {
	Logs       []*Log
	Total      int64
	Page       int
	TotalPages int
	HasMore    bool
}

// NewQueryResult derives paging figures from the query window and total
func NewQueryResult(logs []*Log, total int64, q *Query) *QueryResult {
	limit := int64(q.Limit)
	return &QueryResult{
		Logs:       logs,
		Total:      total,
		Page:       q.Offset/q.Limit + 1,
		TotalPages: int((total + limit - 1) / limit),
		HasMore:    int64(q.Offset)+limit < total,
	}
}
