package audit

import (
	"context"
	"io"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
)

// Recorder writes audit entries. Record never fails the caller: write errors are logged.
type Recorder interface {
	Record(ctx context.Context, entry *Entry)
	// RecordPHIAccess writes READ when granted, ACCESS_DENIED otherwise, flagged as PHI.
	RecordPHIAccess(ctx context.Context, userID, resourceType, resourceID, purpose string, granted bool)
	// RecordDataExport writes an EXPORT entry and returns its export ID.
	RecordDataExport(ctx context.Context, userID, resourceType, format string, filters map[string]interface{}, count int) string
}

// AuditService reads and maintains the trail.
type AuditService interface {
	Recorder

	Query(ctx context.Context, query *Query) (*QueryResult, error)
	ResourceTrail(ctx context.Context, resourceType, resourceID string, limit int) ([]*Log, error)
	UserTrail(ctx context.Context, userID string, limit int) ([]*Log, error)
	SecurityEvents(ctx context.Context, limit int) ([]*Log, error)
	ComplianceReport(ctx context.Context, start, end time.Time) (*ComplianceReport, error)
	// Purge deletes entries older than retentionDays and returns how many were removed.
	Purge(ctx context.Context, retentionDays int) (int64, error)
	HasAccessedBefore(ctx context.Context, userID, resourceType, resourceID string) (bool, error)
	DetectUnusualAccess(ctx context.Context, lookbackDays int) ([]UnusualAccess, error)
	// ExportCSV writes the matching entries as CSV and records the export.
	ExportCSV(ctx context.Context, caller users.Principal, query *Query, w io.Writer) (int, error)
}

// AuditRepository defines persistence for audit logs
type AuditRepository interface {
	Create(ctx context.Context, log *Log) error
	Query(ctx context.Context, query *Query) ([]*Log, int64, error)
	SecurityEvents(ctx context.Context, limit int) ([]*Log, error)
	// CountBy groups entries created in [from, to] by column: "action", "resource_type" or "user_id".
	CountBy(ctx context.Context, column string, from, to time.Time) (map[string]int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Exists(ctx context.Context, userID, resourceType, resourceID string, action Action) (bool, error)
	// AccessCounts groups entries since the cutoff with one of actions by user and resource type.
	AccessCounts(ctx context.Context, since time.Time, actions []Action) ([]AccessCount, error)
}
