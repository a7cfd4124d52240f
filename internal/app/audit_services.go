package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

// AnonymousUserID is the subject of entries written before a user is known
const AnonymousUserID = "anonymous"

// auditService implements audit.AuditService on top of the audit repository
type auditService struct {
	repo     audit.AuditRepository
	userRepo users.UserRepository
	enabled  bool
	logger   logger.Logger
	now      func() time.Time
}

// NewAuditService creates a new instance of AuditService
func NewAuditService(repo audit.AuditRepository, userRepo users.UserRepository, settings *config.AuditSettings, logger logger.Logger) (audit.AuditService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &auditService{
		repo:     repo,
		userRepo: userRepo,
		enabled:  settings.Enabled,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Record writes entry with the request metadata found in ctx. Failures are logged, never returned.
func (s *auditService) Record(ctx context.Context, entry *audit.Entry) {
	if !s.enabled || entry == nil {
		return
	}

	meta := audit.RequestMetaFrom(ctx)
	log := &audit.Log{
		ID:           uuid.NewString(),
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		Description:  entry.Description,
		Metadata:     audit.SanitizeMetadata(entry.Metadata),
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		CreatedAt:    s.now(),
	}
	if log.UserID == "" {
		log.UserID = AnonymousUserID
	}
	if entry.ActionedBy != "" {
		actionedBy := entry.ActionedBy
		log.ActionedBy = &actionedBy
	}
	if entry.ResourceID != "" {
		resourceID := entry.ResourceID
		log.ResourceID = &resourceID
	}
	if log.Description == "" {
		log.Description = fmt.Sprintf("%s %s", entry.Action, entry.ResourceType)
	}

	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Error("Failed to write audit log",
			"action", entry.Action, "resource_type", entry.ResourceType, "error", err)
	}
}

func (s *auditService) RecordPHIAccess(ctx context.Context, userID, resourceType, resourceID, purpose string, granted bool) {
	action := audit.ActionRead
	verb := "Accessed"
	if !granted {
		action = audit.ActionAccessDenied
		verb = "Attempted to access"
	}

	s.Record(ctx, &audit.Entry{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Description:  fmt.Sprintf("%s PHI: %s for purpose: %s", verb, resourceType, purpose),
		Metadata: map[string]interface{}{
			"purpose":       purpose,
			"phi":           true,
			"accessGranted": granted,
		},
	})
}

func (s *auditService) RecordDataExport(ctx context.Context, userID, resourceType, format string, filters map[string]interface{}, count int) string {
	exportID := uuid.NewString()
	s.Record(ctx, &audit.Entry{
		UserID:       userID,
		Action:       audit.ActionExport,
		ResourceType: resourceType,
		Description:  fmt.Sprintf("Exported %d %s records in %s format", count, resourceType, format),
		Metadata: map[string]interface{}{
			"exportFormat": format,
			"filters":      filters,
			"recordCount":  count,
			"exportId":     exportID,
			"timestamp":    s.now().Format(time.RFC3339),
		},
	})
	return exportID
}

func (s *auditService) Query(ctx context.Context, query *audit.Query) (*audit.QueryResult, error) {
	if query == nil {
		query = audit.NewQuery()
	}
	if query.Limit == 0 {
		query.Limit = audit.DefaultQueryLimit
	}
	if query.SortOrder == "" {
		query.SortOrder = "desc"
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	logs, total, err := s.repo.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	return audit.NewQueryResult(logs, total, query), nil
}

func (s *auditService) ResourceTrail(ctx context.Context, resourceType, resourceID string, limit int) ([]*audit.Log, error) {
	query := audit.NewQuery()
	query.ResourceTypes = []string{resourceType}
	query.ResourceID = resourceID
	query.Limit = trailLimit(limit)

	result, err := s.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return result.Logs, nil
}

func (s *auditService) UserTrail(ctx context.Context, userID string, limit int) ([]*audit.Log, error) {
	query := audit.NewQuery()
	query.UserID = userID
	query.Limit = trailLimit(limit)

	result, err := s.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return result.Logs, nil
}

func trailLimit(limit int) int {
	if limit <= 0 {
		return audit.DefaultTrailLimit
	}
	if limit > audit.MaxQueryLimit {
		return audit.MaxQueryLimit
	}
	return limit
}

func (s *auditService) SecurityEvents(ctx context.Context, limit int) ([]*audit.Log, error) {
	if limit <= 0 {
		limit = audit.DefaultQueryLimit
	}
	if limit > audit.MaxQueryLimit {
		limit = audit.MaxQueryLimit
	}
	return s.repo.SecurityEvents(ctx, limit)
}

func (s *auditService) ComplianceReport(ctx context.Context, start, end time.Time) (*audit.ComplianceReport, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: report end must be after start", apperr.ErrValidation)
	}

	actions, err := s.repo.CountBy(ctx, "action", start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit actions: %w", err)
	}
	resources, err := s.repo.CountBy(ctx, "resource_type", start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit resource types: %w", err)
	}
	byUser, err := s.repo.CountBy(ctx, "user_id", start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit users: %w", err)
	}

	report := audit.NewComplianceReport(start, end, actions, resources, byUser, s.now())
	for i := range report.TopUsers {
		user, err := s.userRepo.GetByID(ctx, report.TopUsers[i].UserID)
		if err != nil {
			// anonymous and deleted subjects keep the bare ID
			continue
		}
		report.TopUsers[i].Email = user.Email
		report.TopUsers[i].FirstName = user.FirstName
		report.TopUsers[i].LastName = user.LastName
		report.TopUsers[i].Role = user.Role
	}
	return report, nil
}

func (s *auditService) Purge(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, fmt.Errorf("%w: retention days must be positive", apperr.ErrValidation)
	}

	cutoff := s.now().AddDate(0, 0, -retentionDays)
	removed, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge audit logs: %w", err)
	}
	return removed, nil
}

func (s *auditService) HasAccessedBefore(ctx context.Context, userID, resourceType, resourceID string) (bool, error) {
	return s.repo.Exists(ctx, userID, resourceType, resourceID, audit.ActionRead)
}

func (s *auditService) DetectUnusualAccess(ctx context.Context, lookbackDays int) ([]audit.UnusualAccess, error) {
	if lookbackDays <= 0 {
		lookbackDays = audit.DefaultLookbackDays
	}

	counts, err := s.repo.AccessCounts(ctx, s.now().AddDate(0, 0, -lookbackDays), audit.AccessActions)
	if err != nil {
		return nil, fmt.Errorf("failed to count resource access: %w", err)
	}
	return audit.FlagUnusualAccess(counts), nil
}

var csvHeader = []string{
	"id", "created_at", "user_id", "actioned_by", "action", "resource_type",
	"resource_id", "description", "ip_address", "user_agent",
}

func (s *auditService) ExportCSV(ctx context.Context, caller users.Principal, query *audit.Query, w io.Writer) (int, error) {
	if query == nil {
		query = audit.NewQuery()
	}
	query.Limit = audit.MaxQueryLimit
	query.Offset = 0

	result, err := s.Query(ctx, query)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, log := range result.Logs {
		record := []string{
			log.ID,
			log.CreatedAt.Format(time.RFC3339),
			log.UserID,
			derefString(log.ActionedBy),
			string(log.Action),
			log.ResourceType,
			derefString(log.ResourceID),
			log.Description,
			log.IPAddress,
			log.UserAgent,
		}
		if err := writer.Write(record); err != nil {
			return 0, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush CSV: %w", err)
	}

	filters := map[string]interface{}{
		"userId":        query.UserID,
		"actions":       query.Actions,
		"resourceTypes": query.ResourceTypes,
		"resourceId":    query.ResourceID,
	}
	if query.From != nil {
		filters["from"] = query.From.Format(time.RFC3339)
	}
	if query.To != nil {
		filters["to"] = query.To.Format(time.RFC3339)
	}
	exportID := s.RecordDataExport(ctx, caller.ID, audit.ResourceAuditLog, "CSV", filters, len(result.Logs))

	s.logger.Info("Exported audit logs", "export_id", exportID, "count", len(result.Logs))
	return len(result.Logs), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
