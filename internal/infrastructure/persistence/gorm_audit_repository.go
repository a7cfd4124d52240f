package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

// auditGroupColumns are the columns CountBy may group on
var auditGroupColumns = map[string]bool{
	"action":        true,
	"resource_type": true,
	"user_id":       true,
}

type gormAuditRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAuditRepository creates a new GORM-based AuditRepository implementation
func NewGormAuditRepository(db *gorm.DB, logger logger.Logger) (audit.AuditRepository, error) {
	return &gormAuditRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAuditRepository) Create(ctx context.Context, log *audit.Log) error {
	if err := log.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.AuditLogModel{}
	model.FromDomain(log)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create audit log")
	}
	return nil
}

func (r *gormAuditRepository) Query(ctx context.Context, query *audit.Query) ([]*audit.Log, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, validationError(err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.AuditLogModel{})
	if query.UserID != "" {
		dbQuery = dbQuery.Where("user_id = ?", query.UserID)
	}
	if query.ActionedBy != "" {
		dbQuery = dbQuery.Where("actioned_by = ?", query.ActionedBy)
	}
	if len(query.Actions) > 0 {
		dbQuery = dbQuery.Where("action IN ?", query.Actions)
	}
	if len(query.ResourceTypes) > 0 {
		dbQuery = dbQuery.Where("resource_type IN ?", query.ResourceTypes)
	}
	if query.ResourceID != "" {
		dbQuery = dbQuery.Where("resource_id = ?", query.ResourceID)
	}
	if query.From != nil {
		dbQuery = dbQuery.Where("created_at >= ?", *query.From)
	}
	if query.To != nil {
		dbQuery = dbQuery.Where("created_at <= ?", *query.To)
	}
	if query.IPAddress != "" {
		dbQuery = dbQuery.Where("ip_address = ?", query.IPAddress)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, wrapError(err, "failed to count audit logs")
	}

	var modelList []*models.AuditLogModel
	err := dbQuery.
		Order("created_at " + query.SortOrder).
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, wrapError(err, "failed to fetch audit logs")
	}
	return auditToDomain(modelList), total, nil
}

func (r *gormAuditRepository) SecurityEvents(ctx context.Context, limit int) ([]*audit.Log, error) {
	filter := r.db.Where("action IN ?", audit.SecurityActions)
	for _, keyword := range audit.SecurityKeywords {
		filter = filter.Or("LOWER(description) LIKE ?", "%"+keyword+"%")
	}

	dbQuery := r.db.WithContext(ctx).Where(filter).Order("created_at desc")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	var modelList []*models.AuditLogModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch security events")
	}
	return auditToDomain(modelList), nil
}

func (r *gormAuditRepository) CountBy(ctx context.Context, column string, from, to time.Time) (map[string]int64, error) {
	if !auditGroupColumns[column] {
		return nil, fmt.Errorf("unsupported audit group column %q", column)
	}

	var rows []struct {
		GroupKey string
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&models.AuditLogModel{}).
		Select(column+" AS group_key, COUNT(*) AS count").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapError(err, "failed to count audit logs by %s", column)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupKey] = row.Count
	}
	return counts, nil
}

func (r *gormAuditRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.AuditLogModel{})
	if result.Error != nil {
		return 0, wrapError(result.Error, "failed to purge audit logs")
	}

	r.logger.Info("Purged audit logs", "cutoff", cutoff.Format(time.RFC3339), "deleted", result.RowsAffected)
	return result.RowsAffected, nil
}

func (r *gormAuditRepository) Exists(ctx context.Context, userID, resourceType, resourceID string, action audit.Action) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AuditLogModel{}).
		Where("user_id = ? AND resource_type = ? AND resource_id = ? AND action = ?",
			userID, resourceType, resourceID, string(action)).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, wrapError(err, "failed to check audit history")
	}
	return count > 0, nil
}

func (r *gormAuditRepository) AccessCounts(ctx context.Context, since time.Time, actions []audit.Action) ([]audit.AccessCount, error) {
	var rows []struct {
		UserID       string
		Email        *string
		Role         *string
		ResourceType string
		Count        int
	}
	err := r.db.WithContext(ctx).Model(&models.AuditLogModel{}).
		Select("audit_logs.user_id, users.email, users.role, audit_logs.resource_type, COUNT(*) AS count").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Where("audit_logs.created_at >= ? AND audit_logs.action IN ?", since, actions).
		Group("audit_logs.user_id, users.email, users.role, audit_logs.resource_type").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapError(err, "failed to count resource access")
	}

	counts := make([]audit.AccessCount, len(rows))
	for i, row := range rows {
		counts[i] = audit.AccessCount{
			UserID:       row.UserID,
			ResourceType: row.ResourceType,
			Count:        row.Count,
		}
		if row.Email != nil {
			counts[i].Email = *row.Email
		}
		if row.Role != nil {
			counts[i].Role = users.Role(strings.ToUpper(*row.Role))
		}
	}
	return counts, nil
}

func auditToDomain(modelList []*models.AuditLogModel) []*audit.Log {
	domainList := make([]*audit.Log, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
