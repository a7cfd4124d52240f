package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/profyt7/carelinkai-sub005/internal/domain/leads"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

// leadSortColumns maps API sort keys to columns
var leadSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"status":    "status",
}

type gormLeadRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormLeadRepository creates a new GORM-based LeadRepository implementation
func NewGormLeadRepository(db *gorm.DB, logger logger.Logger) (leads.LeadRepository, error) {
	return &gormLeadRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormLeadRepository) Create(ctx context.Context, lead *leads.Lead) error {
	if err := lead.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.LeadModel{}
	model.FromDomain(lead)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create lead")
	}

	r.logger.Info("Created lead", "lead_id", lead.ID, "family_id", lead.FamilyID, "target_type", lead.TargetType)
	return nil
}

func (r *gormLeadRepository) GetByID(ctx context.Context, leadID string) (*leads.Lead, error) {
	var model models.LeadModel
	if err := r.db.WithContext(ctx).Where("id = ?", leadID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("lead", leadID)
		}
		return nil, wrapError(err, "failed to fetch lead")
	}
	return model.ToDomain(), nil
}

func (r *gormLeadRepository) ListByFamily(ctx context.Context, familyID string) ([]*leads.Lead, error) {
	var modelList []*models.LeadModel
	if err := r.db.WithContext(ctx).Where("family_id = ?", familyID).
		Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch leads")
	}
	return leadsToDomain(modelList), nil
}

func (r *gormLeadRepository) List(ctx context.Context, query *leads.Query) ([]*leads.Lead, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, validationError(err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.LeadModel{})
	if len(query.Statuses) > 0 {
		statuses := make([]string, len(query.Statuses))
		for i, status := range query.Statuses {
			statuses[i] = string(status)
		}
		dbQuery = dbQuery.Where("status IN ?", statuses)
	}
	if query.TargetType != "" {
		dbQuery = dbQuery.Where("target_type = ?", string(query.TargetType))
	}
	if query.AssignedTo != "" {
		dbQuery = dbQuery.Where("assigned_operator_id = ?", query.AssignedTo)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, wrapError(err, "failed to count leads")
	}

	var modelList []*models.LeadModel
	err := dbQuery.
		Order(fmt.Sprintf("%s %s", leadSortColumns[query.SortBy], query.SortOrder)).
		Limit(query.Limit).
		Offset(query.Offset()).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, wrapError(err, "failed to fetch leads")
	}
	return leadsToDomain(modelList), total, nil
}

func (r *gormLeadRepository) Update(ctx context.Context, lead *leads.Lead) error {
	if err := lead.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.LeadModel{}
	model.FromDomain(lead)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return wrapError(err, "failed to update lead")
	}

	r.logger.Info("Updated lead", "lead_id", lead.ID, "status", lead.Status)
	return nil
}

func (r *gormLeadRepository) SoftDelete(ctx context.Context, leadID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", leadID).Delete(&models.LeadModel{})
	if result.Error != nil {
		return wrapError(result.Error, "failed to delete lead")
	}
	if result.RowsAffected == 0 {
		return notFound("lead", leadID)
	}

	r.logger.Info("Deleted lead", "lead_id", leadID)
	return nil
}

func (r *gormLeadRepository) CountByStatus(ctx context.Context) (map[leads.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.LeadModel{}).
		Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, wrapError(err, "failed to count leads by status")
	}

	counts := make(map[leads.Status]int64, len(leads.AllStatuses))
	for _, status := range leads.AllStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[leads.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func leadsToDomain(modelList []*models.LeadModel) []*leads.Lead {
	domainList := make([]*leads.Lead, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
