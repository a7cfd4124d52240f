package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormComplianceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormComplianceRepository creates a new GORM-based ComplianceRepository implementation
func NewGormComplianceRepository(db *gorm.DB, logger logger.Logger) (compliance.ComplianceRepository, error) {
	return &gormComplianceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormComplianceRepository) Create(ctx context.Context, item *compliance.Item) error {
	if err := item.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.ComplianceItemModel{}
	model.FromDomain(item)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create compliance item")
	}

	r.logger.Info("Created compliance item", "item_id", item.ID, "owner_type", item.OwnerType, "owner_id", item.OwnerID)
	return nil
}

func (r *gormComplianceRepository) GetByID(ctx context.Context, itemID string) (*compliance.Item, error) {
	var model models.ComplianceItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("compliance item", itemID)
		}
		return nil, wrapError(err, "failed to fetch compliance item")
	}
	return model.ToDomain(), nil
}

// List applies query. A non-nil empty OwnerIDs matches nothing.
func (r *gormComplianceRepository) List(ctx context.Context, query *compliance.Query) ([]*compliance.Item, error) {
	if err := query.Validate(); err != nil {
		return nil, validationError(err)
	}
	if query.OwnerIDs != nil && len(query.OwnerIDs) == 0 {
		return []*compliance.Item{}, nil
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.ComplianceItemModel{})
	if query.OwnerType != "" {
		dbQuery = dbQuery.Where("owner_type = ?", string(query.OwnerType))
	}
	if query.OwnerIDs != nil {
		dbQuery = dbQuery.Where("owner_id IN ?", query.OwnerIDs)
	}
	if len(query.Statuses) > 0 {
		dbQuery = dbQuery.Where("status IN ?", query.Statuses)
	}
	if query.ExpiringBefore != nil {
		dbQuery = dbQuery.Where("expires_at IS NOT NULL AND expires_at < ?", *query.ExpiringBefore)
	}
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}

	var modelList []*models.ComplianceItemModel
	if err := dbQuery.Order("expires_at asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch compliance items")
	}
	return complianceToDomain(modelList), nil
}

func (r *gormComplianceRepository) Update(ctx context.Context, item *compliance.Item) error {
	if err := item.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.ComplianceItemModel{}
	model.FromDomain(item)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return wrapError(err, "failed to update compliance item")
	}
	return nil
}

func (r *gormComplianceRepository) ListExpiring(ctx context.Context, cutoff time.Time) ([]*compliance.Item, error) {
	var modelList []*models.ComplianceItemModel
	if err := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ? AND status <> ?", cutoff, string(compliance.StatusExpired)).
		Order("expires_at asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch expiring compliance items")
	}
	return complianceToDomain(modelList), nil
}

func complianceToDomain(modelList []*models.ComplianceItemModel) []*compliance.Item {
	domainList := make([]*compliance.Item, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
