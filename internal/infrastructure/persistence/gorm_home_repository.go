package persistence

import (
	"context"
	"errors"

	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormHomeRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormHomeRepository creates a new GORM-based HomeRepository implementation
func NewGormHomeRepository(db *gorm.DB, logger logger.Logger) (homes.HomeRepository, error) {
	return &gormHomeRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormHomeRepository) CreateHome(ctx context.Context, home *homes.Home) error {
	if err := home.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.HomeModel{}
	model.FromDomain(home)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create home")
	}

	r.logger.Info("Created home", "home_id", home.ID, "operator_id", home.OperatorID)
	return nil
}

func (r *gormHomeRepository) GetHomeByID(ctx context.Context, homeID string) (*homes.Home, error) {
	var model models.HomeModel
	if err := r.db.WithContext(ctx).Where("id = ?", homeID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("home", homeID)
		}
		return nil, wrapError(err, "failed to fetch home")
	}
	return model.ToDomain(), nil
}

func (r *gormHomeRepository) ListHomes(ctx context.Context, operatorID string) ([]*homes.Home, error) {
	dbQuery := r.db.WithContext(ctx).Model(&models.HomeModel{})
	if operatorID != "" {
		dbQuery = dbQuery.Where("operator_id = ?", operatorID)
	}

	var modelList []*models.HomeModel
	if err := dbQuery.Order("name asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch homes")
	}

	domainList := make([]*homes.Home, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormHomeRepository) ListHomeIDsByOperator(ctx context.Context, operatorID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&models.HomeModel{}).
		Where("operator_id = ?", operatorID).Pluck("id", &ids).Error; err != nil {
		return nil, wrapError(err, "failed to fetch home ids")
	}
	return ids, nil
}

func (r *gormHomeRepository) CreateResident(ctx context.Context, resident *homes.Resident) error {
	if err := resident.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.ResidentModel{}
	model.FromDomain(resident)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create resident")
	}

	r.logger.Info("Created resident", "resident_id", resident.ID, "home_id", resident.HomeID)
	return nil
}

func (r *gormHomeRepository) GetResidentByID(ctx context.Context, residentID string) (*homes.Resident, error) {
	var model models.ResidentModel
	if err := r.db.WithContext(ctx).Where("id = ?", residentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("resident", residentID)
		}
		return nil, wrapError(err, "failed to fetch resident")
	}
	return model.ToDomain(), nil
}

func (r *gormHomeRepository) ListResidents(ctx context.Context, homeID string) ([]*homes.Resident, error) {
	var modelList []*models.ResidentModel
	if err := r.db.WithContext(ctx).Where("home_id = ?", homeID).
		Order("last_name asc, first_name asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch residents")
	}

	domainList := make([]*homes.Resident, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
