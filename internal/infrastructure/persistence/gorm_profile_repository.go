package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/profyt7/carelinkai-sub005/internal/domain/profiles"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormProfileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProfileRepository creates a new GORM-based ProfileRepository implementation
func NewGormProfileRepository(db *gorm.DB, logger logger.Logger) (profiles.ProfileRepository, error) {
	return &gormProfileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProfileRepository) SaveCaregiver(ctx context.Context, profile *profiles.CaregiverProfile) error {
	if err := profile.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.CaregiverProfileModel{}
	model.FromDomain(profile)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return wrapError(err, "failed to save caregiver profile")
	}
	return nil
}

func (r *gormProfileRepository) SaveProvider(ctx context.Context, profile *profiles.ProviderProfile) error {
	if err := profile.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.ProviderProfileModel{}
	model.FromDomain(profile)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return wrapError(err, "failed to save provider profile")
	}
	return nil
}

func (r *gormProfileRepository) GetCaregiver(ctx context.Context, userID string) (*profiles.CaregiverProfile, error) {
	var model models.CaregiverProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("caregiver profile", userID)
		}
		return nil, wrapError(err, "failed to fetch caregiver profile")
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) GetProvider(ctx context.Context, userID string) (*profiles.ProviderProfile, error) {
	var model models.ProviderProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("provider profile", userID)
		}
		return nil, wrapError(err, "failed to fetch provider profile")
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) SearchCaregivers(ctx context.Context, query *profiles.CaregiverQuery) ([]*profiles.CaregiverProfile, error) {
	if err := query.Validate(); err != nil {
		return nil, validationError(err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.CaregiverProfileModel{})
	if query.Specialty != "" {
		// specialties are a JSON array of strings
		dbQuery = dbQuery.Where("LOWER(specialties) LIKE ?", "%\""+strings.ToLower(query.Specialty)+"\"%")
	}
	if query.MaxRate != nil {
		dbQuery = dbQuery.Where("hourly_rate <= ?", *query.MaxRate)
	}
	if query.AvailableOnly {
		dbQuery = dbQuery.Where("available = ?", true)
	}
	dbQuery = paginate(dbQuery, query.Limit, query.Offset)

	var modelList []*models.CaregiverProfileModel
	if err := dbQuery.Order("updated_at desc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to search caregivers")
	}

	domainList := make([]*profiles.CaregiverProfile, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormProfileRepository) SearchProviders(ctx context.Context, query *profiles.ProviderQuery) ([]*profiles.ProviderProfile, error) {
	if err := query.Validate(); err != nil {
		return nil, validationError(err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.ProviderProfileModel{})
	if query.ServiceType != "" {
		dbQuery = dbQuery.Where("LOWER(service_types) LIKE ?", "%\""+strings.ToLower(query.ServiceType)+"\"%")
	}
	if query.VerifiedOnly {
		dbQuery = dbQuery.Where("verified = ?", true)
	}
	dbQuery = paginate(dbQuery, query.Limit, query.Offset)

	var modelList []*models.ProviderProfileModel
	if err := dbQuery.Order("business_name asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to search providers")
	}

	domainList := make([]*profiles.ProviderProfile, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

// paginate applies limit and offset when set
func paginate(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	return db
}
