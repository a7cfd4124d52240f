package persistence

import (
	"context"
	"errors"

	"github.com/profyt7/carelinkai-sub005/internal/domain/assessments"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAssessmentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAssessmentRepository creates a new GORM-based AssessmentRepository implementation
func NewGormAssessmentRepository(db *gorm.DB, logger logger.Logger) (assessments.AssessmentRepository, error) {
	return &gormAssessmentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAssessmentRepository) Create(ctx context.Context, assessment *assessments.Assessment) error {
	if err := assessment.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.AssessmentModel{}
	model.FromDomain(assessment)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create assessment")
	}

	r.logger.Info("Created assessment", "assessment_id", assessment.ID, "resident_id", assessment.ResidentID)
	return nil
}

func (r *gormAssessmentRepository) GetByID(ctx context.Context, assessmentID string) (*assessments.Assessment, error) {
	var model models.AssessmentModel
	if err := r.db.WithContext(ctx).Where("id = ?", assessmentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("assessment", assessmentID)
		}
		return nil, wrapError(err, "failed to fetch assessment")
	}
	return model.ToDomain(), nil
}

func (r *gormAssessmentRepository) ListByResident(ctx context.Context, residentID string) ([]*assessments.Assessment, error) {
	var modelList []*models.AssessmentModel
	if err := r.db.WithContext(ctx).Where("resident_id = ?", residentID).
		Order("assessed_at desc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch assessments")
	}

	domainList := make([]*assessments.Assessment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
