package persistence

import (
	"context"
	"errors"

	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormFamilyRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormFamilyRepository creates a new GORM-based FamilyRepository implementation
func NewGormFamilyRepository(db *gorm.DB, logger logger.Logger) (families.FamilyRepository, error) {
	return &gormFamilyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormFamilyRepository) Create(ctx context.Context, family *families.Family, owner *families.Member) error {
	if err := family.Validate(); err != nil {
		return validationError(err)
	}
	if err := owner.Validate(); err != nil {
		return validationError(err)
	}

	familyModel := &models.FamilyModel{}
	familyModel.FromDomain(family)
	ownerModel := &models.FamilyMemberModel{}
	ownerModel.FromDomain(owner)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(familyModel).Error; err != nil {
			return err
		}
		return tx.Create(ownerModel).Error
	})
	if err != nil {
		return wrapError(err, "failed to create family")
	}

	r.logger.Info("Created family", "family_id", family.ID, "owner_id", owner.UserID)
	return nil
}

func (r *gormFamilyRepository) GetByID(ctx context.Context, familyID string) (*families.Family, error) {
	var model models.FamilyModel
	if err := r.db.WithContext(ctx).Where("id = ?", familyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("family", familyID)
		}
		return nil, wrapError(err, "failed to fetch family")
	}
	return model.ToDomain(), nil
}

func (r *gormFamilyRepository) ListByUser(ctx context.Context, userID string) ([]*families.Family, error) {
	var modelList []*models.FamilyModel
	err := r.db.WithContext(ctx).
		Joins("JOIN family_members ON family_members.family_id = families.id").
		Where("family_members.user_id = ?", userID).
		Order("families.created_at asc").
		Find(&modelList).Error
	if err != nil {
		return nil, wrapError(err, "failed to fetch families")
	}

	domainList := make([]*families.Family, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormFamilyRepository) AddMember(ctx context.Context, member *families.Member) error {
	if err := member.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.FamilyMemberModel{}
	model.FromDomain(member)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to add family member")
	}

	r.logger.Info("Added family member", "family_id", member.FamilyID, "user_id", member.UserID, "role", member.Role)
	return nil
}

func (r *gormFamilyRepository) GetMember(ctx context.Context, familyID, userID string) (*families.Member, error) {
	var model models.FamilyMemberModel
	err := r.db.WithContext(ctx).
		Where("family_id = ? AND user_id = ?", familyID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("family member", userID)
		}
		return nil, wrapError(err, "failed to fetch family member")
	}
	return model.ToDomain(), nil
}

func (r *gormFamilyRepository) ListMembers(ctx context.Context, familyID string) ([]*families.Member, error) {
	var modelList []*models.FamilyMemberModel
	if err := r.db.WithContext(ctx).Where("family_id = ?", familyID).
		Order("joined_at asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch family members")
	}

	domainList := make([]*families.Member, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormFamilyRepository) CreateActivity(ctx context.Context, activity *families.Activity) error {
	if err := activity.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.FamilyActivityModel{}
	model.FromDomain(activity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to record family activity")
	}
	return nil
}

func (r *gormFamilyRepository) ListActivity(ctx context.Context, familyID string, limit int) ([]*families.Activity, error) {
	dbQuery := r.db.WithContext(ctx).Where("family_id = ?", familyID).Order("created_at desc")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	var modelList []*models.FamilyActivityModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch family activity")
	}

	domainList := make([]*families.Activity, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
