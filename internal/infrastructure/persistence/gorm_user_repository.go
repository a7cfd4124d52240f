package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create user")
	}

	r.logger.Info("Created user", "user_id", user.ID, "role", user.Role)
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, userID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user", userID)
		}
		return nil, wrapError(err, "failed to fetch user")
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", users.NormalizeEmail(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user", email)
		}
		return nil, wrapError(err, "failed to fetch user")
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) List(ctx context.Context, query *users.UserQuery) ([]*users.User, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, validationError(err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.UserModel{})
	if query.Role != "" {
		dbQuery = dbQuery.Where("role = ?", string(query.Role))
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", string(query.Status))
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		dbQuery = dbQuery.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, wrapError(err, "failed to count users")
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	var modelList []*models.UserModel
	if err := dbQuery.Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, 0, wrapError(err, "failed to fetch users")
	}

	domainList := make([]*users.User, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, total, nil
}

func (r *gormUserRepository) Update(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return wrapError(err, "failed to update user")
	}

	r.logger.Info("Updated user", "user_id", user.ID)
	return nil
}

func (r *gormUserRepository) ConsumeBackupCode(ctx context.Context, userID string, current, remaining []string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ? AND backup_code_hashes = ?", userID, models.StringList(current)).
		Updates(map[string]interface{}{
			"backup_code_hashes": models.StringList(remaining),
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return false, wrapError(result.Error, "failed to consume backup code")
	}
	return result.RowsAffected > 0, nil
}

func (r *gormUserRepository) CountByRole(ctx context.Context) (map[users.Role]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Select("role, COUNT(*) AS count").Group("role").Scan(&rows).Error; err != nil {
		return nil, wrapError(err, "failed to count users by role")
	}

	counts := make(map[users.Role]int64, len(rows))
	for _, row := range rows {
		counts[users.Role(row.Role)] = row.Count
	}
	return counts, nil
}
