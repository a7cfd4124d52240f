package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

var documentSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"fileSize":  "file_size",
}

type gormDocumentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormDocumentRepository creates a new GORM-based DocumentRepository implementation
func NewGormDocumentRepository(db *gorm.DB, logger logger.Logger) (documents.DocumentRepository, error) {
	return &gormDocumentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormDocumentRepository) Create(ctx context.Context, document *documents.FamilyDocument) error {
	if err := document.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.FamilyDocumentModel{}
	model.FromDomain(document)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create document")
	}

	r.logger.Info("Created document", "document_id", document.ID, "family_id", document.FamilyID, "size", document.FileSize)
	return nil
}

func (r *gormDocumentRepository) GetByID(ctx context.Context, documentID string) (*documents.FamilyDocument, error) {
	var model models.FamilyDocumentModel
	if err := r.db.WithContext(ctx).Where("id = ?", documentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("document", documentID)
		}
		return nil, wrapError(err, "failed to fetch document")
	}
	return model.ToDomain(), nil
}

func (r *gormDocumentRepository) List(ctx context.Context, query *documents.Query) ([]*documents.FamilyDocument, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, validationError(err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.FamilyDocumentModel{}).
		Where("family_id = ?", query.FamilyID)
	if len(query.Types) > 0 {
		dbQuery = dbQuery.Where("type IN ?", query.Types)
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		dbQuery = dbQuery.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if len(query.Tags) > 0 {
		// tags are a JSON array; a document matches when it carries any of them
		tagFilter := r.db
		for i, tag := range query.Tags {
			pattern := "%\"" + tag + "\"%"
			if i == 0 {
				tagFilter = tagFilter.Where("tags LIKE ?", pattern)
			} else {
				tagFilter = tagFilter.Or("tags LIKE ?", pattern)
			}
		}
		dbQuery = dbQuery.Where(tagFilter)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, wrapError(err, "failed to count documents")
	}

	var modelList []*models.FamilyDocumentModel
	err := dbQuery.
		Order(fmt.Sprintf("%s %s", documentSortColumns[query.SortBy], query.SortOrder)).
		Limit(query.Limit).
		Offset(query.Offset()).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, wrapError(err, "failed to fetch documents")
	}

	domainList := make([]*documents.FamilyDocument, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, total, nil
}

func (r *gormDocumentRepository) Update(ctx context.Context, document *documents.FamilyDocument) error {
	if err := document.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.FamilyDocumentModel{}
	model.FromDomain(document)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return wrapError(err, "failed to update document")
	}

	r.logger.Info("Updated document", "document_id", document.ID)
	return nil
}

func (r *gormDocumentRepository) Delete(ctx context.Context, documentID string) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", documentID).Delete(&models.DocumentCommentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", documentID).Delete(&models.FamilyDocumentModel{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return wrapError(err, "failed to delete document")
	}
	if affected == 0 {
		return notFound("document", documentID)
	}

	r.logger.Info("Deleted document", "document_id", documentID)
	return nil
}

func (r *gormDocumentRepository) CreateComment(ctx context.Context, comment *documents.Comment) error {
	if err := comment.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.DocumentCommentModel{}
	model.FromDomain(comment)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create comment")
	}
	return nil
}

func (r *gormDocumentRepository) ListComments(ctx context.Context, documentID string) ([]*documents.Comment, error) {
	var modelList []*models.DocumentCommentModel
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).
		Order("created_at asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch comments")
	}

	domainList := make([]*documents.Comment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
