package app

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

// documentService implements documents.DocumentService
type documentService struct {
	repo     documents.DocumentRepository
	storage  documents.DocumentStorage
	cipher   documents.ContentCipher
	families families.FamilyService
	recorder audit.Recorder
	limit    int64
	logger   logger.Logger
}

// NewDocumentService creates a new instance of DocumentService
func NewDocumentService(
	repo documents.DocumentRepository,
	storage documents.DocumentStorage,
	cipher documents.ContentCipher,
	familyService families.FamilyService,
	recorder audit.Recorder,
	settings *config.StorageSettings,
	logger logger.Logger,
) (documents.DocumentService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &documentService{
		repo:     repo,
		storage:  storage,
		cipher:   cipher,
		families: familyService,
		recorder: recorder,
		limit:    settings.UploadLimit(),
		logger:   logger,
	}, nil
}

// Upload validates the file, stores its (optionally encrypted) content under a
// generated key and records metadata, a family activity and an audit entry.
// Medical records are always encrypted.
func (s *documentService) Upload(ctx context.Context, caller users.Principal, input *documents.UploadInput, file *documents.Upload) (*documents.FamilyDocument, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	member, err := s.families.RequireMember(ctx, caller, input.FamilyID)
	if err != nil {
		return nil, err
	}
	if !member.Role.CanUpload() {
		return nil, fmt.Errorf("%w: %s members cannot upload documents", apperr.ErrForbidden, member.Role)
	}
	if file == nil || file.Content == nil {
		return nil, fmt.Errorf("%w: file is required", apperr.ErrValidation)
	}
	if err := documents.ValidateFile(file.Size, s.limit, file.ContentType); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(io.LimitReader(file.Content, s.limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := documents.ValidateFile(int64(len(content)), s.limit, file.ContentType); err != nil {
		return nil, err
	}

	plainSize := int64(len(content))
	encrypt := input.Encrypt || input.Type == documents.TypeMedicalRecord
	if encrypt {
		if content, err = s.cipher.Encrypt(content); err != nil {
			return nil, fmt.Errorf("failed to encrypt document: %w", err)
		}
	}

	now := time.Now().UTC()
	fileName := filepath.Base(strings.ReplaceAll(file.FileName, "\\", "/"))
	document := &documents.FamilyDocument{
		ID:          uuid.NewString(),
		FamilyID:    input.FamilyID,
		UploaderID:  caller.ID,
		Title:       sanitizeText(input.Title),
		Description: sanitizeText(input.Description),
		Type:        input.Type,
		FileName:    fileName,
		StorageKey:  documents.StorageKey(input.FamilyID, documents.SecureFileName(fileName, now)),
		ContentType: file.ContentType,
		FileSize:    plainSize,
		Encrypted:   encrypt,
		Tags:        normalizeTags(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := document.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.Put(ctx, document.StorageKey, document.ContentType, content); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, document); err != nil {
		if cleanupErr := s.storage.Delete(ctx, document.StorageKey); cleanupErr != nil {
			s.logger.Error("Failed to remove orphaned document content", "key", document.StorageKey, "error", cleanupErr)
		}
		return nil, err
	}

	s.families.RecordActivity(ctx, &families.Activity{
		FamilyID:     document.FamilyID,
		ActorID:      caller.ID,
		Type:         families.ActivityDocumentUploaded,
		Description:  "Uploaded " + document.Title,
		ResourceType: audit.ResourceDocument,
		ResourceID:   document.ID,
	})
	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionDocumentUploaded,
		ResourceType: audit.ResourceDocument,
		ResourceID:   document.ID,
		Description:  fmt.Sprintf("Uploaded %s document %s", document.Type, document.FileName),
		Metadata: map[string]interface{}{
			"familyId":  document.FamilyID,
			"fileSize":  document.FileSize,
			"encrypted": document.Encrypted,
		},
	})
	s.logger.Info("Document uploaded", "document_id", document.ID, "family_id", document.FamilyID, "size", document.FileSize)
	return document, nil
}

func (s *documentService) List(ctx context.Context, caller users.Principal, query *documents.Query) (*documents.Page, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.families.RequireMember(ctx, caller, query.FamilyID); err != nil {
		return nil, err
	}

	docs, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return &documents.Page{
		Documents:  docs,
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
	}, nil
}

// Get returns the metadata of a document in one of the caller's families
func (s *documentService) Get(ctx context.Context, caller users.Principal, documentID string) (*documents.FamilyDocument, error) {
	document, _, err := s.load(ctx, caller, documentID)
	return document, err
}

func (s *documentService) load(ctx context.Context, caller users.Principal, documentID string) (*documents.FamilyDocument, *families.Member, error) {
	document, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	member, err := s.families.RequireMember(ctx, caller, document.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	return document, member, nil
}

func (s *documentService) Download(ctx context.Context, caller users.Principal, documentID string) (*documents.Download, error) {
	document, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.families.RequireMember(ctx, caller, document.FamilyID); err != nil {
		s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceDocument, documentID, "document download", false)
		return nil, err
	}

	content, err := s.storage.Get(ctx, document.StorageKey)
	if err != nil {
		return nil, err
	}
	if document.Encrypted {
		if content, err = s.cipher.Decrypt(content); err != nil {
			return nil, fmt.Errorf("failed to decrypt document %s: %w", documentID, err)
		}
	}

	s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceDocument, documentID, "document download", true)
	return &documents.Download{Document: document, Content: content}, nil
}

func (s *documentService) UpdateMetadata(ctx context.Context, caller users.Principal, documentID string, update *documents.MetadataUpdate) (*documents.FamilyDocument, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	document, member, err := s.load(ctx, caller, documentID)
	if err != nil {
		return nil, err
	}
	if document.UploaderID != caller.ID && !member.Role.CanManage() {
		return nil, fmt.Errorf("%w: cannot edit document %s", apperr.ErrForbidden, documentID)
	}

	var changed []string
	if update.Title != nil {
		document.Title = sanitizeText(*update.Title)
		changed = append(changed, "title")
	}
	if update.Description != nil {
		document.Description = sanitizeText(*update.Description)
		changed = append(changed, "description")
	}
	if update.Type != nil {
		document.Type = *update.Type
		changed = append(changed, "type")
	}
	if update.Tags != nil {
		document.Tags = normalizeTags(*update.Tags)
		changed = append(changed, "tags")
	}
	if len(changed) == 0 {
		return document, nil
	}

	document.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, document); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceDocument,
		ResourceID:   document.ID,
		Description:  "Updated document metadata",
		Metadata:     map[string]interface{}{"fields": changed},
	})
	return document, nil
}

// Delete removes metadata first, then content. A storage failure after the
// metadata is gone only leaves an unreachable object behind.
func (s *documentService) Delete(ctx context.Context, caller users.Principal, documentID string) error {
	document, member, err := s.load(ctx, caller, documentID)
	if err != nil {
		return err
	}
	if document.UploaderID != caller.ID && member.Role != families.MemberOwner {
		return fmt.Errorf("%w: only the uploader or a family owner can delete document %s", apperr.ErrForbidden, documentID)
	}

	if err := s.repo.Delete(ctx, document.ID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, document.StorageKey); err != nil {
		s.logger.Error("Failed to delete document content", "document_id", document.ID, "key", document.StorageKey, "error", err)
	}

	s.families.RecordActivity(ctx, &families.Activity{
		FamilyID:     document.FamilyID,
		ActorID:      caller.ID,
		Type:         families.ActivityDocumentDeleted,
		Description:  "Deleted " + document.Title,
		ResourceType: audit.ResourceDocument,
		ResourceID:   document.ID,
	})
	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionDelete,
		ResourceType: audit.ResourceDocument,
		ResourceID:   document.ID,
		Description:  "Deleted document " + document.FileName,
	})
	return nil
}

func (s *documentService) AddComment(ctx context.Context, caller users.Principal, documentID, content string) (*documents.Comment, error) {
	document, member, err := s.load(ctx, caller, documentID)
	if err != nil {
		return nil, err
	}
	if member.Role == families.MemberViewer {
		return nil, fmt.Errorf("%w: viewers cannot comment", apperr.ErrForbidden)
	}

	comment := &documents.Comment{
		ID:         uuid.NewString(),
		DocumentID: document.ID,
		AuthorID:   caller.ID,
		Content:    sanitizeText(content),
		CreatedAt:  time.Now().UTC(),
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.families.RecordActivity(ctx, &families.Activity{
		FamilyID:     document.FamilyID,
		ActorID:      caller.ID,
		Type:         families.ActivityCommentAdded,
		Description:  "Commented on " + document.Title,
		ResourceType: audit.ResourceDocument,
		ResourceID:   document.ID,
	})
	return comment, nil
}

func (s *documentService) ListComments(ctx context.Context, caller users.Principal, documentID string) ([]*documents.Comment, error) {
	if _, _, err := s.load(ctx, caller, documentID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, documentID)
}
