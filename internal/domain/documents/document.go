// Package documents models files shared inside a family workspace.
package documents

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"

	"github.com/google/uuid"
)

// Type of a family document
type Type string

// Document types
const (
	TypeCarePlan          Type = "CARE_PLAN"
	TypeMedicalRecord     Type = "MEDICAL_RECORD"
	TypeInsuranceDocument Type = "INSURANCE_DOCUMENT"
	TypeLegalDocument     Type = "LEGAL_DOCUMENT"
	TypePersonalDocument  Type = "PERSONAL_DOCUMENT"
	TypePhoto             Type = "PHOTO"
	TypeVideo             Type = "VIDEO"
	TypeOther             Type = "OTHER"
)

// MaxFileSize is the default upload limit
const MaxFileSize = 10 << 20

// AllowedContentTypes lists the MIME types accepted for upload
var AllowedContentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"text/plain",
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/heic",
	"image/heif",
	"application/zip",
	"application/x-zip-compressed",
}

// IsAllowedContentType reports whether contentType, ignoring parameters, may be uploaded
func IsAllowedContentType(contentType string) bool {
	base := baseContentType(contentType)
	for _, allowed := range AllowedContentTypes {
		if base == allowed {
			return true
		}
	}
	return false
}

// FamilyDocument is a stored file with its metadata
type FamilyDocument struct {
	ID          string `validate:"required,uuid4"`
	FamilyID    string `validate:"required,uuid4"`
	UploaderID  string `validate:"required,uuid4"`
	Title       string `validate:"required,notblank,min=1,max=255"`
	Description string `validate:"max=1000"`
	Type        Type   `validate:"required,oneof=CARE_PLAN MEDICAL_RECORD INSURANCE_DOCUMENT LEGAL_DOCUMENT PERSONAL_DOCUMENT PHOTO VIDEO OTHER"`
	FileName    string `validate:"required,max=255"`
	StorageKey  string `validate:"required,max=512"`
	ContentType string `validate:"required,max=255"`
	FileSize    int64  `validate:"gte=0"`
	Encrypted   bool
	Tags        []string `validate:"max=20,dive,notblank,max=50"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate for validating FamilyDocument struct
func (d *FamilyDocument) Validate() error {
	return validators.ValidateStruct(d)
}

// UploadInput is the metadata part of a multipart upload
type UploadInput struct {
	FamilyID    string   `validate:"required,uuid4"`
	Title       string   `validate:"required,notblank,max=255"`
	Description string   `validate:"max=1000"`
	Type        Type     `validate:"required,oneof=CARE_PLAN MEDICAL_RECORD INSURANCE_DOCUMENT LEGAL_DOCUMENT PERSONAL_DOCUMENT PHOTO VIDEO OTHER"`
	Tags        []string `validate:"max=20,dive,notblank,max=50"`
	Encrypt     bool
}

// Validate for validating UploadInput struct
func (in *UploadInput) Validate() error {
	return validators.ValidateStruct(in)
}

// ValidateFile checks the size limit and the MIME allow-list
func ValidateFile(size, limit int64, contentType string) error {
	if size <= 0 {
		return fmt.Errorf("%w: file is empty", apperr.ErrValidation)
	}
	if size > limit {
		return fmt.Errorf("%w: file exceeds the %d byte limit", apperr.ErrValidation, limit)
	}
	if !IsAllowedContentType(contentType) {
		return fmt.Errorf("%w: unsupported file type %q", apperr.ErrValidation, contentType)
	}
	return nil
}

func baseContentType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SecureFileName replaces unsafe characters of the base name, caps it at 50 characters
// and appends a millisecond timestamp and a UUID before the original extension.
func SecureFileName(original string, now time.Time) string {
	original = filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := filepath.Ext(original)
	base := unsafeNameChars.ReplaceAllString(strings.TrimSuffix(original, ext), "_")
	if len(base) > 50 {
		base = base[:50]
	}
	return fmt.Sprintf("%s_%d_%s%s", base, now.UnixMilli(), uuid.NewString(), ext)
}

// StorageKey is where the content of a family document lives
func StorageKey(familyID, secureName string) string {
	return fmt.Sprintf("family/%s/documents/%s", familyID, secureName)
}

// Query filters a family's documents
type Query struct {
	FamilyID  string `validate:"required,uuid4"`
	Types     []Type
	Search    string   `validate:"max=200"`
	Tags      []string `validate:"max=20"`
	Page      int      `validate:"gte=1"`
	Limit     int      `validate:"gte=1,lte=100"`
	SortBy    string   `validate:"oneof=createdAt updatedAt title fileSize"`
	SortOrder string   `validate:"oneof=asc desc"`
}

// NewQuery returns a query for familyID with default paging
func NewQuery(familyID string) *Query {
	return &Query{FamilyID: familyID, Page: 1, Limit: 20, SortBy: "createdAt", SortOrder: "desc"}
}

// Validate for validating Query struct
func (q *Query) Validate() error {
	return validators.ValidateStruct(q)
}

// Offset of the first row of the page
func (q *Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Page is a page of documents
type Page struct {
	Documents  []*FamilyDocument
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MetadataUpdate carries editable fields; nil means unchanged
type MetadataUpdate struct {
	Title       *string   `validate:"omitempty,notblank,max=255"`
	Description *string   `validate:"omitempty,max=1000"`
	Type        *Type     `validate:"omitempty,oneof=CARE_PLAN MEDICAL_RECORD INSURANCE_DOCUMENT LEGAL_DOCUMENT PERSONAL_DOCUMENT PHOTO VIDEO OTHER"`
	Tags        *[]string `validate:"omitempty,max=20,dive,notblank,max=50"`
}

// Validate for validating MetadataUpdate struct
func (u *MetadataUpdate) Validate() error {
	return validators.ValidateStruct(u)
}

// Comment on a document
type Comment struct {
	ID         string `validate:"required,uuid4"`
	DocumentID string `validate:"required,uuid4"`
	AuthorID   string `validate:"required,uuid4"`
	Content    string `validate:"required,notblank,max=2000"`
	CreatedAt  time.Time
}

// Validate for validating Comment struct
func (c *Comment) Validate() error {
	return validators.ValidateStruct(c)
}
