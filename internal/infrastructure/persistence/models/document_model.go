package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
)

// FamilyDocumentModel is the GORM database model for family document metadata
type FamilyDocumentModel struct {
	ID          string     `gorm:"primaryKey;type:uuid"`
	FamilyID    string     `gorm:"not null;index;type:uuid"`
	UploaderID  string     `gorm:"not null;index;type:uuid"`
	Title       string     `gorm:"not null;type:varchar(255)"`
	Description string     `gorm:"type:varchar(1000)"`
	Type        string     `gorm:"not null;index;type:varchar(30)"`
	FileName    string     `gorm:"not null;type:varchar(255)"`
	StorageKey  string     `gorm:"not null;uniqueIndex;type:varchar(512)"`
	ContentType string     `gorm:"not null;type:varchar(255)"`
	FileSize    int64      `gorm:"not null"`
	Encrypted   bool       `gorm:"not null;default:true"`
	Tags        StringList `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (FamilyDocumentModel) TableName() string {
	return "family_documents"
}

// ToDomain converts GORM model to domain entity
func (m *FamilyDocumentModel) ToDomain() *documents.FamilyDocument {
	return &documents.FamilyDocument{
		ID:          m.ID,
		FamilyID:    m.FamilyID,
		UploaderID:  m.UploaderID,
		Title:       m.Title,
		Description: m.Description,
		Type:        documents.Type(m.Type),
		FileName:    m.FileName,
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		FileSize:    m.FileSize,
		Encrypted:   m.Encrypted,
		Tags:        []string(m.Tags),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *FamilyDocumentModel) FromDomain(d *documents.FamilyDocument) {
	m.ID = d.ID
	m.FamilyID = d.FamilyID
	m.UploaderID = d.UploaderID
	m.Title = d.Title
	m.Description = d.Description
	m.Type = string(d.Type)
	m.FileName = d.FileName
	m.StorageKey = d.StorageKey
	m.ContentType = d.ContentType
	m.FileSize = d.FileSize
	m.Encrypted = d.Encrypted
	m.Tags = StringList(d.Tags)
	m.CreatedAt = d.CreatedAt
	m.UpdatedAt = d.UpdatedAt
}

// DocumentCommentModel is the GORM database model for document comments
type DocumentCommentModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	DocumentID string    `gorm:"not null;index;type:uuid"`
	AuthorID   string    `gorm:"not null;type:uuid"`
	Content    string    `gorm:"not null;type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (DocumentCommentModel) TableName() string {
	return "document_comments"
}

// ToDomain converts GORM model to domain entity
func (m *DocumentCommentModel) ToDomain() *documents.Comment {
	return &documents.Comment{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		AuthorID:   m.AuthorID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DocumentCommentModel) FromDomain(c *documents.Comment) {
	m.ID = c.ID
	m.DocumentID = c.DocumentID
	m.AuthorID = c.AuthorID
	m.Content = c.Content
	m.CreatedAt = c.CreatedAt
}
