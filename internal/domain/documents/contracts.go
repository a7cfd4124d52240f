package documents

import (
	"context"
	"io"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
)

// Upload is a file received from a client
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Download is the decrypted content of a document
type Download struct {
	Document *FamilyDocument
	Content  []byte
}

// DocumentService manages family documents. Every operation requires family membership.
type DocumentService interface {
	Upload(ctx context.Context, caller users.Principal, input *UploadInput, file *Upload) (*FamilyDocument, error)
	List(ctx context.Context, caller users.Principal, query *Query) (*Page, error)
	Get(ctx context.Context, caller users.Principal, documentID string) (*FamilyDocument, error)
	// Download returns the plaintext content and records the PHI access.
	Download(ctx context.Context, caller users.Principal, documentID string) (*Download, error)
	UpdateMetadata(ctx context.Context, caller users.Principal, documentID string, update *MetadataUpdate) (*FamilyDocument, error)
	// Delete removes metadata and content; the uploader or a family OWNER may delete.
	Delete(ctx context.Context, caller users.Principal, documentID string) error
	AddComment(ctx context.Context, caller users.Principal, documentID, content string) (*Comment, error)
	ListComments(ctx context.Context, caller users.Principal, documentID string) ([]*Comment, error)
}

// DocumentRepository defines persistence for document metadata and comments
type DocumentRepository interface {
	Create(ctx context.Context, document *FamilyDocument) error
	GetByID(ctx context.Context, documentID string) (*FamilyDocument, error)
	List(ctx context.Context, query *Query) ([]*FamilyDocument, int64, error)
	Update(ctx context.Context, document *FamilyDocument) error
	Delete(ctx context.Context, documentID string) error
	CreateComment(ctx context.Context, comment *Comment) error
	ListComments(ctx context.Context, documentID string) ([]*Comment, error)
}

// DocumentStorage stores document content by key
type DocumentStorage interface {
	Put(ctx context.Context, key, contentType string, content []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ContentCipher encrypts document content at rest
type ContentCipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}
