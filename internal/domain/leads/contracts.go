package leads

import (
	"context"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
)

// LeadService manages the inquiry pipeline
type LeadService interface {
	Create(ctx context.Context, caller users.Principal, input *CreateInput) (*Lead, error)
	ListMine(ctx context.Context, caller users.Principal) ([]*Lead, error)
	List(ctx context.Context, caller users.Principal, query *Query) (*Page, error)
	Get(ctx context.Context, caller users.Principal, leadID string) (*Lead, error)
	// Update applies an operator change and audits the field-by-field diff.
	Update(ctx context.Context, caller users.Principal, leadID string, update *Update) (*Lead, error)
	// Delete soft-deletes the lead.
	Delete(ctx context.Context, caller users.Principal, leadID string) error
}

// LeadRepository defines persistence for leads. Soft-deleted rows are never returned.
type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	GetByID(ctx context.Context, leadID string) (*Lead, error)
	ListByFamily(ctx context.Context, familyID string) ([]*Lead, error)
	List(ctx context.Context, query *Query) ([]*Lead, int64, error)
	Update(ctx context.Context, lead *Lead) error
	SoftDelete(ctx context.Context, leadID string) error
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
