package homes

import (
	"context"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
)

// HomeService manages homes and residents with operator scoping.
type HomeService interface {
	CreateHome(ctx context.Context, caller users.Principal, home *Home) (*Home, error)
	ListHomes(ctx context.Context, caller users.Principal) ([]*Home, error)
	GetHome(ctx context.Context, caller users.Principal, homeID string) (*Home, error)

	CreateResident(ctx context.Context, caller users.Principal, resident *Resident) (*Resident, error)
	ListResidents(ctx context.Context, caller users.Principal, homeID string) ([]*Resident, error)

	// GetResident returns a resident and records the PHI access, granted or denied.
	GetResident(ctx context.Context, caller users.Principal, residentID string) (*Resident, error)

	// AuthorizeResident checks that caller may read (or, with write, modify) the resident's records.
	AuthorizeResident(ctx context.Context, caller users.Principal, residentID string, write bool) (*Resident, error)

	// AuthorizeHome checks that caller manages the home: its operator, or ADMIN/STAFF.
	AuthorizeHome(ctx context.Context, caller users.Principal, homeID string) (*Home, error)
}

// HomeRepository defines persistence for homes and residents
type HomeRepository interface {
	CreateHome(ctx context.Context, home *Home) error
	GetHomeByID(ctx context.Context, homeID string) (*Home, error)
	// ListHomes lists homes of operatorID, or all homes when operatorID is empty.
	ListHomes(ctx context.Context, operatorID string) ([]*Home, error)
	ListHomeIDsByOperator(ctx context.Context, operatorID string) ([]string, error)

	CreateResident(ctx context.Context, resident *Resident) error
	GetResidentByID(ctx context.Context, residentID string) (*Resident, error)
	ListResidents(ctx context.Context, homeID string) ([]*Resident, error)
}
