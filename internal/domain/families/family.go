// Package families models family workspaces: members, their roles and the activity feed.
package families

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// MemberRole inside a family
type MemberRole string

// Member roles
const (
	MemberOwner     MemberRole = "OWNER"
	MemberCareProxy MemberRole = "CARE_PROXY"
	MemberMember    MemberRole = "MEMBER"
	MemberViewer    MemberRole = "VIEWER"
)

// CanUpload reports whether the role may upload documents
func (r MemberRole) CanUpload() bool {
	return r == MemberOwner || r == MemberCareProxy || r == MemberMember
}

// CanManage reports whether the role may add members
func (r MemberRole) CanManage() bool {
	return r == MemberOwner || r == MemberCareProxy
}

// Family is a shared workspace around one care recipient
type Family struct {
	ID        string `validate:"required,uuid4"`
	Name      string `validate:"required,notblank,max=200"`
	CreatedBy string `validate:"required,uuid4"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate for validating Family struct
func (f *Family) Validate() error {
	return validators.ValidateStruct(f)
}

// Member links a user to a family
type Member struct {
	ID       string     `validate:"required,uuid4"`
	FamilyID string     `validate:"required,uuid4"`
	UserID   string     `validate:"required,uuid4"`
	Role     MemberRole `validate:"required,oneof=OWNER CARE_PROXY MEMBER VIEWER"`
	JoinedAt time.Time
}

// Validate for validating Member struct
func (m *Member) Validate() error {
	return validators.ValidateStruct(m)
}

// ActivityType of a feed entry
type ActivityType string

// Activity types
const (
	ActivityDocumentUploaded ActivityType = "DOCUMENT_UPLOADED"
	ActivityDocumentDeleted  ActivityType = "DOCUMENT_DELETED"
	ActivityCommentAdded     ActivityType = "COMMENT_ADDED"
	ActivityMemberAdded      ActivityType = "MEMBER_ADDED"
	ActivityFamilyCreated    ActivityType = "FAMILY_CREATED"
)

// Activity is one entry of the family feed
type Activity struct {
	ID           string       `validate:"required,uuid4"`
	FamilyID     string       `validate:"required,uuid4"`
	ActorID      string       `validate:"required,uuid4"`
	Type         ActivityType `validate:"required"`
	Description  string       `validate:"required,max=1000"`
	ResourceType string       `validate:"max=50"`
	ResourceID   string       `validate:"max=64"`
	CreatedAt    time.Time
}

// Validate for validating Activity struct
func (a *Activity) Validate() error {
	return validators.ValidateStruct(a)
}

// FamilyService manages families and their members.
type FamilyService interface {
	Create(ctx context.Context, caller users.Principal, name string) (*Family, error)
	ListMine(ctx context.Context, caller users.Principal) ([]*Family, error)
	AddMember(ctx context.Context, caller users.Principal, familyID, userID string, role MemberRole) (*Member, error)
	ListMembers(ctx context.Context, caller users.Principal, familyID string) ([]*Member, error)
	ListActivity(ctx context.Context, caller users.Principal, familyID string, limit int) ([]*Activity, error)

	// RequireMember returns caller's membership or a forbidden error.
	RequireMember(ctx context.Context, caller users.Principal, familyID string) (*Member, error)

	// RecordActivity appends to the feed; failures are logged, not returned.
	RecordActivity(ctx context.Context, activity *Activity)
}

// FamilyRepository defines persistence for families
type FamilyRepository interface {
	// Create stores the family together with its owner membership.
	Create(ctx context.Context, family *Family, owner *Member) error
	GetByID(ctx context.Context, familyID string) (*Family, error)
	ListByUser(ctx context.Context, userID string) ([]*Family, error)
	AddMember(ctx context.Context, member *Member) error
	GetMember(ctx context.Context, familyID, userID string) (*Member, error)
	ListMembers(ctx context.Context, familyID string) ([]*Member, error)
	CreateActivity(ctx context.Context, activity *Activity) error
	ListActivity(ctx context.Context, familyID string, limit int) ([]*Activity, error)
}
