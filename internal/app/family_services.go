package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

// Activity feed paging
const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// familyService implements families.FamilyService
type familyService struct {
	repo     families.FamilyRepository
	userRepo users.UserRepository
	recorder audit.Recorder
	logger   logger.Logger
}

// NewFamilyService creates a new instance of FamilyService
func NewFamilyService(repo families.FamilyRepository, userRepo users.UserRepository, recorder audit.Recorder, logger logger.Logger) (families.FamilyService, error) {
	return &familyService{repo: repo, userRepo: userRepo, recorder: recorder, logger: logger}, nil
}

// Create opens a family workspace with the caller as OWNER
func (s *familyService) Create(ctx context.Context, caller users.Principal, name string) (*families.Family, error) {
	now := time.Now().UTC()
	family := &families.Family{
		ID:        uuid.NewString(),
		Name:      sanitizeText(name),
		CreatedBy: caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &families.Member{
		ID:       uuid.NewString(),
		FamilyID: family.ID,
		UserID:   caller.ID,
		Role:     families.MemberOwner,
		JoinedAt: now,
	}
	if err := s.repo.Create(ctx, family, owner); err != nil {
		return nil, err
	}

	s.RecordActivity(ctx, &families.Activity{
		FamilyID:     family.ID,
		ActorID:      caller.ID,
		Type:         families.ActivityFamilyCreated,
		Description:  "Created the family workspace",
		ResourceType: audit.ResourceFamily,
		ResourceID:   family.ID,
	})
	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceFamily,
		ResourceID:   family.ID,
		Description:  "Created family " + family.Name,
	})
	return family, nil
}

func (s *familyService) ListMine(ctx context.Context, caller users.Principal) ([]*families.Family, error) {
	return s.repo.ListByUser(ctx, caller.ID)
}

// AddMember lets an OWNER or CARE_PROXY invite an existing user. OWNER cannot be granted.
func (s *familyService) AddMember(ctx context.Context, caller users.Principal, familyID, userID string, role families.MemberRole) (*families.Member, error) {
	if role == families.MemberOwner {
		return nil, fmt.Errorf("%w: a family has a single owner", apperr.ErrValidation)
	}

	membership, err := s.RequireMember(ctx, caller, familyID)
	if err != nil {
		return nil, err
	}
	if !membership.Role.CanManage() {
		return nil, fmt.Errorf("%w: only owners and care proxies add members", apperr.ErrForbidden)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	member := &families.Member{
		ID:       uuid.NewString(),
		FamilyID: familyID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	s.RecordActivity(ctx, &families.Activity{
		FamilyID:     familyID,
		ActorID:      caller.ID,
		Type:         families.ActivityMemberAdded,
		Description:  fmt.Sprintf("Added a member as %s", role),
		ResourceType: audit.ResourceUser,
		ResourceID:   userID,
	})
	return member, nil
}

func (s *familyService) ListMembers(ctx context.Context, caller users.Principal, familyID string) ([]*families.Member, error) {
	if _, err := s.RequireMember(ctx, caller, familyID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, familyID)
}

func (s *familyService) ListActivity(ctx context.Context, caller users.Principal, familyID string, limit int) ([]*families.Activity, error) {
	if _, err := s.RequireMember(ctx, caller, familyID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return s.repo.ListActivity(ctx, familyID, limit)
}

// RequireMember returns the caller's membership. ADMIN gets read-only VIEWER access to any family.
func (s *familyService) RequireMember(ctx context.Context, caller users.Principal, familyID string) (*families.Member, error) {
	if _, err := s.repo.GetByID(ctx, familyID); err != nil {
		return nil, err
	}

	member, err := s.repo.GetMember(ctx, familyID, caller.ID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if caller.Is(users.RoleAdmin) {
		return &families.Member{FamilyID: familyID, UserID: caller.ID, Role: families.MemberViewer}, nil
	}
	return nil, fmt.Errorf("%w: not a member of family %s", apperr.ErrForbidden, familyID)
}

func (s *familyService) RecordActivity(ctx context.Context, activity *families.Activity) {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		s.logger.Error("Failed to record family activity", "family_id", activity.FamilyID, "type", activity.Type, "error", err)
	}
}
