package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/profiles"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"
)

const defaultSearchLimit = 20

// profileService implements profiles.ProfileService
type profileService struct {
	repo     profiles.ProfileRepository
	recorder audit.Recorder
	logger   logger.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(repo profiles.ProfileRepository, recorder audit.Recorder, logger logger.Logger) (profiles.ProfileService, error) {
	return &profileService{repo: repo, recorder: recorder, logger: logger}, nil
}

// UpsertCaregiver stores the caller's own caregiver profile
func (s *profileService) UpsertCaregiver(ctx context.Context, caller users.Principal, profile *profiles.CaregiverProfile) (*profiles.CaregiverProfile, error) {
	if !caller.Is(users.RoleCaregiver) {
		return nil, fmt.Errorf("%w: only caregivers have a caregiver profile", apperr.ErrForbidden)
	}

	profile.UserID = caller.ID
	profile.Bio = sanitizeText(profile.Bio)
	profile.Specialties = normalizeTags(profile.Specialties)
	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveCaregiver(ctx, profile); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceCaregiver,
		ResourceID:   caller.ID,
		Description:  "Updated caregiver profile",
	})
	return profile, nil
}

// UpsertProvider stores the caller's own provider profile. The verified badge is kept as stored.
func (s *profileService) UpsertProvider(ctx context.Context, caller users.Principal, profile *profiles.ProviderProfile) (*profiles.ProviderProfile, error) {
	if !caller.Is(users.RoleProvider) {
		return nil, fmt.Errorf("%w: only providers have a provider profile", apperr.ErrForbidden)
	}

	profile.UserID = caller.ID
	profile.BusinessName = sanitizeText(profile.BusinessName)
	profile.ServiceArea = sanitizeText(profile.ServiceArea)
	profile.ServiceTypes = normalizeTags(profile.ServiceTypes)
	profile.Verified = false
	if existing, err := s.repo.GetProvider(ctx, caller.ID); err == nil {
		profile.Verified = existing.Verified
	}
	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveProvider(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetCaregiver(ctx context.Context, userID string) (*profiles.CaregiverProfile, error) {
	return s.repo.GetCaregiver(ctx, userID)
}

func (s *profileService) GetProvider(ctx context.Context, userID string) (*profiles.ProviderProfile, error) {
	return s.repo.GetProvider(ctx, userID)
}

func (s *profileService) SearchCaregivers(ctx context.Context, query *profiles.CaregiverQuery) ([]*profiles.CaregiverProfile, error) {
	if query.Limit == 0 {
		query.Limit = defaultSearchLimit
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.repo.SearchCaregivers(ctx, query)
}

func (s *profileService) SearchProviders(ctx context.Context, query *profiles.ProviderQuery) ([]*profiles.ProviderProfile, error) {
	if query.Limit == 0 {
		query.Limit = defaultSearchLimit
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.repo.SearchProviders(ctx, query)
}

func (s *profileService) SetProviderVerified(ctx context.Context, caller users.Principal, userID string, verified bool) (*profiles.ProviderProfile, error) {
	if !caller.Is(users.RoleAdmin, users.RoleStaff) {
		return nil, fmt.Errorf("%w: only admins and staff verify providers", apperr.ErrForbidden)
	}

	profile, err := s.repo.GetProvider(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Verified = verified
	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveProvider(ctx, profile); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       userID,
		ActionedBy:   caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceUser,
		ResourceID:   userID,
		Description:  fmt.Sprintf("Provider verified: %t", verified),
	})
	return profile, nil
}

// normalizeTags trims, de-duplicates and drops blank tags, keeping their order
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = sanitizeText(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}
