package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

// homeService implements homes.HomeService
type homeService struct {
	repo       homes.HomeRepository
	familyRepo families.FamilyRepository
	recorder   audit.Recorder
	logger     logger.Logger
}

// NewHomeService creates a new instance of HomeService
func NewHomeService(repo homes.HomeRepository, familyRepo families.FamilyRepository, recorder audit.Recorder, logger logger.Logger) (homes.HomeService, error) {
	return &homeService{repo: repo, familyRepo: familyRepo, recorder: recorder, logger: logger}, nil
}

// CreateHome registers a home. Operators always own the homes they create.
func (s *homeService) CreateHome(ctx context.Context, caller users.Principal, home *homes.Home) (*homes.Home, error) {
	switch {
	case caller.Is(users.RoleOperator):
		home.OperatorID = caller.ID
	case caller.Is(users.RoleAdmin):
		if home.OperatorID == "" {
			return nil, fmt.Errorf("%w: operator ID is required", apperr.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: only operators and admins create homes", apperr.ErrForbidden)
	}

	now := time.Now().UTC()
	home.ID = uuid.NewString()
	home.Name = sanitizeText(home.Name)
	home.Address = sanitizeText(home.Address)
	if home.Status == "" {
		home.Status = homes.HomeActive
	}
	home.CreatedAt = now
	home.UpdatedAt = now
	if err := s.repo.CreateHome(ctx, home); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceHome,
		ResourceID:   home.ID,
		Description:  "Created home " + home.Name,
	})
	return home, nil
}

// ListHomes returns the operator's own homes, or every home for other roles
func (s *homeService) ListHomes(ctx context.Context, caller users.Principal) ([]*homes.Home, error) {
	if caller.Is(users.RoleOperator) {
		return s.repo.ListHomes(ctx, caller.ID)
	}
	return s.repo.ListHomes(ctx, "")
}

func (s *homeService) GetHome(ctx context.Context, caller users.Principal, homeID string) (*homes.Home, error) {
	return s.repo.GetHomeByID(ctx, homeID)
}

func (s *homeService) AuthorizeHome(ctx context.Context, caller users.Principal, homeID string) (*homes.Home, error) {
	home, err := s.repo.GetHomeByID(ctx, homeID)
	if err != nil {
		return nil, err
	}
	if caller.Is(users.RoleAdmin, users.RoleStaff) {
		return home, nil
	}
	if caller.Is(users.RoleOperator) && home.OperatorID == caller.ID {
		return home, nil
	}
	return nil, fmt.Errorf("%w: home %s is not managed by caller", apperr.ErrForbidden, homeID)
}

func (s *homeService) CreateResident(ctx context.Context, caller users.Principal, resident *homes.Resident) (*homes.Resident, error) {
	if !caller.Can(users.PermResidentsManage) {
		return nil, fmt.Errorf("%w: managing residents requires %s", apperr.ErrForbidden, users.PermResidentsManage)
	}
	if _, err := s.AuthorizeHome(ctx, caller, resident.HomeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resident.ID = uuid.NewString()
	if resident.Status == "" {
		resident.Status = homes.ResidentActive
	}
	resident.CreatedAt = now
	resident.UpdatedAt = now
	if err := s.repo.CreateResident(ctx, resident); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceResident,
		ResourceID:   resident.ID,
		Description:  "Admitted resident",
		Metadata:     map[string]interface{}{"homeId": resident.HomeID, "phi": true},
	})
	return resident, nil
}

// ListResidents returns the residents of a home the caller manages
func (s *homeService) ListResidents(ctx context.Context, caller users.Principal, homeID string) ([]*homes.Resident, error) {
	if _, err := s.AuthorizeHome(ctx, caller, homeID); err != nil {
		if errors.Is(err, apperr.ErrForbidden) {
			s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceHome, homeID, "resident roster", false)
		}
		return nil, err
	}

	residents, err := s.repo.ListResidents(ctx, homeID)
	if err != nil {
		return nil, err
	}
	s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceHome, homeID, "resident roster", true)
	return residents, nil
}

func (s *homeService) GetResident(ctx context.Context, caller users.Principal, residentID string) (*homes.Resident, error) {
	resident, err := s.AuthorizeResident(ctx, caller, residentID, false)
	if err != nil {
		if errors.Is(err, apperr.ErrForbidden) {
			s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceResident, residentID, "care coordination", false)
		}
		return nil, err
	}

	s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceResident, residentID, "care coordination", true)
	return resident, nil
}

// AuthorizeResident lets ADMIN, STAFF and the home's operator read and write;
// members of the resident's family may read.
func (s *homeService) AuthorizeResident(ctx context.Context, caller users.Principal, residentID string, write bool) (*homes.Resident, error) {
	resident, err := s.repo.GetResidentByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if caller.Is(users.RoleAdmin, users.RoleStaff) {
		return resident, nil
	}
	if caller.Is(users.RoleOperator) {
		home, err := s.repo.GetHomeByID(ctx, resident.HomeID)
		if err != nil {
			return nil, err
		}
		if home.OperatorID == caller.ID {
			return resident, nil
		}
	}
	if !write && resident.FamilyID != nil {
		if _, err := s.familyRepo.GetMember(ctx, *resident.FamilyID, caller.ID); err == nil {
			return resident, nil
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: no access to resident %s", apperr.ErrForbidden, residentID)
}
