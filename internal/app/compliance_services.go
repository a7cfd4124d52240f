package app

import (
	"context"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

// complianceService implements compliance.ComplianceService
type complianceService struct {
	repo        compliance.ComplianceRepository
	homeRepo    homes.HomeRepository
	homes       homes.HomeService
	notifier    notifications.NotificationService
	recorder    audit.Recorder
	warningDays int
	logger      logger.Logger
}

// NewComplianceService creates a new instance of ComplianceService
func NewComplianceService(
	repo compliance.ComplianceRepository,
	homeRepo homes.HomeRepository,
	homeService homes.HomeService,
	notifier notifications.NotificationService,
	recorder audit.Recorder,
	settings *config.ComplianceSettings,
	logger logger.Logger,
) (compliance.ComplianceService, error) {
	warningDays := settings.WarningDays
	if warningDays <= 0 {
		warningDays = config.DefaultComplianceWarnDays
	}
	return &complianceService{
		repo:        repo,
		homeRepo:    homeRepo,
		homes:       homeService,
		notifier:    notifier,
		recorder:    recorder,
		warningDays: warningDays,
		logger:      logger,
	}, nil
}

// authorizeOwner lets caregivers file their own items, operators file items of
// their homes and ADMIN or STAFF file anything
func (s *complianceService) authorizeOwner(ctx context.Context, caller users.Principal, ownerType compliance.OwnerType, ownerID string) error {
	if caller.Is(users.RoleAdmin, users.RoleStaff) {
		return nil
	}
	switch ownerType {
	case compliance.OwnerCaregiver:
		if caller.Is(users.RoleCaregiver) && caller.ID == ownerID {
			return nil
		}
	case compliance.OwnerHome:
		if caller.Is(users.RoleOperator) {
			_, err := s.homes.AuthorizeHome(ctx, caller, ownerID)
			return err
		}
	}
	return fmt.Errorf("%w: cannot manage compliance items of %s %s", apperr.ErrForbidden, ownerType, ownerID)
}

func (s *complianceService) Create(ctx context.Context, caller users.Principal, input *compliance.CreateInput) (*compliance.Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, caller, input.OwnerType, input.OwnerID); err != nil {
		return nil, err
	}
	if input.IssuedAt != nil && input.ExpiresAt != nil && !input.IssuedAt.Before(*input.ExpiresAt) {
		return nil, fmt.Errorf("%w: expiry must be after issue date", apperr.ErrValidation)
	}

	now := time.Now().UTC()
	item := &compliance.Item{
		ID:        uuid.NewString(),
		OwnerType: input.OwnerType,
		OwnerID:   input.OwnerID,
		Type:      input.Type,
		Title:     sanitizeText(input.Title),
		IssuedAt:  input.IssuedAt,
		ExpiresAt: input.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	item.Status = item.StatusAt(now, s.warningDays)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceCompliance,
		ResourceID:   item.ID,
		Description:  fmt.Sprintf("Filed %s for %s %s", item.Type, item.OwnerType, item.OwnerID),
	})
	return item, nil
}

// List narrows the query to what the caller owns unless they are ADMIN or STAFF
func (s *complianceService) List(ctx context.Context, caller users.Principal, query *compliance.Query) ([]*compliance.Item, error) {
	if query == nil {
		query = &compliance.Query{}
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	switch {
	case caller.Is(users.RoleAdmin, users.RoleStaff):
	case caller.Is(users.RoleCaregiver):
		query.OwnerType = compliance.OwnerCaregiver
		query.OwnerIDs = []string{caller.ID}
	case caller.Is(users.RoleOperator):
		homeIDs, err := s.homeRepo.ListHomeIDsByOperator(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		if len(query.OwnerIDs) > 0 {
			for _, id := range query.OwnerIDs {
				if !contains(homeIDs, id) {
					return nil, fmt.Errorf("%w: home %s is not managed by caller", apperr.ErrForbidden, id)
				}
			}
		} else {
			query.OwnerIDs = homeIDs
			if query.OwnerIDs == nil {
				query.OwnerIDs = []string{}
			}
		}
		query.OwnerType = compliance.OwnerHome
	default:
		return nil, fmt.Errorf("%w: role %s has no compliance items", apperr.ErrForbidden, caller.Role)
	}
	return s.repo.List(ctx, query)
}

func (s *complianceService) Verify(ctx context.Context, caller users.Principal, itemID string) (*compliance.Item, error) {
	if !caller.Is(users.RoleAdmin, users.RoleStaff) {
		return nil, fmt.Errorf("%w: only ADMIN or STAFF verify compliance items", apperr.ErrForbidden)
	}
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	verifier := caller.ID
	item.VerifiedBy = &verifier
	item.VerifiedAt = &now
	item.Status = item.StatusAt(now, s.warningDays)
	item.UpdatedAt = now
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceCompliance,
		ResourceID:   item.ID,
		Description:  "Verified compliance item: status → " + string(item.Status),
	})
	return item, nil
}

// SweepExpirations only looks at items expiring within the warning window
func (s *complianceService) SweepExpirations(ctx context.Context, now time.Time, warningDays int) (*compliance.SweepResult, error) {
	if warningDays <= 0 {
		warningDays = s.warningDays
	}
	items, err := s.repo.ListExpiring(ctx, now.AddDate(0, 0, warningDays))
	if err != nil {
		return nil, err
	}

	result := &compliance.SweepResult{Checked: len(items)}
	for _, item := range items {
		status := item.StatusAt(now, warningDays)
		if status == item.Status {
			continue
		}
		item.Status = status
		item.UpdatedAt = now
		if err := s.repo.Update(ctx, item); err != nil {
			return result, err
		}

		switch status {
		case compliance.StatusExpiringSoon:
			result.ExpiringSoon++
		case compliance.StatusExpired:
			result.Expired++
		}
		s.notifyOwner(ctx, item)
	}
	return result, nil
}

func (s *complianceService) notifyOwner(ctx context.Context, item *compliance.Item) {
	recipient := item.OwnerID
	if item.OwnerType == compliance.OwnerHome {
		home, err := s.homeRepo.GetHomeByID(ctx, item.OwnerID)
		if err != nil {
			s.logger.Warn("Failed to resolve home for compliance notice", "item_id", item.ID, "error", err)
			return
		}
		recipient = home.OperatorID
	}

	title := "Compliance item expiring"
	message := fmt.Sprintf("%s expires on %s.", item.Title, item.ExpiresAt.Format("2006-01-02"))
	if item.Status == compliance.StatusExpired {
		title = "Compliance item expired"
		message = fmt.Sprintf("%s expired on %s.", item.Title, item.ExpiresAt.Format("2006-01-02"))
	}
	_, err := s.notifier.Notify(ctx, recipient, notifications.TypeComplianceExpiring, title, message,
		map[string]string{"complianceItemId": item.ID, "status": string(item.Status)})
	if err != nil {
		s.logger.Warn("Failed to send compliance notice", "item_id", item.ID, "error", err)
	}
}
