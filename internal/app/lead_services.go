package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/leads"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

// leadService implements leads.LeadService
type leadService struct {
	repo     leads.LeadRepository
	userRepo users.UserRepository
	notifier notifications.NotificationService
	recorder audit.Recorder
	logger   logger.Logger
}

// NewLeadService creates a new instance of LeadService
func NewLeadService(
	repo leads.LeadRepository,
	userRepo users.UserRepository,
	notifier notifications.NotificationService,
	recorder audit.Recorder,
	logger logger.Logger,
) (leads.LeadService, error) {
	return &leadService{repo: repo, userRepo: userRepo, notifier: notifier, recorder: recorder, logger: logger}, nil
}

var leadTargetRoles = map[leads.TargetType]users.Role{
	leads.TargetAide:     users.RoleCaregiver,
	leads.TargetProvider: users.RoleProvider,
}

// Create files a NEW lead from a family to an aide or provider
func (s *leadService) Create(ctx context.Context, caller users.Principal, input *leads.CreateInput) (*leads.Lead, error) {
	if !caller.Is(users.RoleFamily) {
		return nil, fmt.Errorf("%w: only families submit inquiries", apperr.ErrForbidden)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByID(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}
	if target.Role != leadTargetRoles[input.TargetType] {
		return nil, fmt.Errorf("%w: target is not a %s", apperr.ErrValidation, strings.ToLower(string(input.TargetType)))
	}

	now := time.Now().UTC()
	lead := &leads.Lead{
		ID:                   uuid.NewString(),
		FamilyID:             caller.ID,
		TargetType:           input.TargetType,
		TargetID:             input.TargetID,
		Status:               leads.StatusNew,
		Message:              sanitizeText(input.Message),
		PreferredStartDate:   input.PreferredStartDate,
		ExpectedHoursPerWeek: input.ExpectedHoursPerWeek,
		Location:             sanitizeText(input.Location),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceLead,
		ResourceID:   lead.ID,
		Description:  fmt.Sprintf("Family submitted inquiry to %s", lead.TargetType),
	})
	s.notify(ctx, lead.TargetID, "New inquiry", "A family sent you a care inquiry.", lead)
	return lead, nil
}

func (s *leadService) ListMine(ctx context.Context, caller users.Principal) ([]*leads.Lead, error) {
	if !caller.Is(users.RoleFamily) {
		return nil, fmt.Errorf("%w: only families have inquiries", apperr.ErrForbidden)
	}
	return s.repo.ListByFamily(ctx, caller.ID)
}

func (s *leadService) List(ctx context.Context, caller users.Principal, query *leads.Query) (*leads.Page, error) {
	if err := requireLeadManager(caller); err != nil {
		return nil, err
	}
	if query == nil {
		query = leads.NewQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return leads.NewPage(found, total, query), nil
}

// Get returns a lead to operators, admins and the family that filed it
func (s *leadService) Get(ctx context.Context, caller users.Principal, leadID string) (*leads.Lead, error) {
	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.FamilyID == caller.ID {
		return lead, nil
	}
	if !caller.Is(users.RoleOperator, users.RoleAdmin) {
		return nil, fmt.Errorf("%w: no access to lead %s", apperr.ErrForbidden, leadID)
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionRead,
		ResourceType: audit.ResourceLead,
		ResourceID:   lead.ID,
		Description:  "Operator viewed lead details",
		Metadata: map[string]interface{}{
			"leadId": lead.ID,
			"status": lead.Status,
		},
	})
	return lead, nil
}

// Update applies status, notes and assignment changes and audits them
func (s *leadService) Update(ctx context.Context, caller users.Principal, leadID string, update *leads.Update) (*leads.Lead, error) {
	if err := requireLeadManager(caller); err != nil {
		return nil, err
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	previousStatus := lead.Status

	var changes []string
	if update.Status != nil && *update.Status != lead.Status {
		changes = append(changes, fmt.Sprintf("status: %s → %s", lead.Status, *update.Status))
		lead.Status = *update.Status
	}
	if update.OperatorNotes != nil {
		lead.OperatorNotes = sanitizeText(*update.OperatorNotes)
		changes = append(changes, "operatorNotes")
	}
	if update.AssignedOperatorID != nil {
		next := *update.AssignedOperatorID
		if next != "" {
			assignee, err := s.userRepo.GetByID(ctx, next)
			if err != nil {
				return nil, fmt.Errorf("%w: assigned operator not found", apperr.ErrValidation)
			}
			if !assignee.Role.In(users.RoleOperator, users.RoleAdmin) {
				return nil, fmt.Errorf("%w: user must be an OPERATOR or ADMIN", apperr.ErrValidation)
			}
		}
		changes = append(changes, fmt.Sprintf("assignment: %s → %s", assignmentLabel(lead.AssignedOperatorID), assignmentLabel(&next)))
		if next == "" {
			lead.AssignedOperatorID = nil
		} else {
			lead.AssignedOperatorID = &next
		}
	}

	lead.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		s.recorder.Record(ctx, &audit.Entry{
			UserID:       caller.ID,
			ActionedBy:   caller.ID,
			Action:       audit.ActionUpdate,
			ResourceType: audit.ResourceLead,
			ResourceID:   lead.ID,
			Description:  "Operator updated lead: " + strings.Join(changes, ", "),
			Metadata: map[string]interface{}{
				"changes":        changes,
				"previousStatus": string(previousStatus),
				"newStatus":      string(lead.Status),
			},
		})
	}
	if lead.Status != previousStatus {
		s.notify(ctx, lead.FamilyID, "Inquiry updated",
			fmt.Sprintf("Your inquiry is now %s.", strings.ToLower(strings.ReplaceAll(string(lead.Status), "_", " "))), lead)
	}
	return lead, nil
}

func (s *leadService) Delete(ctx context.Context, caller users.Principal, leadID string) error {
	if err := requireLeadManager(caller); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, leadID); err != nil {
		return err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		ActionedBy:   caller.ID,
		Action:       audit.ActionDelete,
		ResourceType: audit.ResourceLead,
		ResourceID:   leadID,
		Description:  "Operator deleted lead",
	})
	return nil
}

func (s *leadService) notify(ctx context.Context, userID, title, message string, lead *leads.Lead) {
	_, err := s.notifier.Notify(ctx, userID, notifications.TypeLeadUpdate, title, message,
		map[string]string{"leadId": lead.ID, "status": string(lead.Status)})
	if err != nil {
		s.logger.Warn("Failed to notify about lead", "lead_id", lead.ID, "error", err)
	}
}

func requireLeadManager(caller users.Principal) error {
	if !caller.Is(users.RoleOperator, users.RoleAdmin) {
		return fmt.Errorf("%w: lead management requires OPERATOR or ADMIN", apperr.ErrForbidden)
	}
	return nil
}

func assignmentLabel(id *string) string {
	if id == nil || *id == "" {
		return "unassigned"
	}
	return *id
}
