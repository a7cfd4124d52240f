package app

import (
	"context"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/assessments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

const assessmentPurpose = "clinical assessment review"

// assessmentService implements assessments.AssessmentService
type assessmentService struct {
	repo     assessments.AssessmentRepository
	homes    homes.HomeService
	recorder audit.Recorder
	logger   logger.Logger
}

// NewAssessmentService creates a new instance of AssessmentService
func NewAssessmentService(repo assessments.AssessmentRepository, homeService homes.HomeService, recorder audit.Recorder, logger logger.Logger) (assessments.AssessmentService, error) {
	return &assessmentService{repo: repo, homes: homeService, recorder: recorder, logger: logger}, nil
}

func (s *assessmentService) Create(ctx context.Context, caller users.Principal, input *assessments.CreateInput) (*assessments.Assessment, error) {
	if !caller.Can(users.PermAssessmentsManage) {
		return nil, fmt.Errorf("%w: recording assessments requires %s", apperr.ErrForbidden, users.PermAssessmentsManage)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.homes.AuthorizeResident(ctx, caller, input.ResidentID, true); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assessedAt := now
	if input.AssessedAt != nil {
		if input.AssessedAt.After(now) {
			return nil, fmt.Errorf("%w: assessment date is in the future", apperr.ErrValidation)
		}
		assessedAt = input.AssessedAt.UTC()
	}
	assessment := &assessments.Assessment{
		ID:              uuid.NewString(),
		ResidentID:      input.ResidentID,
		Type:            input.Type,
		Score:           input.Score,
		Findings:        sanitizeText(input.Findings),
		Recommendations: sanitizeText(input.Recommendations),
		AssessedBy:      caller.ID,
		AssessedAt:      assessedAt,
		CreatedAt:       now,
	}
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceAssessment,
		ResourceID:   assessment.ID,
		Description:  fmt.Sprintf("Recorded %s assessment", assessment.Type),
		Metadata:     map[string]interface{}{"residentId": assessment.ResidentID, "phi": true},
	})
	return assessment, nil
}

// ListByResident records the PHI read on the resident, granted or denied
func (s *assessmentService) ListByResident(ctx context.Context, caller users.Principal, residentID string) ([]*assessments.Assessment, error) {
	if _, err := s.homes.AuthorizeResident(ctx, caller, residentID, false); err != nil {
		s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceResident, residentID, assessmentPurpose, false)
		return nil, err
	}
	list, err := s.repo.ListByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}
	s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceResident, residentID, assessmentPurpose, true)
	return list, nil
}

func (s *assessmentService) Get(ctx context.Context, caller users.Principal, assessmentID string) (*assessments.Assessment, error) {
	assessment, err := s.repo.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.homes.AuthorizeResident(ctx, caller, assessment.ResidentID, false); err != nil {
		s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceAssessment, assessmentID, assessmentPurpose, false)
		return nil, err
	}
	s.recorder.RecordPHIAccess(ctx, caller.ID, audit.ResourceAssessment, assessmentID, assessmentPurpose, true)
	return assessment, nil
}
