package app

import (
	"context"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"
)

const defaultPaymentLimit = 50

// paymentService implements payments.PaymentService
type paymentService struct {
	repo     payments.PaymentRepository
	recorder audit.Recorder
	logger   logger.Logger
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(repo payments.PaymentRepository, recorder audit.Recorder, logger logger.Logger) (payments.PaymentService, error) {
	return &paymentService{repo: repo, recorder: recorder, logger: logger}, nil
}

func (s *paymentService) ListMine(ctx context.Context, caller users.Principal) ([]*payments.Payment, error) {
	return s.repo.List(ctx, &payments.Query{PayeeID: caller.ID, Limit: 100})
}

func (s *paymentService) ListAll(ctx context.Context, caller users.Principal, query *payments.Query) ([]*payments.Payment, error) {
	if !caller.Can(users.PermPaymentsManage) {
		return nil, fmt.Errorf("%w: listing payments requires %s", apperr.ErrForbidden, users.PermPaymentsManage)
	}
	if query == nil {
		query = &payments.Query{}
	}
	if query.Limit == 0 {
		query.Limit = defaultPaymentLimit
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionRead,
		ResourceType: audit.ResourcePayment,
		Description:  fmt.Sprintf("Listed %d payments", len(result)),
	})
	return result, nil
}

// MarkPaid settles a PENDING payment
func (s *paymentService) MarkPaid(ctx context.Context, caller users.Principal, paymentID string) (*payments.Payment, error) {
	if !caller.Can(users.PermPaymentsManage) {
		return nil, fmt.Errorf("%w: settling payments requires %s", apperr.ErrForbidden, users.PermPaymentsManage)
	}

	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != payments.StatusPending {
		return nil, fmt.Errorf("%w: payment is %s", apperr.ErrInvalidState, payment.Status)
	}

	now := time.Now().UTC()
	payment.Status = payments.StatusPaid
	payment.PaidAt = &now
	payment.UpdatedAt = now
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       payment.PayeeID,
		ActionedBy:   caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourcePayment,
		ResourceID:   payment.ID,
		Description:  fmt.Sprintf("Marked payment of %s as paid", payment.Amount.StringFixed(2)),
	})
	s.logger.Info("Payment settled", "payment_id", payment.ID, "amount", payment.Amount.String())
	return payment, nil
}
