package persistence

import (
	"context"
	"errors"

	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPaymentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPaymentRepository creates a new GORM-based PaymentRepository implementation.
// Payments are created by the shift repository when a shift completes.
func NewGormPaymentRepository(db *gorm.DB, logger logger.Logger) (payments.PaymentRepository, error) {
	return &gormPaymentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPaymentRepository) GetByID(ctx context.Context, paymentID string) (*payments.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("payment", paymentID)
		}
		return nil, wrapError(err, "failed to fetch payment")
	}
	return model.ToDomain(), nil
}

func (r *gormPaymentRepository) List(ctx context.Context, query *payments.Query) ([]*payments.Payment, error) {
	if err := query.Validate(); err != nil {
		return nil, validationError(err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.PaymentModel{})
	if query.PayeeID != "" {
		dbQuery = dbQuery.Where("payee_id = ?", query.PayeeID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", string(query.Status))
	}

	var modelList []*models.PaymentModel
	if err := paginate(dbQuery, query.Limit, query.Offset).
		Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch payments")
	}
	return paymentsToDomain(modelList), nil
}

func (r *gormPaymentRepository) ListByShifts(ctx context.Context, shiftIDs []string) ([]*payments.Payment, error) {
	if len(shiftIDs) == 0 {
		return []*payments.Payment{}, nil
	}

	var modelList []*models.PaymentModel
	if err := r.db.WithContext(ctx).Where("shift_id IN ?", shiftIDs).
		Order("created_at desc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch payments")
	}
	return paymentsToDomain(modelList), nil
}

func (r *gormPaymentRepository) Update(ctx context.Context, payment *payments.Payment) error {
	if err := payment.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.PaymentModel{}
	model.FromDomain(payment)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return wrapError(err, "failed to update payment")
	}

	r.logger.Info("Updated payment", "payment_id", payment.ID, "status", payment.Status)
	return nil
}

func paymentsToDomain(modelList []*models.PaymentModel) []*payments.Payment {
	domainList := make([]*payments.Payment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
