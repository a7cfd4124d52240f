package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormShiftRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormShiftRepository creates a new GORM-based ShiftRepository implementation
func NewGormShiftRepository(db *gorm.DB, logger logger.Logger) (shifts.ShiftRepository, error) {
	return &gormShiftRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormShiftRepository) Create(ctx context.Context, shift *shifts.Shift) error {
	if err := shift.Validate(); err != nil {
		return validationError(err)
	}
	if shift.Version == 0 {
		shift.Version = 1
	}

	model := &models.ShiftModel{}
	model.FromDomain(shift)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create shift")
	}

	r.logger.Info("Created shift", "shift_id", shift.ID, "home_id", shift.HomeID)
	return nil
}

func (r *gormShiftRepository) GetByID(ctx context.Context, shiftID string) (*shifts.Shift, error) {
	var model models.ShiftModel
	if err := r.db.WithContext(ctx).Where("id = ?", shiftID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("shift", shiftID)
		}
		return nil, wrapError(err, "failed to fetch shift")
	}
	return model.ToDomain(), nil
}

// List applies filter. A nil HomeIDs leaves homes unrestricted; an empty non-nil slice matches nothing.
func (r *gormShiftRepository) List(ctx context.Context, filter *shifts.Filter) ([]*shifts.Shift, int64, error) {
	if filter.HomeIDs != nil && len(filter.HomeIDs) == 0 {
		return []*shifts.Shift{}, 0, nil
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.ShiftModel{})
	if filter.HomeIDs != nil {
		dbQuery = dbQuery.Where("home_id IN ?", filter.HomeIDs)
	}
	if len(filter.Statuses) > 0 {
		dbQuery = dbQuery.Where("status IN ?", filter.Statuses)
	}
	if filter.From != nil {
		dbQuery = dbQuery.Where("start_time >= ?", *filter.From)
	}
	if filter.To != nil {
		dbQuery = dbQuery.Where("start_time < ?", *filter.To)
	}
	if filter.ApplicantID != "" {
		applied := r.db.Model(&models.ShiftApplicationModel{}).
			Select("shift_id").Where("caregiver_id = ?", filter.ApplicantID)
		if filter.ApplicationStatus != "" {
			applied = applied.Where("status = ?", string(filter.ApplicationStatus))
		}
		dbQuery = dbQuery.Where("id IN (?)", applied)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, wrapError(err, "failed to count shifts")
	}

	var modelList []*models.ShiftModel
	if err := paginate(dbQuery, filter.Limit, filter.Offset).
		Order("start_time asc").Find(&modelList).Error; err != nil {
		return nil, 0, wrapError(err, "failed to fetch shifts")
	}
	return shiftsToDomain(modelList), total, nil
}

func (r *gormShiftRepository) Update(ctx context.Context, shift *shifts.Shift) error {
	if err := shift.Validate(); err != nil {
		return validationError(err)
	}
	if err := updateShift(r.db.WithContext(ctx), shift); err != nil {
		return wrapError(err, "failed to update shift")
	}
	shift.Version++

	r.logger.Info("Updated shift", "shift_id", shift.ID, "status", shift.Status, "version", shift.Version)
	return nil
}

// updateShift writes shift only if the stored version still equals shift.Version
func updateShift(tx *gorm.DB, shift *shifts.Shift) error {
	result := tx.Model(&models.ShiftModel{}).
		Where("id = ? AND version = ?", shift.ID, shift.Version).
		Updates(map[string]interface{}{
			"start_time":     shift.StartTime,
			"end_time":       shift.EndTime,
			"hourly_rate":    shift.HourlyRate,
			"notes":          shift.Notes,
			"status":         string(shift.Status),
			"caregiver_id":   shift.CaregiverID,
			"appointment_id": shift.AppointmentID,
			"version":        shift.Version + 1,
			"updated_at":     shift.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.ShiftModel{}).Where("id = ?", shift.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("shift", shift.ID)
	}
	return fmt.Errorf("%w: shift %s was modified concurrently", apperr.ErrConflict, shift.ID)
}

func (r *gormShiftRepository) GetApplication(ctx context.Context, shiftID, caregiverID string) (*shifts.Application, error) {
	var model models.ShiftApplicationModel
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND caregiver_id = ?", shiftID, caregiverID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("application", caregiverID)
		}
		return nil, wrapError(err, "failed to fetch application")
	}
	return model.ToDomain(), nil
}

func (r *gormShiftRepository) SaveApplication(ctx context.Context, application *shifts.Application) error {
	if err := application.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.ShiftApplicationModel{}
	model.FromDomain(application)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return wrapError(err, "failed to save application")
	}

	r.logger.Info("Saved application", "shift_id", application.ShiftID, "caregiver_id", application.CaregiverID, "status", application.Status)
	return nil
}

func (r *gormShiftRepository) TransitionApplication(ctx context.Context, shift *shifts.Shift, application *shifts.Application, from ...shifts.ApplicationStatus) error {
	if err := application.Validate(); err != nil {
		return validationError(err)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateShift(tx, shift); err != nil {
			return err
		}
		return updateApplication(tx, application, from)
	})
	if err != nil {
		return wrapError(err, "failed to update application")
	}
	shift.Version++

	r.logger.Info("Updated application", "shift_id", application.ShiftID, "caregiver_id", application.CaregiverID, "status", application.Status)
	return nil
}

// updateApplication writes application only while its stored status is one of from
func updateApplication(tx *gorm.DB, application *shifts.Application, from []shifts.ApplicationStatus) error {
	statuses := make([]string, len(from))
	for i, status := range from {
		statuses[i] = string(status)
	}

	result := tx.Model(&models.ShiftApplicationModel{}).
		Where("id = ? AND status IN ?", application.ID, statuses).
		Updates(map[string]interface{}{
			"status":       string(application.Status),
			"notes":        application.Notes,
			"applied_at":   application.AppliedAt,
			"offered_at":   application.OfferedAt,
			"accepted_at":  application.AcceptedAt,
			"rejected_at":  application.RejectedAt,
			"withdrawn_at": application.WithdrawnAt,
			"updated_at":   application.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: application %s changed concurrently", apperr.ErrConflict, application.ID)
	}
	return nil
}

func (r *gormShiftRepository) ListApplications(ctx context.Context, shiftID string) ([]*shifts.Application, error) {
	var modelList []*models.ShiftApplicationModel
	if err := r.db.WithContext(ctx).Where("shift_id = ?", shiftID).
		Order("created_at asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch applications")
	}

	domainList := make([]*shifts.Application, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

// CountApplications counts applications in status on shifts of homeIDs; nil homeIDs counts all homes.
func (r *gormShiftRepository) CountApplications(ctx context.Context, homeIDs []string, status shifts.ApplicationStatus) (int64, error) {
	dbQuery := r.db.WithContext(ctx).Model(&models.ShiftApplicationModel{}).
		Where("shift_applications.status = ?", string(status))
	if homeIDs != nil {
		if len(homeIDs) == 0 {
			return 0, nil
		}
		dbQuery = dbQuery.
			Joins("JOIN shifts ON shifts.id = shift_applications.shift_id").
			Where("shifts.home_id IN ?", homeIDs)
	}

	var count int64
	if err := dbQuery.Count(&count).Error; err != nil {
		return 0, wrapError(err, "failed to count applications")
	}
	return count, nil
}

func (r *gormShiftRepository) Confirm(ctx context.Context, shift *shifts.Shift, chosen *shifts.Application, appointment *appointments.Appointment) error {
	if err := shift.Validate(); err != nil {
		return validationError(err)
	}
	if err := appointment.Validate(); err != nil {
		return validationError(err)
	}

	appointmentModel := &models.AppointmentModel{}
	appointmentModel.FromDomain(appointment)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(appointmentModel).Error; err != nil {
			return err
		}
		if err := updateShift(tx, shift); err != nil {
			return err
		}
		return updateApplication(tx, chosen, []shifts.ApplicationStatus{shifts.ApplicationAccepted})
	})
	if err != nil {
		return wrapError(err, "failed to confirm shift")
	}
	shift.Version++

	r.logger.Info("Confirmed shift", "shift_id", shift.ID, "appointment_id", appointment.ID)
	return nil
}

func (r *gormShiftRepository) Cancel(ctx context.Context, shift *shifts.Shift, reason string) error {
	if err := shift.Validate(); err != nil {
		return validationError(err)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateShift(tx, shift); err != nil {
			return err
		}
		if shift.AppointmentID == nil {
			return nil
		}
		return tx.Model(&models.AppointmentModel{}).
			Where("id = ?", *shift.AppointmentID).
			Updates(map[string]interface{}{
				"status":        string(appointments.StatusCancelled),
				"cancel_reason": reason,
				"cancelled_at":  shift.UpdatedAt,
				"updated_at":    shift.UpdatedAt,
			}).Error
	})
	if err != nil {
		return wrapError(err, "failed to cancel shift")
	}
	shift.Version++

	r.logger.Info("Cancelled shift", "shift_id", shift.ID)
	return nil
}

func (r *gormShiftRepository) Complete(ctx context.Context, shift *shifts.Shift, payment *payments.Payment) error {
	if err := shift.Validate(); err != nil {
		return validationError(err)
	}
	if err := payment.Validate(); err != nil {
		return validationError(err)
	}

	paymentModel := &models.PaymentModel{}
	paymentModel.FromDomain(payment)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateShift(tx, shift); err != nil {
			return err
		}
		if shift.AppointmentID != nil {
			if err := tx.Model(&models.AppointmentModel{}).
				Where("id = ?", *shift.AppointmentID).
				Updates(map[string]interface{}{
					"status":     string(appointments.StatusCompleted),
					"updated_at": shift.UpdatedAt,
				}).Error; err != nil {
				return err
			}
		}
		return tx.Create(paymentModel).Error
	})
	if err != nil {
		return wrapError(err, "failed to complete shift")
	}
	shift.Version++

	r.logger.Info("Completed shift", "shift_id", shift.ID, "payment_id", payment.ID, "amount", payment.Amount.String())
	return nil
}

func (r *gormShiftRepository) ListCompletedByCaregiver(ctx context.Context, caregiverID string) ([]*shifts.Shift, error) {
	var modelList []*models.ShiftModel
	if err := r.db.WithContext(ctx).
		Where("caregiver_id = ? AND status = ?", caregiverID, string(shifts.StatusCompleted)).
		Order("start_time desc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch completed shifts")
	}
	return shiftsToDomain(modelList), nil
}

func shiftsToDomain(modelList []*models.ShiftModel) []*shifts.Shift {
	domainList := make([]*shifts.Shift, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
