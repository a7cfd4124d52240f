package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAppointmentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAppointmentRepository creates a new GORM-based AppointmentRepository implementation
func NewGormAppointmentRepository(db *gorm.DB, logger logger.Logger) (appointments.AppointmentRepository, error) {
	return &gormAppointmentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAppointmentRepository) Create(ctx context.Context, appointment *appointments.Appointment) error {
	if err := appointment.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.AppointmentModel{}
	model.FromDomain(appointment)

	// participants are inserted through the association
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return wrapError(err, "failed to create appointment")
	}

	r.logger.Info("Created appointment", "appointment_id", appointment.ID, "type", appointment.Type)
	return nil
}

func (r *gormAppointmentRepository) GetByID(ctx context.Context, appointmentID string) (*appointments.Appointment, error) {
	var model models.AppointmentModel
	if err := r.db.WithContext(ctx).Preload("Participants").
		Where("id = ?", appointmentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("appointment", appointmentID)
		}
		return nil, wrapError(err, "failed to fetch appointment")
	}
	return model.ToDomain(), nil
}

func (r *gormAppointmentRepository) ListForUser(ctx context.Context, userID string, query *appointments.Query) ([]*appointments.Appointment, error) {
	if err := query.Validate(); err != nil {
		return nil, validationError(err)
	}

	participating := r.db.Model(&models.AppointmentParticipantModel{}).
		Select("appointment_id").Where("user_id = ?", userID)

	dbQuery := r.db.WithContext(ctx).Preload("Participants").
		Where("created_by = ? OR id IN (?)", userID, participating)
	if query.From != nil {
		dbQuery = dbQuery.Where("end_time > ?", *query.From)
	}
	if query.To != nil {
		dbQuery = dbQuery.Where("start_time < ?", *query.To)
	}
	if len(query.Types) > 0 {
		dbQuery = dbQuery.Where("type IN ?", query.Types)
	}
	if len(query.Statuses) > 0 {
		dbQuery = dbQuery.Where("status IN ?", query.Statuses)
	}
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}

	var modelList []*models.AppointmentModel
	if err := dbQuery.Order("start_time asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch appointments")
	}

	domainList := make([]*appointments.Appointment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormAppointmentRepository) Update(ctx context.Context, appointment *appointments.Appointment) error {
	if err := appointment.Validate(); err != nil {
		return validationError(err)
	}

	model := &models.AppointmentModel{}
	model.FromDomain(appointment)
	participants := model.Participants

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Participants").Save(model)
		if result.Error != nil {
			return result.Error
		}
		if err := tx.Where("appointment_id = ?", appointment.ID).
			Delete(&models.AppointmentParticipantModel{}).Error; err != nil {
			return err
		}
		if len(participants) == 0 {
			return nil
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		return wrapError(err, "failed to update appointment")
	}

	r.logger.Info("Updated appointment", "appointment_id", appointment.ID, "status", appointment.Status)
	return nil
}

func (r *gormAppointmentRepository) FindConflicts(ctx context.Context, userIDs []string, start, end time.Time, excludeID string) ([]appointments.Conflict, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	participating := r.db.Model(&models.AppointmentParticipantModel{}).
		Select("appointment_id").
		Where("user_id IN ?", userIDs)

	dbQuery := r.db.WithContext(ctx).Preload("Participants").
		Where("status <> ?", string(appointments.StatusCancelled)).
		Where("start_time < ? AND end_time > ?", end, start).
		Where("created_by IN ? OR id IN (?)", userIDs, participating)
	if excludeID != "" {
		dbQuery = dbQuery.Where("id <> ?", excludeID)
	}

	var modelList []*models.AppointmentModel
	if err := dbQuery.Order("start_time asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch conflicting appointments")
	}

	var conflicts []appointments.Conflict
	for _, model := range modelList {
		appointment := model.ToDomain()
		for _, userID := range userIDs {
			if !busy(appointment, userID) {
				continue
			}
			conflicts = append(conflicts, appointments.Conflict{
				AppointmentID: appointment.ID,
				UserID:        userID,
				Title:         appointment.Title,
				StartTime:     appointment.StartTime,
				EndTime:       appointment.EndTime,
			})
		}
	}
	return conflicts, nil
}

// busy reports whether the appointment blocks userID's calendar. Any
// participant row counts, whatever its answer.
func busy(appointment *appointments.Appointment, userID string) bool {
	return appointment.CreatedBy == userID || appointment.Participant(userID) != nil
}

func (r *gormAppointmentRepository) ReplaceAvailability(ctx context.Context, userID string, slots []*appointments.AvailabilitySlot) error {
	modelList := make([]*models.AvailabilitySlotModel, len(slots))
	for i, slot := range slots {
		if err := slot.Validate(); err != nil {
			return validationError(err)
		}
		modelList[i] = &models.AvailabilitySlotModel{}
		modelList[i].FromDomain(slot)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.AvailabilitySlotModel{}).Error; err != nil {
			return err
		}
		if len(modelList) == 0 {
			return nil
		}
		return tx.Create(&modelList).Error
	})
	if err != nil {
		return wrapError(err, "failed to replace availability")
	}

	r.logger.Info("Replaced availability", "user_id", userID, "slots", len(slots))
	return nil
}

func (r *gormAppointmentRepository) ListAvailability(ctx context.Context, userID string) ([]*appointments.AvailabilitySlot, error) {
	var modelList []*models.AvailabilitySlotModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("day_of_week asc, start_minute asc").Find(&modelList).Error; err != nil {
		return nil, wrapError(err, "failed to fetch availability")
	}

	domainList := make([]*appointments.AvailabilitySlot, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}
