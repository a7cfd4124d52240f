package app

import (
	"context"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

const defaultCalendarLimit = 100

// appointmentService implements appointments.AppointmentService
type appointmentService struct {
	repo     appointments.AppointmentRepository
	userRepo users.UserRepository
	notifier notifications.NotificationService
	recorder audit.Recorder
	logger   logger.Logger
	now      func() time.Time
}

// NewAppointmentService creates a new instance of AppointmentService
func NewAppointmentService(
	repo appointments.AppointmentRepository,
	userRepo users.UserRepository,
	notifier notifications.NotificationService,
	recorder audit.Recorder,
	logger logger.Logger,
) (appointments.AppointmentService, error) {
	return &appointmentService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		recorder: recorder,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create books a CONFIRMED appointment after checking every involved user's calendar
func (s *appointmentService) Create(ctx context.Context, caller users.Principal, input *appointments.CreateInput) (*appointments.Appointment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	appointment := &appointments.Appointment{
		ID:          uuid.NewString(),
		Type:        input.Type,
		Title:       sanitizeText(input.Title),
		Description: sanitizeText(input.Description),
		Status:      appointments.StatusConfirmed,
		StartTime:   input.StartTime.UTC(),
		EndTime:     input.EndTime.UTC(),
		Location:    sanitizeText(input.Location),
		CreatedBy:   caller.ID,
		HomeID:      input.HomeID,
		ResidentID:  input.ResidentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	seen := map[string]bool{caller.ID: true}
	for _, id := range input.ParticipantIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		appointment.Participants = append(appointment.Participants, appointments.Participant{
			UserID: id,
			Status: appointments.ParticipantPending,
		})
	}

	if err := s.checkConflicts(ctx, appointment.UserIDs(), appointment.StartTime, appointment.EndTime, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceAppointment,
		ResourceID:   appointment.ID,
		Description:  fmt.Sprintf("Booked %s appointment", appointment.Type),
	})
	for _, p := range appointment.Participants {
		s.notify(ctx, p.UserID, "Appointment invitation",
			fmt.Sprintf("You were invited to %q on %s.", appointment.Title, appointment.StartTime.Format(time.RFC1123)), appointment)
	}
	return appointment, nil
}

// checkConflicts fails with *appointments.ConflictError when any of userIDs is busy
func (s *appointmentService) checkConflicts(ctx context.Context, userIDs []string, start, end time.Time, excludeID string) error {
	conflicts, err := s.repo.FindConflicts(ctx, userIDs, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &appointments.ConflictError{Conflicts: conflicts}
	}
	return nil
}

func (s *appointmentService) List(ctx context.Context, caller users.Principal, query *appointments.Query) ([]*appointments.Appointment, error) {
	if query == nil {
		query = &appointments.Query{}
	}
	if query.Limit == 0 {
		query.Limit = defaultCalendarLimit
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListForUser(ctx, caller.ID, query)
}

func (s *appointmentService) Get(ctx context.Context, caller users.Principal, appointmentID string) (*appointments.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.Involves(caller.ID) && !caller.Is(users.RoleAdmin) {
		return nil, fmt.Errorf("%w: not involved in appointment %s", apperr.ErrForbidden, appointmentID)
	}
	return appointment, nil
}

// Reschedule moves the appointment after checking the new window against every
// user still attending, ignoring the appointment itself
func (s *appointmentService) Reschedule(ctx context.Context, caller users.Principal, appointmentID string, start, end time.Time) (*appointments.Appointment, error) {
	if err := appointments.ValidateWindow(start, end); err != nil {
		return nil, err
	}
	appointment, err := s.editable(ctx, caller, appointmentID)
	if err != nil {
		return nil, err
	}

	attendees := []string{appointment.CreatedBy}
	for _, p := range appointment.Participants {
		attendees = append(attendees, p.UserID)
	}
	if err := s.checkConflicts(ctx, attendees, start.UTC(), end.UTC(), appointment.ID); err != nil {
		return nil, err
	}

	previous := appointment.StartTime
	appointment.StartTime = start.UTC()
	appointment.EndTime = end.UTC()
	appointment.Status = appointments.StatusRescheduled
	appointment.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceAppointment,
		ResourceID:   appointment.ID,
		Description:  fmt.Sprintf("Rescheduled appointment: start: %s → %s", previous.Format(time.RFC3339), appointment.StartTime.Format(time.RFC3339)),
	})
	for _, id := range attendees[1:] {
		s.notify(ctx, id, "Appointment rescheduled",
			fmt.Sprintf("%q moved to %s.", appointment.Title, appointment.StartTime.Format(time.RFC1123)), appointment)
	}
	return appointment, nil
}

// editable loads an appointment the caller created (or any, for ADMIN) that is not finished
func (s *appointmentService) editable(ctx context.Context, caller users.Principal, appointmentID string) (*appointments.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.CreatedBy != caller.ID && !caller.Is(users.RoleAdmin) {
		return nil, fmt.Errorf("%w: only the organizer can change appointment %s", apperr.ErrForbidden, appointmentID)
	}
	if appointment.Status.Terminal() {
		return nil, fmt.Errorf("%w: appointment is %s", apperr.ErrInvalidState, appointment.Status)
	}
	return appointment, nil
}

// Cancel is open to the organizer and every participant
func (s *appointmentService) Cancel(ctx context.Context, caller users.Principal, appointmentID, reason string) (*appointments.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appointment.Involves(caller.ID) && !caller.Is(users.RoleAdmin) {
		return nil, fmt.Errorf("%w: not involved in appointment %s", apperr.ErrForbidden, appointmentID)
	}
	if appointment.Status.Terminal() {
		return nil, fmt.Errorf("%w: appointment is %s", apperr.ErrInvalidState, appointment.Status)
	}

	now := s.now()
	appointment.Status = appointments.StatusCancelled
	appointment.CancelReason = sanitizeText(reason)
	appointment.CancelledAt = &now
	appointment.UpdatedAt = now
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceAppointment,
		ResourceID:   appointment.ID,
		Description:  "Cancelled appointment",
		Metadata:     map[string]interface{}{"reason": appointment.CancelReason},
	})
	for _, id := range appointment.UserIDs() {
		if id != caller.ID {
			s.notify(ctx, id, "Appointment cancelled", fmt.Sprintf("%q was cancelled.", appointment.Title), appointment)
		}
	}
	return appointment, nil
}

func (s *appointmentService) Complete(ctx context.Context, caller users.Principal, appointmentID string) (*appointments.Appointment, error) {
	appointment, err := s.editable(ctx, caller, appointmentID)
	if err != nil {
		return nil, err
	}

	appointment.Status = appointments.StatusCompleted
	appointment.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceAppointment,
		ResourceID:   appointment.ID,
		Description:  "Completed appointment",
	})
	return appointment, nil
}

// Respond records a participant's answer. Accepting re-checks the caller's calendar.
func (s *appointmentService) Respond(ctx context.Context, caller users.Principal, appointmentID string, answer appointments.ParticipantStatus) (*appointments.Appointment, error) {
	if answer != appointments.ParticipantAccepted && answer != appointments.ParticipantDeclined {
		return nil, fmt.Errorf("%w: answer must be ACCEPTED or DECLINED", apperr.ErrValidation)
	}

	appointment, err := s.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	participant := appointment.Participant(caller.ID)
	if participant == nil {
		return nil, fmt.Errorf("%w: not invited to appointment %s", apperr.ErrForbidden, appointmentID)
	}
	if appointment.Status.Terminal() {
		return nil, fmt.Errorf("%w: appointment is %s", apperr.ErrInvalidState, appointment.Status)
	}
	if answer == appointments.ParticipantAccepted {
		if err := s.checkConflicts(ctx, []string{caller.ID}, appointment.StartTime, appointment.EndTime, appointment.ID); err != nil {
			return nil, err
		}
	}

	participant.Status = answer
	appointment.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.notify(ctx, appointment.CreatedBy, "Invitation answered",
		fmt.Sprintf("A participant answered %s for %q.", answer, appointment.Title), appointment)
	return appointment, nil
}

// CheckAvailability reports whether userID is free and inside their published hours
func (s *appointmentService) CheckAvailability(ctx context.Context, userID string, start, end time.Time) (*appointments.AvailabilityResult, error) {
	if err := appointments.ValidateWindow(start, end); err != nil {
		return nil, err
	}

	conflicts, err := s.repo.FindConflicts(ctx, []string{userID}, start.UTC(), end.UTC(), "")
	if err != nil {
		return nil, err
	}
	slots, err := s.repo.ListAvailability(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &appointments.AvailabilityResult{
		UserID:    userID,
		Start:     start.UTC(),
		End:       end.UTC(),
		Available: len(conflicts) == 0 && appointments.Available(slots, start, end),
		Conflicts: conflicts,
	}, nil
}

// FindSlots lists windows of the requested duration in which no queried user is booked
func (s *appointmentService) FindSlots(ctx context.Context, query *appointments.SlotQuery) ([]appointments.TimeSlot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conflicts, err := s.repo.FindConflicts(ctx, query.UserIDs, query.From.UTC(), query.To.UTC(), "")
	if err != nil {
		return nil, err
	}
	busy := make([]appointments.TimeSlot, len(conflicts))
	for i, c := range conflicts {
		busy[i] = appointments.TimeSlot{Start: c.StartTime, End: c.EndTime}
	}
	return appointments.CandidateSlots(query, busy), nil
}

func (s *appointmentService) SetAvailability(ctx context.Context, caller users.Principal, slots []*appointments.AvailabilitySlot) ([]*appointments.AvailabilitySlot, error) {
	for _, slot := range slots {
		slot.ID = uuid.NewString()
		slot.UserID = caller.ID
	}
	if err := s.repo.ReplaceAvailability(ctx, caller.ID, slots); err != nil {
		return nil, err
	}
	s.logger.Info("Availability replaced", "user_id", caller.ID, "slots", len(slots))
	return s.repo.ListAvailability(ctx, caller.ID)
}

func (s *appointmentService) ListAvailability(ctx context.Context, userID string) ([]*appointments.AvailabilitySlot, error) {
	return s.repo.ListAvailability(ctx, userID)
}

func (s *appointmentService) notify(ctx context.Context, userID, title, message string, appointment *appointments.Appointment) {
	_, err := s.notifier.Notify(ctx, userID, notifications.TypeSystem, title, message,
		map[string]string{"appointmentId": appointment.ID})
	if err != nil {
		s.logger.Warn("Failed to notify about appointment", "appointment_id", appointment.ID, "error", err)
	}
}
