package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShiftObserver is told about every successful shift transition
type ShiftObserver interface {
	ShiftTransition(transition string)
}

type noopShiftObserver struct{}

func (noopShiftObserver) ShiftTransition(string) {}

// shiftService implements shifts.ShiftService
type shiftService struct {
	repo            shifts.ShiftRepository
	homeRepo        homes.HomeRepository
	homes           homes.HomeService
	appointmentRepo appointments.AppointmentRepository
	paymentRepo     payments.PaymentRepository
	notifier        notifications.NotificationService
	recorder        audit.Recorder
	observer        ShiftObserver
	logger          logger.Logger
}

// NewShiftService creates a new instance of ShiftService. observer may be nil.
func NewShiftService(
	repo shifts.ShiftRepository,
	homeRepo homes.HomeRepository,
	homeService homes.HomeService,
	appointmentRepo appointments.AppointmentRepository,
	paymentRepo payments.PaymentRepository,
	notifier notifications.NotificationService,
	recorder audit.Recorder,
	observer ShiftObserver,
	logger logger.Logger,
) (shifts.ShiftService, error) {
	if observer == nil {
		observer = noopShiftObserver{}
	}
	return &shiftService{
		repo:            repo,
		homeRepo:        homeRepo,
		homes:           homeService,
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		notifier:        notifier,
		recorder:        recorder,
		observer:        observer,
		logger:          logger,
	}, nil
}

// List scopes the query by role: operators see their homes, caregivers see open
// shifts unless they ask for their own applications.
func (s *shiftService) List(ctx context.Context, caller users.Principal, query *shifts.Query) ([]*shifts.Shift, int64, error) {
	if query == nil {
		query = shifts.NewQuery()
	}
	if query.Limit == 0 {
		query.Limit = shifts.DefaultListLimit
	}
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}

	filter := &shifts.Filter{
		Statuses: query.Statuses,
		From:     query.From,
		To:       query.To,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if query.HomeID != "" {
		filter.HomeIDs = []string{query.HomeID}
	}

	switch {
	case caller.Is(users.RoleAdmin, users.RoleStaff):
	case caller.Is(users.RoleOperator):
		homeIDs, err := s.homeRepo.ListHomeIDsByOperator(ctx, caller.ID)
		if err != nil {
			return nil, 0, err
		}
		if query.HomeID != "" {
			if !contains(homeIDs, query.HomeID) {
				return nil, 0, fmt.Errorf("%w: home %s is not managed by caller", apperr.ErrForbidden, query.HomeID)
			}
		} else {
			if len(homeIDs) == 0 {
				return []*shifts.Shift{}, 0, nil
			}
			filter.HomeIDs = homeIDs
		}
	case caller.Is(users.RoleCaregiver):
		if query.MyApplications {
			filter.ApplicantID = caller.ID
			filter.ApplicationStatus = query.ApplicationStatus
		} else if len(filter.Statuses) == 0 {
			filter.Statuses = []shifts.Status{shifts.StatusOpen}
		}
	default:
		return nil, 0, fmt.Errorf("%w: role %s cannot browse shifts", apperr.ErrForbidden, caller.Role)
	}

	return s.repo.List(ctx, filter)
}

func (s *shiftService) Create(ctx context.Context, caller users.Principal, input *shifts.CreateInput) (*shifts.Shift, error) {
	if !caller.Can(users.PermShiftsCreate) {
		return nil, fmt.Errorf("%w: posting shifts requires %s", apperr.ErrForbidden, users.PermShiftsCreate)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.homes.AuthorizeHome(ctx, caller, input.HomeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	shift := &shifts.Shift{
		ID:         uuid.NewString(),
		HomeID:     input.HomeID,
		StartTime:  input.StartTime.UTC(),
		EndTime:    input.EndTime.UTC(),
		HourlyRate: input.HourlyRate,
		Notes:      sanitizeText(input.Notes),
		Status:     shifts.StatusOpen,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceShift,
		ResourceID:   shift.ID,
		Description:  fmt.Sprintf("Posted shift at %s/h", shift.HourlyRate.StringFixed(2)),
		Metadata:     map[string]interface{}{"homeId": shift.HomeID},
	})
	s.observer.ShiftTransition("create")
	return shift, nil
}

// Get returns any shift to staff roles; caregivers see open shifts and the ones they hold or applied to
func (s *shiftService) Get(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Shift, error) {
	shift, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	switch {
	case caller.Is(users.RoleAdmin, users.RoleStaff):
		return shift, nil
	case caller.Is(users.RoleOperator):
		if _, err := s.homes.AuthorizeHome(ctx, caller, shift.HomeID); err != nil {
			return nil, err
		}
		return shift, nil
	case caller.Is(users.RoleCaregiver):
		if shift.Status == shifts.StatusOpen || shift.AssignedTo(caller.ID) {
			return shift, nil
		}
		if _, err := s.repo.GetApplication(ctx, shift.ID, caller.ID); err == nil {
			return shift, nil
		}
	}
	return nil, fmt.Errorf("%w: shift %s is not visible to caller", apperr.ErrForbidden, shiftID)
}

// manage loads a shift whose home the caller operates
func (s *shiftService) manage(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Shift, *homes.Home, error) {
	shift, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, nil, err
	}
	home, err := s.homes.AuthorizeHome(ctx, caller, shift.HomeID)
	if err != nil {
		return nil, nil, err
	}
	return shift, home, nil
}

func requireCaregiver(caller users.Principal) error {
	if !caller.Can(users.PermShiftsApply) || caller.Is(users.RoleAdmin) {
		return fmt.Errorf("%w: only caregivers can do this", apperr.ErrForbidden)
	}
	return nil
}

// Apply creates (or revives a withdrawn or rejected) application and tells the operator
func (s *shiftService) Apply(ctx context.Context, caller users.Principal, shiftID, notes string) (*shifts.Application, error) {
	if err := requireCaregiver(caller); err != nil {
		return nil, err
	}
	shift, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if err := shift.RequireStatus("apply to", shifts.StatusOpen); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	application, err := s.repo.GetApplication(ctx, shiftID, caller.ID)
	switch {
	case err == nil:
		if application.Status.Live() {
			return nil, fmt.Errorf("%w: already applied to shift %s", apperr.ErrConflict, shiftID)
		}
	case errors.Is(err, apperr.ErrNotFound):
		application = &shifts.Application{
			ID:          uuid.NewString(),
			ShiftID:     shiftID,
			CaregiverID: caller.ID,
			CreatedAt:   now,
		}
	default:
		return nil, err
	}

	application.Notes = sanitizeText(notes)
	application.Transition(shifts.ApplicationApplied, now)
	if err := s.repo.SaveApplication(ctx, application); err != nil {
		return nil, err
	}

	s.observer.ShiftTransition("apply")
	if home, err := s.homeRepo.GetHomeByID(ctx, shift.HomeID); err == nil {
		s.notify(ctx, home.OperatorID, notifications.TypeShiftApplication, "New shift application",
			fmt.Sprintf("A caregiver applied to the %s shift at %s.", shift.StartTime.Format(time.RFC1123), home.Name), shift.ID)
	} else {
		s.logger.Warn("Failed to load home for shift notification", "shift_id", shift.ID, "error", err)
	}
	return application, nil
}

func (s *shiftService) Withdraw(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Application, error) {
	if err := requireCaregiver(caller); err != nil {
		return nil, err
	}
	shift, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	application, err := s.repo.GetApplication(ctx, shiftID, caller.ID)
	if err != nil {
		return nil, err
	}
	if err := application.RequireStatus("withdraw", shifts.ApplicationApplied, shifts.ApplicationOffered); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	application.Transition(shifts.ApplicationWithdrawn, now)
	shift.UpdatedAt = now
	err = s.repo.TransitionApplication(ctx, shift, application, shifts.ApplicationApplied, shifts.ApplicationOffered)
	if err != nil {
		return nil, err
	}
	s.observer.ShiftTransition("withdraw")
	return application, nil
}

// Offer invites a caregiver, creating the application when they never applied
func (s *shiftService) Offer(ctx context.Context, caller users.Principal, shiftID, caregiverID, notes string) (*shifts.Application, error) {
	shift, home, err := s.manage(ctx, caller, shiftID)
	if err != nil {
		return nil, err
	}
	if err := shift.RequireStatus("offer", shifts.StatusOpen); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	application, err := s.repo.GetApplication(ctx, shiftID, caregiverID)
	switch {
	case err == nil:
		if err := application.RequireStatus("offer", shifts.ApplicationApplied, shifts.ApplicationOffered,
			shifts.ApplicationWithdrawn, shifts.ApplicationRejected); err != nil {
			return nil, err
		}
	case errors.Is(err, apperr.ErrNotFound):
		application = &shifts.Application{
			ID:          uuid.NewString(),
			ShiftID:     shiftID,
			CaregiverID: caregiverID,
			CreatedAt:   now,
		}
	default:
		return nil, err
	}

	if notes != "" {
		application.Notes = sanitizeText(notes)
	}
	application.Transition(shifts.ApplicationOffered, now)
	if err := s.repo.SaveApplication(ctx, application); err != nil {
		return nil, err
	}

	s.observer.ShiftTransition("offer")
	s.notify(ctx, caregiverID, notifications.TypeShiftOffer, "Shift offer",
		fmt.Sprintf("%s offered you a shift on %s.", home.Name, shift.StartTime.Format(time.RFC1123)), shift.ID)
	return application, nil
}

func (s *shiftService) Reject(ctx context.Context, caller users.Principal, shiftID, caregiverID string) (*shifts.Application, error) {
	shift, _, err := s.manage(ctx, caller, shiftID)
	if err != nil {
		return nil, err
	}
	application, err := s.repo.GetApplication(ctx, shiftID, caregiverID)
	if err != nil {
		return nil, err
	}
	if err := application.RequireStatus("reject", shifts.ApplicationApplied, shifts.ApplicationOffered); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	application.Transition(shifts.ApplicationRejected, now)
	shift.UpdatedAt = now
	err = s.repo.TransitionApplication(ctx, shift, application, shifts.ApplicationApplied, shifts.ApplicationOffered)
	if err != nil {
		return nil, err
	}
	s.observer.ShiftTransition("reject")
	return application, nil
}

func (s *shiftService) Accept(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Application, error) {
	if err := requireCaregiver(caller); err != nil {
		return nil, err
	}
	shift, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if err := shift.RequireStatus("accept", shifts.StatusOpen); err != nil {
		return nil, err
	}
	application, err := s.repo.GetApplication(ctx, shiftID, caller.ID)
	if err != nil {
		return nil, err
	}
	if err := application.RequireStatus("accept", shifts.ApplicationOffered); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	application.Transition(shifts.ApplicationAccepted, now)
	shift.UpdatedAt = now
	if err := s.repo.TransitionApplication(ctx, shift, application, shifts.ApplicationOffered); err != nil {
		return nil, err
	}
	s.observer.ShiftTransition("accept")
	return application, nil
}

// Confirm books the caregiver: the appointment insert, the versioned shift update
// and the still-ACCEPTED check on the application commit together, so a racing
// confirmation or withdrawal leaves one winner.
func (s *shiftService) Confirm(ctx context.Context, caller users.Principal, shiftID, caregiverID string) (*shifts.Shift, error) {
	shift, home, err := s.manage(ctx, caller, shiftID)
	if err != nil {
		return nil, err
	}
	if err := shift.RequireStatus("confirm", shifts.StatusOpen); err != nil {
		return nil, err
	}
	applications, err := s.repo.ListApplications(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	chosen, err := shifts.ChooseAccepted(applications, caregiverID)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.appointmentRepo.FindConflicts(ctx, []string{chosen.CaregiverID}, shift.StartTime, shift.EndTime, "")
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &appointments.ConflictError{Conflicts: conflicts}
	}

	now := time.Now().UTC()
	homeID := shift.HomeID
	appointment := &appointments.Appointment{
		ID:        uuid.NewString(),
		Type:      appointments.TypeCaregiverShift,
		Title:     "Shift at " + home.Name,
		Status:    appointments.StatusConfirmed,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
		Location:  home.Address,
		CreatedBy: caller.ID,
		HomeID:    &homeID,
		Participants: []appointments.Participant{
			{UserID: chosen.CaregiverID, Status: appointments.ParticipantAccepted},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	caregiver := chosen.CaregiverID
	shift.Status = shifts.StatusAssigned
	shift.CaregiverID = &caregiver
	shift.AppointmentID = &appointment.ID
	shift.UpdatedAt = now
	chosen.UpdatedAt = now
	if err := s.repo.Confirm(ctx, shift, chosen, appointment); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceShift,
		ResourceID:   shift.ID,
		Description:  "Confirmed caregiver for shift",
		Metadata:     map[string]interface{}{"caregiverId": caregiver, "appointmentId": appointment.ID},
	})
	s.observer.ShiftTransition("confirm")

	message := fmt.Sprintf("Shift at %s on %s is confirmed.", home.Name, shift.StartTime.Format(time.RFC1123))
	s.notify(ctx, caregiver, notifications.TypeShiftConfirmed, "Shift confirmed", message, shift.ID)
	if home.OperatorID != caller.ID {
		s.notify(ctx, home.OperatorID, notifications.TypeShiftConfirmed, "Shift confirmed", message, shift.ID)
	}
	return shift, nil
}

func (s *shiftService) Start(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Shift, error) {
	shift, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if !shift.AssignedTo(caller.ID) {
		return nil, fmt.Errorf("%w: shift %s is not assigned to caller", apperr.ErrForbidden, shiftID)
	}
	if err := shift.RequireStatus("start", shifts.StatusAssigned); err != nil {
		return nil, err
	}

	shift.Status = shifts.StatusInProgress
	shift.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, err
	}
	s.observer.ShiftTransition("start")
	return shift, nil
}

func (s *shiftService) Cancel(ctx context.Context, caller users.Principal, shiftID, reason string) (*shifts.Shift, error) {
	shift, _, err := s.manage(ctx, caller, shiftID)
	if err != nil {
		return nil, err
	}
	if err := shift.RequireStatus("cancel", shifts.StatusOpen, shifts.StatusAssigned); err != nil {
		return nil, err
	}

	reason = sanitizeText(reason)
	shift.Status = shifts.StatusCanceled
	shift.Notes = shifts.AppendCancelReason(shift.Notes, reason)
	shift.UpdatedAt = time.Now().UTC()
	if err := s.repo.Cancel(ctx, shift, reason); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceShift,
		ResourceID:   shift.ID,
		Description:  "Cancelled shift",
		Metadata:     map[string]interface{}{"reason": reason},
	})
	s.observer.ShiftTransition("cancel")
	if shift.CaregiverID != nil {
		s.notify(ctx, *shift.CaregiverID, notifications.TypeSystem, "Shift cancelled",
			fmt.Sprintf("The shift on %s was cancelled.", shift.StartTime.Format(time.RFC1123)), shift.ID)
	}
	return shift, nil
}

// Complete closes the shift and creates a PENDING payment of rate × rounded hours
func (s *shiftService) Complete(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Shift, *payments.Payment, error) {
	shift, _, err := s.manage(ctx, caller, shiftID)
	if err != nil {
		return nil, nil, err
	}
	if err := shift.RequireStatus("complete", shifts.StatusAssigned, shifts.StatusInProgress); err != nil {
		return nil, nil, err
	}
	if shift.CaregiverID == nil {
		return nil, nil, fmt.Errorf("%w: shift %s has no caregiver", apperr.ErrInvalidState, shiftID)
	}

	now := time.Now().UTC()
	shiftRef := shift.ID
	payment := &payments.Payment{
		ID:        uuid.NewString(),
		PayeeID:   *shift.CaregiverID,
		ShiftID:   &shiftRef,
		Type:      payments.TypeCaregiverPayment,
		Amount:    shift.Pay(),
		Status:    payments.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	shift.Status = shifts.StatusCompleted
	shift.UpdatedAt = now
	if err := s.repo.Complete(ctx, shift, payment); err != nil {
		return nil, nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceShift,
		ResourceID:   shift.ID,
		Description:  fmt.Sprintf("Completed shift: %s hours, payment %s", shift.Hours().String(), payment.Amount.StringFixed(2)),
		Metadata:     map[string]interface{}{"paymentId": payment.ID},
	})
	s.observer.ShiftTransition("complete")
	return shift, payment, nil
}

func (s *shiftService) ListApplications(ctx context.Context, caller users.Principal, shiftID string) ([]*shifts.Application, error) {
	if _, _, err := s.manage(ctx, caller, shiftID); err != nil {
		return nil, err
	}
	return s.repo.ListApplications(ctx, shiftID)
}

// Timesheets sums the caller's completed shifts and the payments they produced
func (s *shiftService) Timesheets(ctx context.Context, caller users.Principal) (*shifts.Timesheet, error) {
	if !caller.Is(users.RoleCaregiver) {
		return nil, fmt.Errorf("%w: timesheets are for caregivers", apperr.ErrForbidden)
	}

	completed, err := s.repo.ListCompletedByCaregiver(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	sheet := &shifts.Timesheet{Shifts: completed, TotalHours: decimal.Zero, TotalPay: decimal.Zero}
	if len(completed) == 0 {
		sheet.Payments = []*payments.Payment{}
		return sheet, nil
	}

	ids := make([]string, len(completed))
	for i, shift := range completed {
		ids[i] = shift.ID
		sheet.TotalHours = sheet.TotalHours.Add(shift.Hours())
	}
	if sheet.Payments, err = s.paymentRepo.ListByShifts(ctx, ids); err != nil {
		return nil, err
	}
	for _, payment := range sheet.Payments {
		if payment.Status != payments.StatusCancelled {
			sheet.TotalPay = sheet.TotalPay.Add(payment.Amount)
		}
	}
	return sheet, nil
}

func (s *shiftService) notify(ctx context.Context, userID string, kind notifications.Type, title, message, shiftID string) {
	if _, err := s.notifier.Notify(ctx, userID, kind, title, message, map[string]string{"shiftId": shiftID}); err != nil {
		s.logger.Warn("Failed to send shift notification", "shift_id", shiftID, "user_id", userID, "error", err)
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
