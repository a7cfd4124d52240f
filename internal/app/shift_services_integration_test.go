//go:build integration
// +build integration

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shiftFixture struct {
	services  *TestServices
	operator  users.Principal
	caregiver users.Principal
	shift     *shifts.Shift
}

func setupShiftFixture(t *testing.T) *shiftFixture {
	t.Helper()

	services := SetupTestServices(t, config.SqliteDbType)
	db := services.DBContext
	operator := persistence.CreateTestUser(t, db, users.RoleOperator)
	caregiver := persistence.CreateTestUser(t, db, users.RoleCaregiver)
	home := persistence.CreateTestHome(t, db, operator.ID)

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	shift, err := services.Shifts.Create(context.Background(), Principal(operator), &shifts.CreateInput{
		HomeID:     home.ID,
		StartTime:  start,
		EndTime:    start.Add(7*time.Hour + 30*time.Minute),
		HourlyRate: decimal.RequireFromString("24.00"),
		Notes:      "Night shift",
	})
	require.NoError(t, err)

	return &shiftFixture{services: services, operator: Principal(operator), caregiver: Principal(caregiver), shift: shift}
}

func TestShiftService_Full_Lifecycle_Creates_Payment(t *testing.T) {
	f := setupShiftFixture(t)
	ctx := context.Background()
	svc := f.services.Shifts

	application, err := svc.Apply(ctx, f.caregiver, f.shift.ID, "I have night experience")
	require.NoError(t, err)
	assert.Equal(t, shifts.ApplicationApplied, application.Status)

	_, err = svc.Offer(ctx, f.operator, f.shift.ID, f.caregiver.ID, "")
	require.NoError(t, err)
	_, err = svc.Accept(ctx, f.caregiver, f.shift.ID)
	require.NoError(t, err)

	confirmed, err := svc.Confirm(ctx, f.operator, f.shift.ID, "")
	require.NoError(t, err)
	assert.Equal(t, shifts.StatusAssigned, confirmed.Status)
	require.NotNil(t, confirmed.AppointmentID)
	assert.True(t, confirmed.AssignedTo(f.caregiver.ID))

	appointment, err := f.services.DBContext.AppointmentRepo.GetByID(ctx, *confirmed.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, appointments.TypeCaregiverShift, appointment.Type)
	assert.Equal(t, appointments.StatusConfirmed, appointment.Status)

	started, err := svc.Start(ctx, f.caregiver, f.shift.ID)
	require.NoError(t, err)
	assert.Equal(t, shifts.StatusInProgress, started.Status)

	completed, payment, err := svc.Complete(ctx, f.operator, f.shift.ID)
	require.NoError(t, err)
	assert.Equal(t, shifts.StatusCompleted, completed.Status)
	assert.Equal(t, payments.StatusPending, payment.Status)
	assert.Equal(t, f.caregiver.ID, payment.PayeeID)
	assert.True(t, decimal.RequireFromString("180").Equal(payment.Amount), "amount %s", payment.Amount)

	sheet, err := svc.Timesheets(ctx, f.caregiver)
	require.NoError(t, err)
	require.Len(t, sheet.Shifts, 1)
	require.Len(t, sheet.Payments, 1)
	assert.True(t, decimal.RequireFromString("7.5").Equal(sheet.TotalHours))

	assert.Equal(t, []string{"create", "apply", "offer", "accept", "confirm", "start", "complete"}, f.services.Shifted.transitions)

	var subjects []string
	for _, mail := range f.services.Mailer.Sent() {
		subjects = append(subjects, mail.Subject)
	}
	assert.ElementsMatch(t, []string{"Shift offer", "Shift confirmed"}, subjects)

	inbox, err := f.services.Notifications.List(ctx, f.operator, true, 10)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, notifications.TypeShiftApplication, inbox[0].Type)
}

func TestShiftService_Apply_Twice_Conflicts_Until_Withdrawn(t *testing.T) {
	f := setupShiftFixture(t)
	ctx := context.Background()

	_, err := f.services.Shifts.Apply(ctx, f.caregiver, f.shift.ID, "")
	require.NoError(t, err)
	_, err = f.services.Shifts.Apply(ctx, f.caregiver, f.shift.ID, "")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = f.services.Shifts.Withdraw(ctx, f.caregiver, f.shift.ID)
	require.NoError(t, err)
	again, err := f.services.Shifts.Apply(ctx, f.caregiver, f.shift.ID, "back again")
	require.NoError(t, err)
	assert.Equal(t, shifts.ApplicationApplied, again.Status)
}

func TestShiftService_Confirm_Requires_Accepted_Application(t *testing.T) {
	f := setupShiftFixture(t)
	ctx := context.Background()

	_, err := f.services.Shifts.Apply(ctx, f.caregiver, f.shift.ID, "")
	require.NoError(t, err)

	_, err = f.services.Shifts.Confirm(ctx, f.operator, f.shift.ID, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestShiftService_Operator_Of_Other_Home_Is_Forbidden(t *testing.T) {
	f := setupShiftFixture(t)
	ctx := context.Background()
	stranger := Principal(persistence.CreateTestUser(t, f.services.DBContext, users.RoleOperator))

	_, err := f.services.Shifts.Offer(ctx, stranger, f.shift.ID, f.caregiver.ID, "")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, _, err = f.services.Shifts.List(ctx, stranger, &shifts.Query{HomeID: f.shift.HomeID, Limit: 10})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestShiftService_Cancel_Appends_Reason_And_Cancels_Appointment(t *testing.T) {
	f := setupShiftFixture(t)
	ctx := context.Background()
	svc := f.services.Shifts

	_, err := svc.Offer(ctx, f.operator, f.shift.ID, f.caregiver.ID, "")
	require.NoError(t, err)
	_, err = svc.Accept(ctx, f.caregiver, f.shift.ID)
	require.NoError(t, err)
	confirmed, err := svc.Confirm(ctx, f.operator, f.shift.ID, f.caregiver.ID)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, f.operator, f.shift.ID, "resident moved")
	require.NoError(t, err)
	assert.Equal(t, shifts.StatusCanceled, cancelled.Status)
	assert.Contains(t, cancelled.Notes, "Cancellation reason: resident moved")

	appointment, err := f.services.DBContext.AppointmentRepo.GetByID(ctx, *confirmed.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusCancelled, appointment.Status)

	_, _, err = svc.Complete(ctx, f.operator, f.shift.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestShiftService_Stale_Version_Loses(t *testing.T) {
	f := setupShiftFixture(t)
	ctx := context.Background()
	repo := f.services.DBContext.ShiftRepo

	first, err := repo.GetByID(ctx, f.shift.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, f.shift.ID)
	require.NoError(t, err)

	first.Notes = "first writer"
	require.NoError(t, repo.Update(ctx, first))

	second.Notes = "second writer"
	err = repo.Update(ctx, second)
	assert.True(t, errors.Is(err, apperr.ErrConflict), "got %v", err)
}

func TestShiftService_Application_Change_Beats_Stale_Confirm(t *testing.T) {
	f := setupShiftFixture(t)
	ctx := context.Background()
	svc := f.services.Shifts
	repo := f.services.DBContext.ShiftRepo
	other := Principal(persistence.CreateTestUser(t, f.services.DBContext, users.RoleCaregiver))

	_, err := svc.Offer(ctx, f.operator, f.shift.ID, f.caregiver.ID, "")
	require.NoError(t, err)
	_, err = svc.Accept(ctx, f.caregiver, f.shift.ID)
	require.NoError(t, err)
	_, err = svc.Apply(ctx, other, f.shift.ID, "")
	require.NoError(t, err)

	// A confirmation prepared from this read must not commit after the reject below
	stale, err := repo.GetByID(ctx, f.shift.ID)
	require.NoError(t, err)
	accepted, err := repo.GetApplication(ctx, f.shift.ID, f.caregiver.ID)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, f.operator, f.shift.ID, other.ID)
	require.NoError(t, err)

	stale.Status = shifts.StatusAssigned
	stale.CaregiverID = &f.caregiver.ID
	appointment := persistence.NewTestAppointment(f.operator.ID, stale.StartTime, time.Hour, f.caregiver.ID)
	err = repo.Confirm(ctx, stale, accepted, appointment)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	confirmed, err := svc.Confirm(ctx, f.operator, f.shift.ID, "")
	require.NoError(t, err)
	assert.True(t, confirmed.AssignedTo(f.caregiver.ID))

	// Withdrawing after the offer was accepted is refused
	_, err = svc.Withdraw(ctx, f.caregiver, f.shift.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestShiftService_List_Caregiver_Sees_Open_Shifts(t *testing.T) {
	f := setupShiftFixture(t)
	ctx := context.Background()

	list, total, err := f.services.Shifts.List(ctx, f.caregiver, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	mine, _, err := f.services.Shifts.List(ctx, f.caregiver, &shifts.Query{MyApplications: true, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, mine)

	family := Principal(persistence.CreateTestUser(t, f.services.DBContext, users.RoleFamily))
	_, _, err = f.services.Shifts.List(ctx, family, nil)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
