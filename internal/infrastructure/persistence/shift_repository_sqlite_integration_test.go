//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shiftStart = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

func saveTestApplication(t *testing.T, ctx *TestContext, shiftID, caregiverID string, status shifts.ApplicationStatus) *shifts.Application {
	t.Helper()

	now := time.Now().UTC()
	application := &shifts.Application{ID: uuid.NewString(), ShiftID: shiftID, CaregiverID: caregiverID, CreatedAt: now}
	application.Transition(status, now)
	require.NoError(t, ctx.ShiftRepo.SaveApplication(context.Background(), application))
	return application
}

func TestShiftSqliteRepository_UpdateVersionCheck(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	home := CreateTestHome(t, ctx, operator.ID)
	shift := CreateTestShift(t, ctx, home.ID, shiftStart, 8)

	stale, err := ctx.ShiftRepo.GetByID(context.Background(), shift.ID)
	require.NoError(t, err)

	shift.Notes = "bring badge"
	require.NoError(t, ctx.ShiftRepo.Update(context.Background(), shift))
	assert.Equal(t, int64(2), shift.Version)

	stale.Notes = "lost update"
	err = ctx.ShiftRepo.Update(context.Background(), stale)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, int64(1), stale.Version)

	fetched, err := ctx.ShiftRepo.GetByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, "bring badge", fetched.Notes)
	assert.Equal(t, int64(2), fetched.Version)
}

func TestShiftSqliteRepository_Update_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	home := CreateTestHome(t, ctx, operator.ID)
	shift := CreateTestShift(t, ctx, home.ID, shiftStart, 8)

	shift.ID = uuid.NewString()
	err := ctx.ShiftRepo.Update(context.Background(), shift)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestShiftSqliteRepository_ListScopes(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	caregiver := CreateTestUser(t, ctx, users.RoleCaregiver)
	home := CreateTestHome(t, ctx, operator.ID)
	other := CreateTestHome(t, ctx, operator.ID)

	first := CreateTestShift(t, ctx, home.ID, shiftStart, 8)
	CreateTestShift(t, ctx, home.ID, shiftStart.Add(24*time.Hour), 8)
	CreateTestShift(t, ctx, other.ID, shiftStart, 4)

	list, total, err := ctx.ShiftRepo.List(context.Background(), &shifts.Filter{HomeIDs: []string{home.ID}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, first.ID, list[0].ID)

	_, total, err = ctx.ShiftRepo.List(context.Background(), &shifts.Filter{HomeIDs: []string{}})
	require.NoError(t, err)
	assert.Zero(t, total)

	now := time.Now().UTC()
	application := &shifts.Application{
		ID:          uuid.NewString(),
		ShiftID:     first.ID,
		CaregiverID: caregiver.ID,
		CreatedAt:   now,
	}
	application.Transition(shifts.ApplicationApplied, now)
	require.NoError(t, ctx.ShiftRepo.SaveApplication(context.Background(), application))

	list, total, err = ctx.ShiftRepo.List(context.Background(), &shifts.Filter{
		ApplicantID:       caregiver.ID,
		ApplicationStatus: shifts.ApplicationApplied,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, first.ID, list[0].ID)

	count, err := ctx.ShiftRepo.CountApplications(context.Background(), []string{other.ID}, shifts.ApplicationApplied)
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = ctx.ShiftRepo.CountApplications(context.Background(), nil, shifts.ApplicationApplied)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestShiftSqliteRepository_SaveApplicationUpserts(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	caregiver := CreateTestUser(t, ctx, users.RoleCaregiver)
	home := CreateTestHome(t, ctx, operator.ID)
	shift := CreateTestShift(t, ctx, home.ID, shiftStart, 8)

	now := time.Now().UTC()
	application := &shifts.Application{ID: uuid.NewString(), ShiftID: shift.ID, CaregiverID: caregiver.ID, CreatedAt: now}
	application.Transition(shifts.ApplicationApplied, now)
	require.NoError(t, ctx.ShiftRepo.SaveApplication(context.Background(), application))

	application.Transition(shifts.ApplicationOffered, now.Add(time.Minute))
	require.NoError(t, ctx.ShiftRepo.SaveApplication(context.Background(), application))

	fetched, err := ctx.ShiftRepo.GetApplication(context.Background(), shift.ID, caregiver.ID)
	require.NoError(t, err)
	assert.Equal(t, shifts.ApplicationOffered, fetched.Status)
	assert.NotNil(t, fetched.OfferedAt)

	list, err := ctx.ShiftRepo.ListApplications(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = ctx.ShiftRepo.GetApplication(context.Background(), shift.ID, operator.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestShiftSqliteRepository_ConfirmCancel(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	caregiver := CreateTestUser(t, ctx, users.RoleCaregiver)
	home := CreateTestHome(t, ctx, operator.ID)
	shift := CreateTestShift(t, ctx, home.ID, shiftStart, 8)

	accepted := saveTestApplication(t, ctx, shift.ID, caregiver.ID, shifts.ApplicationAccepted)

	appointment := NewTestAppointment(operator.ID, shift.StartTime, 8*time.Hour, caregiver.ID)
	appointment.Type = appointments.TypeCaregiverShift
	shift.Status = shifts.StatusAssigned
	shift.CaregiverID = &caregiver.ID
	shift.AppointmentID = &appointment.ID
	require.NoError(t, ctx.ShiftRepo.Confirm(context.Background(), shift, accepted, appointment))

	stored, err := ctx.AppointmentRepo.GetByID(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.True(t, stored.Involves(caregiver.ID))

	shift.Status = shifts.StatusCanceled
	shift.UpdatedAt = time.Now().UTC()
	require.NoError(t, ctx.ShiftRepo.Cancel(context.Background(), shift, "home closed"))
	assert.Equal(t, int64(3), shift.Version)

	stored, err = ctx.AppointmentRepo.GetByID(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, appointments.StatusCancelled, stored.Status)
	assert.Equal(t, "home closed", stored.CancelReason)
}

func TestShiftSqliteRepository_ConfirmRollsBackOnConflict(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	caregiver := CreateTestUser(t, ctx, users.RoleCaregiver)
	home := CreateTestHome(t, ctx, operator.ID)
	shift := CreateTestShift(t, ctx, home.ID, shiftStart, 8)

	accepted := saveTestApplication(t, ctx, shift.ID, caregiver.ID, shifts.ApplicationAccepted)

	shift.Version = 7
	shift.Status = shifts.StatusAssigned
	shift.CaregiverID = &caregiver.ID
	appointment := NewTestAppointment(operator.ID, shift.StartTime, 8*time.Hour, caregiver.ID)

	err := ctx.ShiftRepo.Confirm(context.Background(), shift, accepted, appointment)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = ctx.AppointmentRepo.GetByID(context.Background(), appointment.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "appointment insert is rolled back")
}

func TestShiftSqliteRepository_CompleteCreatesPayment(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	caregiver := CreateTestUser(t, ctx, users.RoleCaregiver)
	home := CreateTestHome(t, ctx, operator.ID)
	shift := CreateTestShift(t, ctx, home.ID, shiftStart, 8)

	shift.Status = shifts.StatusCompleted
	shift.CaregiverID = &caregiver.ID
	now := time.Now().UTC()
	payment := &payments.Payment{
		ID:        uuid.NewString(),
		PayeeID:   caregiver.ID,
		ShiftID:   &shift.ID,
		Type:      payments.TypeCaregiverPayment,
		Amount:    shift.Pay(),
		Status:    payments.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, ctx.ShiftRepo.Complete(context.Background(), shift, payment))

	list, err := ctx.PaymentRepo.ListByShifts(context.Background(), []string{shift.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Equal(shift.Pay()), "8h at 25.50 is 204.00, got %s", list[0].Amount)

	completed, err := ctx.ShiftRepo.ListCompletedByCaregiver(context.Background(), caregiver.ID)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
}

func TestShiftSqliteRepository_TransitionApplicationGuards(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	caregiver := CreateTestUser(t, ctx, users.RoleCaregiver)
	home := CreateTestHome(t, ctx, operator.ID)
	shift := CreateTestShift(t, ctx, home.ID, shiftStart, 8)
	offered := saveTestApplication(t, ctx, shift.ID, caregiver.ID, shifts.ApplicationOffered)

	// Two requests read the same OFFERED application and shift
	staleShift, err := ctx.ShiftRepo.GetByID(context.Background(), shift.ID)
	require.NoError(t, err)
	staleApplication, err := ctx.ShiftRepo.GetApplication(context.Background(), shift.ID, caregiver.ID)
	require.NoError(t, err)

	offered.Transition(shifts.ApplicationAccepted, time.Now().UTC())
	require.NoError(t, ctx.ShiftRepo.TransitionApplication(context.Background(), shift, offered, shifts.ApplicationOffered))
	assert.Equal(t, int64(2), shift.Version)

	staleApplication.Transition(shifts.ApplicationWithdrawn, time.Now().UTC())
	err = ctx.ShiftRepo.TransitionApplication(context.Background(), staleShift, staleApplication,
		shifts.ApplicationApplied, shifts.ApplicationOffered)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// Fresh shift version, but the application is no longer APPLIED/OFFERED
	fresh, err := ctx.ShiftRepo.GetByID(context.Background(), shift.ID)
	require.NoError(t, err)
	err = ctx.ShiftRepo.TransitionApplication(context.Background(), fresh, staleApplication,
		shifts.ApplicationApplied, shifts.ApplicationOffered)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	stored, err := ctx.ShiftRepo.GetApplication(context.Background(), shift.ID, caregiver.ID)
	require.NoError(t, err)
	assert.Equal(t, shifts.ApplicationAccepted, stored.Status)
	current, err := ctx.ShiftRepo.GetByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current.Version, "failed transitions roll back the version bump")
}

func TestShiftSqliteRepository_ConfirmRequiresAcceptedApplication(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	caregiver := CreateTestUser(t, ctx, users.RoleCaregiver)
	home := CreateTestHome(t, ctx, operator.ID)
	shift := CreateTestShift(t, ctx, home.ID, shiftStart, 8)
	application := saveTestApplication(t, ctx, shift.ID, caregiver.ID, shifts.ApplicationAccepted)

	withdrawn := *application
	withdrawn.Transition(shifts.ApplicationWithdrawn, time.Now().UTC())
	require.NoError(t, ctx.ShiftRepo.SaveApplication(context.Background(), &withdrawn))

	shift.Status = shifts.StatusAssigned
	shift.CaregiverID = &caregiver.ID
	appointment := NewTestAppointment(operator.ID, shift.StartTime, 8*time.Hour, caregiver.ID)
	shift.AppointmentID = &appointment.ID

	err := ctx.ShiftRepo.Confirm(context.Background(), shift, application, appointment)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	stored, err := ctx.ShiftRepo.GetByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, shifts.StatusOpen, stored.Status)
	assert.Nil(t, stored.CaregiverID)
	_, err = ctx.AppointmentRepo.GetByID(context.Background(), appointment.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
