//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/scheduler"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daysFromNow(days int) *time.Time {
	t := time.Now().UTC().AddDate(0, 0, days)
	return &t
}

func TestComplianceService_Create_Verify_And_Scope(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	db := services.DBContext
	caregiver := Principal(persistence.CreateTestUser(t, db, users.RoleCaregiver))
	staff := Principal(persistence.CreateTestUser(t, db, users.RoleStaff))
	operator := Principal(persistence.CreateTestUser(t, db, users.RoleOperator))
	home := persistence.CreateTestHome(t, db, operator.ID)

	_, err := services.Compliance.Create(ctx, caregiver, &compliance.CreateInput{
		OwnerType: compliance.OwnerCaregiver,
		OwnerID:   caregiver.ID,
		Type:      compliance.TypeCertification,
		Title:     "CPR",
		IssuedAt:  daysFromNow(10),
		ExpiresAt: daysFromNow(5),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	other := Principal(persistence.CreateTestUser(t, db, users.RoleCaregiver))
	_, err = services.Compliance.Create(ctx, other, &compliance.CreateInput{
		OwnerType: compliance.OwnerCaregiver, OwnerID: caregiver.ID, Type: compliance.TypeTraining, Title: "Dementia care",
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	item, err := services.Compliance.Create(ctx, caregiver, &compliance.CreateInput{
		OwnerType: compliance.OwnerCaregiver,
		OwnerID:   caregiver.ID,
		Type:      compliance.TypeCertification,
		Title:     "CPR",
		ExpiresAt: daysFromNow(10),
	})
	require.NoError(t, err)
	assert.Equal(t, compliance.StatusPendingReview, item.Status)

	_, err = services.Compliance.Verify(ctx, caregiver, item.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	verified, err := services.Compliance.Verify(ctx, staff, item.ID)
	require.NoError(t, err)
	assert.Equal(t, compliance.StatusExpiringSoon, verified.Status)
	require.NotNil(t, verified.VerifiedBy)
	assert.Equal(t, staff.ID, *verified.VerifiedBy)

	_, err = services.Compliance.Create(ctx, operator, &compliance.CreateInput{
		OwnerType: compliance.OwnerHome, OwnerID: home.ID, Type: compliance.TypeLicense, Title: "State license",
		ExpiresAt: daysFromNow(365),
	})
	require.NoError(t, err)

	mine, err := services.Compliance.List(ctx, caregiver, nil)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, item.ID, mine[0].ID)

	homeItems, err := services.Compliance.List(ctx, operator, nil)
	require.NoError(t, err)
	require.Len(t, homeItems, 1)
	assert.Equal(t, compliance.OwnerHome, homeItems[0].OwnerType)

	_, err = services.Compliance.List(ctx, operator, &compliance.Query{OwnerIDs: []string{persistence.CreateTestHome(t, db, other.ID).ID}})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	everything, err := services.Compliance.List(ctx, staff, nil)
	require.NoError(t, err)
	assert.Len(t, everything, 2)

	family := Principal(persistence.CreateTestUser(t, db, users.RoleFamily))
	_, err = services.Compliance.List(ctx, family, nil)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestComplianceService_SweepExpirations(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	db := services.DBContext
	caregiver := Principal(persistence.CreateTestUser(t, db, users.RoleCaregiver))
	operator := Principal(persistence.CreateTestUser(t, db, users.RoleOperator))
	staff := Principal(persistence.CreateTestUser(t, db, users.RoleStaff))
	home := persistence.CreateTestHome(t, db, operator.ID)

	cert, err := services.Compliance.Create(ctx, caregiver, &compliance.CreateInput{
		OwnerType: compliance.OwnerCaregiver, OwnerID: caregiver.ID, Type: compliance.TypeCertification,
		Title: "First aid", ExpiresAt: daysFromNow(60),
	})
	require.NoError(t, err)
	_, err = services.Compliance.Verify(ctx, staff, cert.ID)
	require.NoError(t, err)

	license, err := services.Compliance.Create(ctx, operator, &compliance.CreateInput{
		OwnerType: compliance.OwnerHome, OwnerID: home.ID, Type: compliance.TypeLicense,
		Title: "Fire inspection", ExpiresAt: daysFromNow(5),
	})
	require.NoError(t, err)
	_, err = services.Compliance.Verify(ctx, staff, license.ID)
	require.NoError(t, err)

	_, err = services.Compliance.Create(ctx, caregiver, &compliance.CreateInput{
		OwnerType: compliance.OwnerCaregiver, OwnerID: caregiver.ID, Type: compliance.TypeTraining,
		Title: "Dementia care", ExpiresAt: daysFromNow(200),
	})
	require.NoError(t, err)

	result, err := services.Compliance.SweepExpirations(ctx, time.Now().UTC().AddDate(0, 0, 40), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, 1, result.ExpiringSoon)
	assert.Equal(t, 1, result.Expired)

	stored, err := db.ComplianceRepo.GetByID(ctx, license.ID)
	require.NoError(t, err)
	assert.Equal(t, compliance.StatusExpired, stored.Status)

	operatorInbox, err := services.Notifications.List(ctx, operator, true, 10)
	require.NoError(t, err)
	require.Len(t, operatorInbox, 1)
	assert.Equal(t, notifications.TypeComplianceExpiring, operatorInbox[0].Type)
	assert.Equal(t, "Compliance item expired", operatorInbox[0].Title)

	caregiverInbox, err := services.Notifications.List(ctx, caregiver, true, 10)
	require.NoError(t, err)
	require.Len(t, caregiverInbox, 1)
	assert.Equal(t, "Compliance item expiring", caregiverInbox[0].Title)
	assert.Len(t, services.Mailer.Sent(), 2)

	again, err := services.Compliance.SweepExpirations(ctx, time.Now().UTC().AddDate(0, 0, 40), 0)
	require.NoError(t, err)
	assert.Zero(t, again.ExpiringSoon+again.Expired)
}

func TestMaintenanceJobs_RunNow(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	db := services.DBContext
	logger := testutil.SetupTestLogger(t)
	caregiver := Principal(persistence.CreateTestUser(t, db, users.RoleCaregiver))
	staff := Principal(persistence.CreateTestUser(t, db, users.RoleStaff))

	item, err := services.Compliance.Create(ctx, caregiver, &compliance.CreateInput{
		OwnerType: compliance.OwnerCaregiver, OwnerID: caregiver.ID, Type: compliance.TypeBackgroundCheck,
		Title: "Background check", ExpiresAt: daysFromNow(3),
	})
	require.NoError(t, err)
	_, err = services.Compliance.Verify(ctx, staff, item.ID)
	require.NoError(t, err)

	stored, err := db.ComplianceRepo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	stored.ExpiresAt = daysFromNow(-1)
	require.NoError(t, db.ComplianceRepo.Update(ctx, stored))

	s := scheduler.New(logger, nil)
	require.NoError(t, scheduler.RegisterMaintenanceJobs(s, services.Audit, services.Compliance,
		&config.AuditSettings{Enabled: true, RetentionDays: 30, PurgeSchedule: "@daily"},
		&config.ComplianceSettings{ExpirySchedule: "@hourly", WarningDays: 30},
		logger))

	require.NoError(t, s.RunNow(scheduler.AuditPurgeJob))
	require.NoError(t, s.RunNow(scheduler.ComplianceSweepJob))

	expired, err := db.ComplianceRepo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, compliance.StatusExpired, expired.Status)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
}
