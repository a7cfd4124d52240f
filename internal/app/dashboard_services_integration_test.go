//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/messages"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Summary_ScopedByRole(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	db := services.DBContext

	admin := Principal(persistence.CreateTestUser(t, db, users.RoleAdmin))
	operator := Principal(persistence.CreateTestUser(t, db, users.RoleOperator))
	rival := Principal(persistence.CreateTestUser(t, db, users.RoleOperator))
	caregiver := Principal(persistence.CreateTestUser(t, db, users.RoleCaregiver))
	family := Principal(persistence.CreateTestUser(t, db, users.RoleFamily))

	start := time.Now().UTC().Add(72 * time.Hour)
	persistence.CreateTestShift(t, db, persistence.CreateTestHome(t, db, operator.ID).ID, start, 8)
	persistence.CreateTestShift(t, db, persistence.CreateTestHome(t, db, rival.ID).ID, start, 8)

	_, err := services.Messages.Send(ctx, family, &messages.SendInput{RecipientID: caregiver.ID, Content: "Are you available?"})
	require.NoError(t, err)

	adminSummary, err := services.Dashboard.Summary(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), adminSummary.OpenShifts)
	assert.Equal(t, int64(2), adminSummary.UsersByRole[string(users.RoleOperator)])
	assert.NotNil(t, adminSummary.LeadsByStatus)

	operatorSummary, err := services.Dashboard.Summary(ctx, operator)
	require.NoError(t, err)
	assert.Equal(t, int64(1), operatorSummary.OpenShifts)
	assert.Nil(t, operatorSummary.UsersByRole)

	caregiverSummary, err := services.Dashboard.Summary(ctx, caregiver)
	require.NoError(t, err)
	assert.Equal(t, int64(2), caregiverSummary.OpenShifts)
	assert.Equal(t, int64(1), caregiverSummary.UnreadMessages)
	assert.Nil(t, caregiverSummary.LeadsByStatus)

	familySummary, err := services.Dashboard.Summary(ctx, family)
	require.NoError(t, err)
	assert.Zero(t, familySummary.OpenShifts)
	assert.Equal(t, users.RoleFamily, familySummary.Role)

	_, err = services.Dashboard.Summary(ctx, users.Principal{ID: family.ID, Role: users.Role("UNKNOWN")})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
