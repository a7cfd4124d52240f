//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/domain/leads"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftPostgresRepository_UpdateVersionCheck(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)
	operator := CreateTestUser(t, ctx, users.RoleOperator)
	home := CreateTestHome(t, ctx, operator.ID)
	shift := CreateTestShift(t, ctx, home.ID, shiftStart, 8)

	stale, err := ctx.ShiftRepo.GetByID(context.Background(), shift.ID)
	require.NoError(t, err)

	shift.Notes = "first writer wins"
	require.NoError(t, ctx.ShiftRepo.Update(context.Background(), shift))

	err = ctx.ShiftRepo.Update(context.Background(), stale)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLeadPostgresRepository_CountByStatus(t *testing.T) {
	ctx := SetupTestDB(t, config.PostgresDbType)
	family := CreateTestUser(t, ctx, users.RoleFamily)

	lead := newTestLead(family.ID, leads.StatusNew, shiftStart)
	require.NoError(t, ctx.LeadRepo.Create(context.Background(), lead))

	counts, err := ctx.LeadRepo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[leads.StatusNew])
}
