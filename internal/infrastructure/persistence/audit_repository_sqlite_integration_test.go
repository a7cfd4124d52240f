//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeTestLog(t *testing.T, ctx *TestContext, userID string, action audit.Action, resourceType, resourceID, description string, at time.Time) *audit.Log {
	t.Helper()

	log := &audit.Log{
		ID:           uuid.NewString(),
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		Description:  description,
		Metadata:     map[string]interface{}{"source": "test"},
		IPAddress:    "10.0.0.1",
		UserAgent:    "go-test",
		CreatedAt:    at,
	}
	if resourceID != "" {
		log.ResourceID = &resourceID
	}
	require.NoError(t, ctx.AuditRepo.Create(context.Background(), log))
	return log
}

func TestAuditSqliteRepository_Query(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	staff := CreateTestUser(t, ctx, users.RoleStaff)
	residentID := uuid.NewString()

	base := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	storeTestLog(t, ctx, staff.ID, audit.ActionRead, audit.ResourceResident, residentID, "Viewed resident", base)
	storeTestLog(t, ctx, staff.ID, audit.ActionUpdate, audit.ResourceResident, residentID, "Updated resident", base.Add(time.Hour))
	storeTestLog(t, ctx, staff.ID, audit.ActionRead, audit.ResourceHome, uuid.NewString(), "Viewed home", base.Add(2*time.Hour))

	query := audit.NewQuery()
	query.ResourceTypes = []string{audit.ResourceResident}
	query.ResourceID = residentID
	logs, total, err := ctx.AuditRepo.Query(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, audit.ActionUpdate, logs[0].Action)
	assert.Equal(t, "test", logs[0].Metadata["source"])

	from := base.Add(90 * time.Minute)
	query = audit.NewQuery()
	query.From = &from
	query.SortOrder = "asc"
	logs, total, err = ctx.AuditRepo.Query(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, audit.ResourceHome, logs[0].ResourceType)

	query = audit.NewQuery()
	query.Limit = 0
	_, _, err = ctx.AuditRepo.Query(context.Background(), query)
	assert.Error(t, err)
}

func TestAuditSqliteRepository_SecurityEvents(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	user := CreateTestUser(t, ctx, users.RoleFamily)
	now := time.Now().UTC()

	storeTestLog(t, ctx, user.ID, audit.ActionLogin, audit.ResourceUser, user.ID, "User logged in", now)
	storeTestLog(t, ctx, user.ID, audit.ActionUpdate, audit.ResourceUser, user.ID, "Changed Password", now.Add(time.Second))
	storeTestLog(t, ctx, user.ID, audit.ActionRead, audit.ResourceHome, "", "Viewed home", now.Add(2*time.Second))

	events, err := ctx.AuditRepo.SecurityEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Changed Password", events[0].Description)
}

func TestAuditSqliteRepository_CountByAndAccessCounts(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	staff := CreateTestUser(t, ctx, users.RoleStaff)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		storeTestLog(t, ctx, staff.ID, audit.ActionRead, audit.ResourceResident, uuid.NewString(), "Viewed resident", now.Add(-time.Duration(i)*time.Minute))
	}
	storeTestLog(t, ctx, staff.ID, audit.ActionCreate, audit.ResourceResident, uuid.NewString(), "Created resident", now)
	storeTestLog(t, ctx, "system", audit.ActionDelete, audit.ResourceAuditLog, "", "Purged logs", now)

	byAction, err := ctx.AuditRepo.CountBy(context.Background(), "action", now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), byAction[string(audit.ActionRead)])
	assert.Equal(t, int64(1), byAction[string(audit.ActionCreate)])

	_, err = ctx.AuditRepo.CountBy(context.Background(), "description", now, now)
	assert.Error(t, err)

	counts, err := ctx.AuditRepo.AccessCounts(context.Background(), now.Add(-time.Hour), audit.AccessActions)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	for _, c := range counts {
		switch c.UserID {
		case staff.ID:
			assert.Equal(t, 3, c.Count)
			assert.Equal(t, staff.Email, c.Email)
			assert.Equal(t, users.RoleStaff, c.Role)
		case "system":
			assert.Empty(t, c.Email)
		default:
			t.Fatalf("unexpected user %s", c.UserID)
		}
	}
}

func TestAuditSqliteRepository_ExistsAndDeleteBefore(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	staff := CreateTestUser(t, ctx, users.RoleStaff)
	residentID := uuid.NewString()
	now := time.Now().UTC()

	storeTestLog(t, ctx, staff.ID, audit.ActionRead, audit.ResourceResident, residentID, "Viewed resident", now.AddDate(0, 0, -400))
	storeTestLog(t, ctx, staff.ID, audit.ActionRead, audit.ResourceResident, uuid.NewString(), "Viewed resident", now)

	exists, err := ctx.AuditRepo.Exists(context.Background(), staff.ID, audit.ResourceResident, residentID, audit.ActionRead)
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := ctx.AuditRepo.DeleteBefore(context.Background(), now.AddDate(0, 0, -365))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	exists, err = ctx.AuditRepo.Exists(context.Background(), staff.ID, audit.ResourceResident, residentID, audit.ActionRead)
	require.NoError(t, err)
	assert.False(t, exists)
}
