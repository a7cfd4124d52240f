//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence/models"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, users.RoleFamily)

	var model models.UserModel
	err := ctx.DB.First(&model, "id = ?", user.ID).Error
	require.NoError(t, err)
	assert.Equal(t, user.Email, model.Email)
	assert.Equal(t, string(users.RoleFamily), model.Role)
}

func TestUserSqliteRepository_Create_DuplicateEmail(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, users.RoleFamily)
	duplicate := *user
	duplicate.ID = "0b6f3f7e-4b8a-4d0f-9c39-6a3c1e0f2d11"

	err := ctx.UserRepo.Create(context.Background(), &duplicate)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestUserSqliteRepository_Create_Invalid(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.UserRepo.Create(context.Background(), &users.User{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestUserSqliteRepository_GetByEmail(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, users.RoleCaregiver)

	fetched, err := ctx.UserRepo.GetByEmail(context.Background(), "  "+user.Email+" ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)

	_, err = ctx.UserRepo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserSqliteRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.UserRepo.GetByID(context.Background(), "non-existent-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUserSqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	CreateTestUser(t, ctx, users.RoleFamily)
	CreateTestUser(t, ctx, users.RoleFamily)
	caregiver := CreateTestUser(t, ctx, users.RoleCaregiver)

	query := users.NewUserQuery()
	query.Role = users.RoleFamily
	list, total, err := ctx.UserRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	query = users.NewUserQuery()
	query.Search = caregiver.Email[:12]
	list, total, err = ctx.UserRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, caregiver.ID, list[0].ID)
}

func TestUserSqliteRepository_UpdateAndCountByRole(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, users.RoleFamily)
	CreateTestUser(t, ctx, users.RoleOperator)

	user.Status = users.StatusSuspended
	user.Role = users.RoleStaff
	require.NoError(t, ctx.UserRepo.Update(context.Background(), user))

	fetched, err := ctx.UserRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, users.StatusSuspended, fetched.Status)

	counts, err := ctx.UserRepo.CountByRole(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[users.RoleStaff])
	assert.Equal(t, int64(1), counts[users.RoleOperator])
	assert.Zero(t, counts[users.RoleFamily])
}

func TestUserSqliteRepository_ConsumeBackupCode_OnlyOnce(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	user := CreateTestUser(t, ctx, users.RoleCaregiver)
	user.BackupCodeHashes = []string{"hash-a", "hash-b", "hash-c"}
	require.NoError(t, ctx.UserRepo.Update(context.Background(), user))

	current := user.BackupCodeHashes
	remaining := []string{"hash-a", "hash-c"}

	consumed, err := ctx.UserRepo.ConsumeBackupCode(context.Background(), user.ID, current, remaining)
	require.NoError(t, err)
	assert.True(t, consumed)

	// a second redeemer read the same list before the first one wrote
	consumed, err = ctx.UserRepo.ConsumeBackupCode(context.Background(), user.ID, current, remaining)
	require.NoError(t, err)
	assert.False(t, consumed)

	fetched, err := ctx.UserRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, remaining, fetched.BackupCodeHashes)
}
