//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, services *TestServices, email string, role users.Role) *users.User {
	t.Helper()

	user, err := services.Auth.Register(context.Background(), &users.RegisterInput{
		Email:     email,
		Password:  TestPassword,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      role,
	})
	require.NoError(t, err)
	return user
}

func TestAuthService_Register_And_Login_Success(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	user := registerUser(t, services, "Ada@Example.com", users.RoleFamily)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, TestPassword, user.PasswordHash)

	session, err := services.Auth.Login(ctx, &users.LoginInput{Email: "ada@example.com", Password: TestPassword})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	principal, err := services.Auth.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, users.RoleFamily, principal.Role)

	logs, err := services.Audit.UserTrail(ctx, user.ID, 10)
	require.NoError(t, err)
	actions := make([]audit.Action, 0, len(logs))
	for _, log := range logs {
		actions = append(actions, log.Action)
	}
	assert.Contains(t, actions, audit.ActionLogin)
	assert.Contains(t, actions, audit.ActionCreate)
}

func TestAuthService_Register_Rejects_Privileged_Role_And_Duplicate(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, err := services.Auth.Register(ctx, &users.RegisterInput{
		Email: "op@example.com", Password: TestPassword, FirstName: "O", LastName: "P", Role: users.RoleOperator,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	registerUser(t, services, "dup@example.com", users.RoleCaregiver)
	_, err = services.Auth.Register(ctx, &users.RegisterInput{
		Email: "DUP@example.com", Password: TestPassword, FirstName: "D", LastName: "P", Role: users.RoleFamily,
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAuthService_Login_Wrong_Password_Is_Audited(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	user := registerUser(t, services, "wrong@example.com", users.RoleFamily)

	_, err := services.Auth.Login(ctx, &users.LoginInput{Email: user.Email, Password: "not the password"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	events, err := services.Audit.SecurityEvents(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, audit.ActionAccessDenied, events[0].Action)
	assert.Contains(t, events[0].Description, "Failed authentication attempt")
}

func TestAuthService_ParseToken_Rejects_Tampered_Token(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	user := registerUser(t, services, "tamper@example.com", users.RoleFamily)

	session, err := services.Auth.Login(context.Background(), &users.LoginInput{Email: user.Email, Password: TestPassword})
	require.NoError(t, err)

	_, err = services.Auth.ParseToken(session.Token + "x")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestTwoFactorService_Setup_Enable_And_Login_With_Backup_Code(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	user := registerUser(t, services, "2fa@example.com", users.RoleCaregiver)
	caller := Principal(user)

	setup, err := services.TwoFactor.Setup(ctx, caller)
	require.NoError(t, err)
	require.NotEmpty(t, setup.Secret)
	require.Len(t, setup.BackupCodes, 10)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, services.TwoFactor.Enable(ctx, caller, code))

	_, err = services.Auth.Login(ctx, &users.LoginInput{Email: user.Email, Password: TestPassword})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	session, err := services.Auth.Login(ctx, &users.LoginInput{Email: user.Email, Password: TestPassword, Code: setup.BackupCodes[0]})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	// backup codes are single use
	_, err = services.Auth.Login(ctx, &users.LoginInput{Email: user.Email, Password: TestPassword, Code: setup.BackupCodes[0]})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAuthService_ChangePassword(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	user := registerUser(t, services, "change@example.com", users.RoleFamily)

	err := services.Auth.ChangePassword(ctx, Principal(user), "bad current", "a brand new secret")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	require.NoError(t, services.Auth.ChangePassword(ctx, Principal(user), TestPassword, "a brand new secret"))
	_, err = services.Auth.Login(ctx, &users.LoginInput{Email: user.Email, Password: "a brand new secret"})
	assert.NoError(t, err)
}

func TestUserService_UpdateRoleStatus(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	user := registerUser(t, services, "member@example.com", users.RoleFamily)
	admin, err := services.Users.CreatePrivileged(ctx, &users.RegisterInput{
		Email: "admin@example.com", Password: TestPassword, FirstName: "Root", LastName: "Admin", Role: users.RoleAdmin,
	})
	require.NoError(t, err)

	suspended := users.StatusSuspended
	_, err = services.Users.UpdateRoleStatus(ctx, Principal(user), user.ID, nil, &suspended)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	updated, err := services.Users.UpdateRoleStatus(ctx, Principal(admin), user.ID, nil, &suspended)
	require.NoError(t, err)
	assert.Equal(t, users.StatusSuspended, updated.Status)

	_, err = services.Auth.Login(ctx, &users.LoginInput{Email: user.Email, Password: TestPassword})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
