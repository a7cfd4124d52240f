package users

import (
	"context"
	"time"
)

// AuthService registers accounts and issues access tokens.
type AuthService interface {
	// Register creates an account with a self-service role.
	Register(ctx context.Context, input *RegisterInput) (*User, error)

	// Login verifies credentials (and a second factor when enabled) and returns a signed token.
	Login(ctx context.Context, input *LoginInput) (*Session, error)

	// ParseToken verifies a token and returns the caller it was issued to.
	ParseToken(token string) (*Principal, error)

	// ChangePassword replaces the caller's password after checking the current one.
	ChangePassword(ctx context.Context, caller Principal, current, next string) error
}

// AccountService proves email ownership and recovers lost passwords with
// single-use mailed tokens.
type AccountService interface {
	// SendVerification mails the caller a fresh verification link.
	SendVerification(ctx context.Context, caller Principal) error

	// ResendVerification does the same for an email address. Unknown or
	// already verified addresses are ignored without an error.
	ResendVerification(ctx context.Context, email string) error

	// VerifyEmail redeems a verification token and activates a pending account.
	VerifyEmail(ctx context.Context, token string) (*User, error)

	// ForgotPassword mails a reset link. Unknown addresses are ignored without an error.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword redeems a reset token and replaces the password.
	ResetPassword(ctx context.Context, token, password string) error
}

// UserService exposes account administration.
type UserService interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	List(ctx context.Context, caller Principal, query *UserQuery) ([]*User, int64, error)
	UpdateRoleStatus(ctx context.Context, caller Principal, userID string, role *Role, status *Status) (*User, error)

	// CreatePrivileged creates an account with any role. It is used by the admin CLI.
	CreatePrivileged(ctx context.Context, input *RegisterInput) (*User, error)
}

// TwoFactorService manages TOTP enrollment.
type TwoFactorService interface {
	Setup(ctx context.Context, caller Principal) (*TwoFactorSetup, error)
	Enable(ctx context.Context, caller Principal, code string) error
	Disable(ctx context.Context, caller Principal, code string) error

	// Verify checks a TOTP code or consumes an unused backup code.
	Verify(ctx context.Context, userID, code string) (bool, error)
}

// UserRepository defines persistence for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, query *UserQuery) ([]*User, int64, error)
	Update(ctx context.Context, user *User) error

	// ConsumeBackupCode swaps the stored backup code hashes from current to
	// remaining. It reports false when the stored list no longer equals current.
	ConsumeBackupCode(ctx context.Context, userID string, current, remaining []string) (bool, error)

	CountByRole(ctx context.Context) (map[Role]int64, error)
}

// AccountTokenRepository defines persistence for account tokens
type AccountTokenRepository interface {
	Create(ctx context.Context, token *AccountToken) error
	GetByID(ctx context.Context, tokenID string) (*AccountToken, error)

	// Consume marks the token used. It reports false when it was already used.
	Consume(ctx context.Context, tokenID string, at time.Time) (bool, error)

	// Revoke marks every unused token of userID for purpose as used.
	Revoke(ctx context.Context, userID string, purpose TokenPurpose, at time.Time) (int64, error)
}
