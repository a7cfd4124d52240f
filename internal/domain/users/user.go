package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"
)

// Status of an account
type Status string

// Account statuses
const (
	StatusActive    Status = "ACTIVE"
	StatusPending   Status = "PENDING"
	StatusSuspended Status = "SUSPENDED"
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8

// User entity
type User struct {
	ID               string `validate:"required,uuid4"`
	Email            string `validate:"required,email,max=255"`
	PasswordHash     string `validate:"required"`
	FirstName        string `validate:"required,notblank,max=100"`
	LastName         string `validate:"required,notblank,max=100"`
	Phone            string `validate:"omitempty,max=32"`
	Role             Role   `validate:"required,oneof=ADMIN OPERATOR CAREGIVER FAMILY STAFF AFFILIATE PROVIDER"`
	Status           Status `validate:"required,oneof=ACTIVE PENDING SUSPENDED"`
	TwoFactorEnabled bool
	TwoFactorSecret  string
	BackupCodeHashes []string
	EmailVerifiedAt  *time.Time
	LastLoginAt      *time.Time
	CreatedAt        time.Time `validate:"required"`
	UpdatedAt        time.Time
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validators.ValidateStruct(u)
}

// FullName joins first and last name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Principal returns the caller identity for u
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterInput carries a self-service sign-up
type RegisterInput struct {
	Email     string `validate:"required,email,max=255"`
	Password  string `validate:"required,min=8,max=128"`
	FirstName string `validate:"required,notblank,max=100"`
	LastName  string `validate:"required,notblank,max=100"`
	Phone     string `validate:"omitempty,max=32"`
	Role      Role   `validate:"required"`
}

// Validate checks the input and that the role is open to self-service
func (in *RegisterInput) Validate() error {
	if err := validators.ValidateStruct(in); err != nil {
		return err
	}
	if !in.Role.In(SelfServiceRoles...) {
		return fmt.Errorf("%w: role %s cannot be chosen at registration", apperr.ErrValidation, in.Role)
	}
	return nil
}

// LoginInput carries credentials and, when two-factor is on, a code
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Code     string `validate:"omitempty,max=32"`
}

// Validate for validating LoginInput struct
func (in *LoginInput) Validate() error {
	return validators.ValidateStruct(in)
}

// Session is the result of a successful login
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// UserQuery filters the admin user listing
type UserQuery struct {
	Role   Role   `validate:"omitempty,oneof=ADMIN OPERATOR CAREGIVER FAMILY STAFF AFFILIATE PROVIDER"`
	Status Status `validate:"omitempty,oneof=ACTIVE PENDING SUSPENDED"`
	Search string `validate:"omitempty,max=100"`
	Limit  int    `validate:"gte=0,lte=100"`
	Offset int    `validate:"gte=0"`
}

// NewUserQuery returns a query with default paging
func NewUserQuery() *UserQuery {
	return &UserQuery{Limit: 50}
}

// Validate for validating UserQuery struct
func (q *UserQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// TwoFactorSetup is returned when a user starts enrolling an authenticator
type TwoFactorSetup struct {
	Secret      string
	OTPAuthURL  string
	BackupCodes []string
}
