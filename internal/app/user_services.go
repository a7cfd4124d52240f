package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/cryptoalg"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/cryptography"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// errInvalidCredentials is deliberately vague about which part was wrong
var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthorized)

// tokenClaims are the claims of an access token
type tokenClaims struct {
	Email string     `json:"email"`
	Role  users.Role `json:"role"`
	jwt.RegisteredClaims
}

// authService implements users.AuthService with bcrypt passwords and HS256 tokens
type authService struct {
	repo      users.UserRepository
	hasher    cryptoalg.PasswordHasher
	twoFactor users.TwoFactorService
	recorder  audit.Recorder
	settings  config.AuthSettings
	logger    logger.Logger
	now       func() time.Time
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	repo users.UserRepository,
	hasher cryptoalg.PasswordHasher,
	twoFactor users.TwoFactorService,
	recorder audit.Recorder,
	settings *config.AuthSettings,
	logger logger.Logger,
) (users.AuthService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &authService{
		repo:      repo,
		hasher:    hasher,
		twoFactor: twoFactor,
		recorder:  recorder,
		settings:  *settings,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// Register creates an ACTIVE account with a self-service role
func (s *authService) Register(ctx context.Context, input *users.RegisterInput) (*users.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := newUser(s.hasher, input, s.now())
	if err != nil {
		return nil, err
	}
	if err := createUnique(ctx, s.repo, user); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       user.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceUser,
		ResourceID:   user.ID,
		Description:  fmt.Sprintf("Registered %s account", user.Role),
	})
	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks credentials, the account status and, when enabled, the second factor
func (s *authService) Login(ctx context.Context, input *users.LoginInput) (*users.Session, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	email := users.NormalizeEmail(input.Email)
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.denyLogin(ctx, AnonymousUserID, email, "unknown email")
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, input.Password) {
		s.denyLogin(ctx, user.ID, email, "wrong password")
		return nil, errInvalidCredentials
	}
	if user.Status == users.StatusSuspended {
		s.denyLogin(ctx, user.ID, email, "account suspended")
		return nil, fmt.Errorf("%w: account is suspended", apperr.ErrForbidden)
	}
	if user.TwoFactorEnabled {
		if strings.TrimSpace(input.Code) == "" {
			return nil, fmt.Errorf("%w: two-factor code required", apperr.ErrUnauthorized)
		}
		ok, err := s.twoFactor.Verify(ctx, user.ID, input.Code)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.denyLogin(ctx, user.ID, email, "invalid two-factor code")
			return nil, fmt.Errorf("%w: invalid two-factor code", apperr.ErrUnauthorized)
		}
		// Verify may have consumed a backup code
		if user, err = s.repo.GetByID(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.issueToken(user, now)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       user.ID,
		Action:       audit.ActionLogin,
		ResourceType: audit.ResourceUser,
		ResourceID:   user.ID,
		Description:  "User logged in",
		Metadata:     map[string]interface{}{"twoFactor": user.TwoFactorEnabled},
	})
	return &users.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *authService) denyLogin(ctx context.Context, userID, email, reason string) {
	s.recorder.Record(ctx, &audit.Entry{
		UserID:       userID,
		Action:       audit.ActionAccessDenied,
		ResourceType: audit.ResourceUser,
		Description:  "Failed authentication attempt: " + reason,
		Metadata:     map[string]interface{}{"email": email},
	})
}

func (s *authService) issueToken(user *users.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.settings.TokenTTL)
	claims := tokenClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    s.settings.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.settings.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken verifies signature, issuer and expiry
func (s *authService) ParseToken(token string) (*users.Principal, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.settings.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.settings.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: malformed token claims", apperr.ErrUnauthorized)
	}
	return &users.Principal{ID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

func (s *authService) ChangePassword(ctx context.Context, caller users.Principal, current, next string) error {
	if len(next) < users.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperr.ErrValidation, users.MinPasswordLength)
	}

	user, err := s.repo.GetByID(ctx, caller.ID)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(user.PasswordHash, current) {
		s.recorder.Record(ctx, &audit.Entry{
			UserID:       user.ID,
			Action:       audit.ActionAccessDenied,
			ResourceType: audit.ResourceUser,
			ResourceID:   user.ID,
			Description:  "Password change rejected: wrong current password",
		})
		return fmt.Errorf("%w: current password does not match", apperr.ErrUnauthorized)
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       user.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceUser,
		ResourceID:   user.ID,
		Description:  "Password changed",
	})
	return nil
}

// newUser hashes the password and builds an ACTIVE account
func newUser(hasher cryptoalg.PasswordHasher, input *users.RegisterInput, now time.Time) (*users.User, error) {
	hash, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	return &users.User{
		ID:           uuid.NewString(),
		Email:        users.NormalizeEmail(input.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         input.Role,
		Status:       users.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func createUnique(ctx context.Context, repo users.UserRepository, user *users.User) error {
	if _, err := repo.GetByEmail(ctx, user.Email); err == nil {
		return fmt.Errorf("%w: email %s is already registered", apperr.ErrConflict, user.Email)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	return repo.Create(ctx, user)
}

// userService implements users.UserService
type userService struct {
	repo     users.UserRepository
	hasher   cryptoalg.PasswordHasher
	recorder audit.Recorder
	logger   logger.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(repo users.UserRepository, hasher cryptoalg.PasswordHasher, recorder audit.Recorder, logger logger.Logger) (users.UserService, error) {
	return &userService{repo: repo, hasher: hasher, recorder: recorder, logger: logger}, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*users.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *userService) List(ctx context.Context, caller users.Principal, query *users.UserQuery) ([]*users.User, int64, error) {
	if !caller.Can(users.PermUsersView) {
		return nil, 0, fmt.Errorf("%w: listing users requires %s", apperr.ErrForbidden, users.PermUsersView)
	}
	if query == nil {
		query = users.NewUserQuery()
	}
	if query.Limit == 0 {
		query.Limit = 50
	}
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, query)
}

// UpdateRoleStatus changes role and/or status of an account. ADMIN only.
func (s *userService) UpdateRoleStatus(ctx context.Context, caller users.Principal, userID string, role *users.Role, status *users.Status) (*users.User, error) {
	if !caller.Is(users.RoleAdmin) {
		s.recorder.Record(ctx, &audit.Entry{
			UserID:       caller.ID,
			Action:       audit.ActionAccessDenied,
			ResourceType: audit.ResourceUser,
			ResourceID:   userID,
			Description:  "Permission denied: account administration",
		})
		return nil, fmt.Errorf("%w: only admins can change roles or status", apperr.ErrForbidden)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var changes []string
	if role != nil && *role != user.Role {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %s", apperr.ErrValidation, *role)
		}
		changes = append(changes, fmt.Sprintf("role: %s → %s", user.Role, *role))
		user.Role = *role
	}
	if status != nil && *status != user.Status {
		changes = append(changes, fmt.Sprintf("status: %s → %s", user.Status, *status))
		user.Status = *status
	}
	if len(changes) == 0 {
		return user, nil
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       user.ID,
		ActionedBy:   caller.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceUser,
		ResourceID:   user.ID,
		Description:  "Updated account: " + strings.Join(changes, ", "),
	})
	s.logger.Info("Account updated", "user_id", user.ID, "by", caller.ID)
	return user, nil
}

// CreatePrivileged creates an account with any role, skipping the self-service check
func (s *userService) CreatePrivileged(ctx context.Context, input *users.RegisterInput) (*users.User, error) {
	if err := validators.ValidateStruct(input); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %s", apperr.ErrValidation, input.Role)
	}

	user, err := newUser(s.hasher, input, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := createUnique(ctx, s.repo, user); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       user.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceUser,
		ResourceID:   user.ID,
		Description:  fmt.Sprintf("Created %s account", user.Role),
	})
	return user, nil
}

// twoFactorService implements users.TwoFactorService with TOTP and hashed backup codes
type twoFactorService struct {
	repo     users.UserRepository
	totp     cryptoalg.TOTPProvider
	hasher   cryptoalg.PasswordHasher
	cipher   cryptoalg.SecretCipher
	recorder audit.Recorder
	logger   logger.Logger
	now      func() time.Time
}

// NewTwoFactorService creates a new instance of TwoFactorService
func NewTwoFactorService(
	repo users.UserRepository,
	totp cryptoalg.TOTPProvider,
	hasher cryptoalg.PasswordHasher,
	cipher cryptoalg.SecretCipher,
	recorder audit.Recorder,
	logger logger.Logger,
) (users.TwoFactorService, error) {
	return &twoFactorService{
		repo:     repo,
		totp:     totp,
		hasher:   hasher,
		cipher:   cipher,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Setup issues a fresh secret and backup codes. Two-factor stays off until Enable.
func (s *twoFactorService) Setup(ctx context.Context, caller users.Principal) (*users.TwoFactorSetup, error) {
	user, err := s.repo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if user.TwoFactorEnabled {
		return nil, fmt.Errorf("%w: two-factor authentication is already enabled", apperr.ErrInvalidState)
	}

	secret, url, err := s.totp.Generate(user.Email)
	if err != nil {
		return nil, err
	}
	codes, err := cryptography.GenerateBackupCodes(cryptography.BackupCodeCount)
	if err != nil {
		return nil, err
	}
	hashes := make([]string, len(codes))
	for i, code := range codes {
		if hashes[i], err = s.hasher.Hash(code); err != nil {
			return nil, err
		}
	}
	encrypted, err := s.cipher.EncryptString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt two-factor secret: %w", err)
	}

	user.TwoFactorSecret = encrypted
	user.BackupCodeHashes = hashes
	user.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &users.TwoFactorSetup{Secret: secret, OTPAuthURL: url, BackupCodes: codes}, nil
}

func (s *twoFactorService) Enable(ctx context.Context, caller users.Principal, code string) error {
	user, err := s.repo.GetByID(ctx, caller.ID)
	if err != nil {
		return err
	}
	if user.TwoFactorEnabled {
		return fmt.Errorf("%w: two-factor authentication is already enabled", apperr.ErrInvalidState)
	}
	if user.TwoFactorSecret == "" {
		return fmt.Errorf("%w: two-factor setup has not been started", apperr.ErrInvalidState)
	}

	secret, err := s.cipher.DecryptString(user.TwoFactorSecret)
	if err != nil {
		return fmt.Errorf("failed to decrypt two-factor secret: %w", err)
	}
	if !s.totp.Validate(code, secret, s.now()) {
		return fmt.Errorf("%w: invalid verification code", apperr.ErrValidation)
	}

	user.TwoFactorEnabled = true
	user.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.recordChange(ctx, user.ID, "Two-factor authentication enabled")
	return nil
}

func (s *twoFactorService) Disable(ctx context.Context, caller users.Principal, code string) error {
	user, err := s.repo.GetByID(ctx, caller.ID)
	if err != nil {
		return err
	}
	if !user.TwoFactorEnabled {
		return fmt.Errorf("%w: two-factor authentication is not enabled", apperr.ErrInvalidState)
	}

	ok, err := s.Verify(ctx, user.ID, code)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: invalid verification code", apperr.ErrUnauthorized)
	}

	// Verify may have consumed a backup code
	if user, err = s.repo.GetByID(ctx, caller.ID); err != nil {
		return err
	}
	user.TwoFactorEnabled = false
	user.TwoFactorSecret = ""
	user.BackupCodeHashes = nil
	user.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.recordChange(ctx, user.ID, "Two-factor authentication disabled")
	return nil
}

// Verify accepts a current TOTP code or consumes a matching backup code
func (s *twoFactorService) Verify(ctx context.Context, userID, code string) (bool, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.TwoFactorSecret == "" {
		return false, nil
	}

	secret, err := s.cipher.DecryptString(user.TwoFactorSecret)
	if err != nil {
		return false, fmt.Errorf("failed to decrypt two-factor secret: %w", err)
	}
	if s.totp.Validate(code, secret, s.now()) {
		return true, nil
	}

	normalized := cryptography.NormalizeBackupCode(code)
	for i, hash := range user.BackupCodeHashes {
		if !s.hasher.Compare(hash, normalized) {
			continue
		}
		remaining := append(user.BackupCodeHashes[:i:i], user.BackupCodeHashes[i+1:]...)
		consumed, err := s.repo.ConsumeBackupCode(ctx, user.ID, user.BackupCodeHashes, remaining)
		if err != nil {
			return false, err
		}
		if !consumed {
			s.logger.Warn("Backup code already redeemed", "user_id", user.ID)
			return false, nil
		}
		s.logger.Info("Backup code used", "user_id", user.ID, "remaining", len(remaining))
		return true, nil
	}
	return false, nil
}

func (s *twoFactorService) recordChange(ctx context.Context, userID, description string) {
	s.recorder.Record(ctx, &audit.Entry{
		UserID:       userID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceUser,
		ResourceID:   userID,
		Description:  description,
	})
}
