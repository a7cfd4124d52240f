package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/cryptoalg"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/google/uuid"
)

// tokenSecretBytes keeps the hex secret under bcrypt's 72 byte input limit
const tokenSecretBytes = 32

var (
	errTokenInvalid = fmt.Errorf("%w: invalid or unknown token", apperr.ErrValidation)
	errTokenExpired = fmt.Errorf("%w: token has expired, request a new one", apperr.ErrValidation)
	errTokenUsed    = fmt.Errorf("%w: token has already been used", apperr.ErrValidation)
)

// accountService implements users.AccountService. Tokens are mailed as
// "<token id>.<secret>"; only a bcrypt hash of the secret is stored.
type accountService struct {
	repo     users.UserRepository
	tokens   users.AccountTokenRepository
	hasher   cryptoalg.PasswordHasher
	mailer   notifications.Mailer
	recorder audit.Recorder
	appURL   string
	logger   logger.Logger
	now      func() time.Time
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(
	repo users.UserRepository,
	tokens users.AccountTokenRepository,
	hasher cryptoalg.PasswordHasher,
	mailer notifications.Mailer,
	recorder audit.Recorder,
	settings *config.AuthSettings,
	logger logger.Logger,
) (users.AccountService, error) {
	appURL := strings.TrimRight(settings.AppURL, "/")
	if appURL == "" {
		appURL = config.DefaultAppURL
	}
	return &accountService{
		repo:     repo,
		tokens:   tokens,
		hasher:   hasher,
		mailer:   mailer,
		recorder: recorder,
		appURL:   appURL,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *accountService) SendVerification(ctx context.Context, caller users.Principal) error {
	user, err := s.repo.GetByID(ctx, caller.ID)
	if err != nil {
		return err
	}
	if user.EmailVerifiedAt != nil {
		return fmt.Errorf("%w: email is already verified", apperr.ErrInvalidState)
	}
	return s.sendVerification(ctx, user, false)
}

func (s *accountService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.logger.Debug("Verification requested for unknown email")
			return nil
		}
		return err
	}
	if user.EmailVerifiedAt != nil {
		return nil
	}
	return s.sendVerification(ctx, user, true)
}

func (s *accountService) sendVerification(ctx context.Context, user *users.User, resend bool) error {
	raw, token, err := s.issue(ctx, user.ID, users.PurposeEmailVerification)
	if err != nil {
		return err
	}

	subject := "Verify your CareLinkAI account"
	if resend {
		subject = "Resend: " + subject
	}
	link := s.link("/auth/verify", raw)
	sent := s.send(ctx, &notifications.Email{
		To:      user.Email,
		Subject: subject,
		Body: fmt.Sprintf("Hello %s,\n\nPlease verify your email address by opening the link below:\n%s\n\n"+
			"This link expires in %d hours.\n\nIf you did not create a CareLinkAI account, please ignore this email.",
			user.FirstName, link, int(users.EmailVerificationTTL.Hours())),
	})

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       user.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceEmailVerification,
		ResourceID:   token.ID,
		Description:  "Email verification requested",
		Metadata:     map[string]interface{}{"emailSent": sent, "resend": resend},
	})
	return nil
}

func (s *accountService) VerifyEmail(ctx context.Context, raw string) (*users.User, error) {
	token, err := s.redeem(ctx, raw, users.PurposeEmailVerification, audit.ResourceEmailVerification)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if user.EmailVerifiedAt != nil {
		return user, nil
	}

	now := s.now()
	previous := user.Status
	user.EmailVerifiedAt = &now
	if user.Status == users.StatusPending {
		user.Status = users.StatusActive
	}
	user.UpdatedAt = now
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       user.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceUser,
		ResourceID:   user.ID,
		Description:  "Email successfully verified",
		Metadata:     map[string]interface{}{"previousStatus": previous, "newStatus": user.Status},
	})
	return user, nil
}

func (s *accountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.logger.Debug("Password reset requested for unknown email")
			return nil
		}
		return err
	}
	if user.Status == users.StatusSuspended {
		s.recorder.Record(ctx, &audit.Entry{
			UserID:       user.ID,
			Action:       audit.ActionAccessDenied,
			ResourceType: audit.ResourcePasswordReset,
			ResourceID:   user.ID,
			Description:  "Password reset refused: account suspended",
		})
		return nil
	}

	raw, token, err := s.issue(ctx, user.ID, users.PurposePasswordReset)
	if err != nil {
		return err
	}

	link := s.link("/auth/reset-password", raw)
	sent := s.send(ctx, &notifications.Email{
		To:      user.Email,
		Subject: "Reset Your CareLinkAI Password",
		Body: fmt.Sprintf("Hello %s,\n\nWe received a request to reset your CareLinkAI password. "+
			"To choose a new password, open the link below:\n%s\n\nThis link expires in %d hour.\n\n"+
			"If you did not request a password reset, please ignore this email.",
			user.FirstName, link, int(users.PasswordResetTTL.Hours())),
	})

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       user.ID,
		ActionedBy:   user.ID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourcePasswordReset,
		ResourceID:   token.ID,
		Description:  "Password reset requested",
		Metadata:     map[string]interface{}{"emailSent": sent},
	})
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, raw, password string) error {
	if len(password) < users.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperr.ErrValidation, users.MinPasswordLength)
	}

	token, err := s.redeem(ctx, raw, users.PurposePasswordReset, audit.ResourcePasswordReset)
	if err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	now := s.now()
	user.PasswordHash = hash
	user.UpdatedAt = now
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	// any other reset link mailed before this one dies with it
	if _, err := s.tokens.Revoke(ctx, user.ID, users.PurposePasswordReset, now); err != nil {
		s.logger.Warn("Failed to revoke reset tokens", "user_id", user.ID, "error", err)
	}

	s.recorder.Record(ctx, &audit.Entry{
		UserID:       user.ID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceUser,
		ResourceID:   user.ID,
		Description:  "Password reset completed",
	})
	return nil
}

// issue revokes the user's unused tokens for purpose and stores a new one.
// It returns the mailable token and its stored form.
func (s *accountService) issue(ctx context.Context, userID string, purpose users.TokenPurpose) (string, *users.AccountToken, error) {
	secret := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", nil, fmt.Errorf("failed to generate account token: %w", err)
	}
	plain := hex.EncodeToString(secret)

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	if _, err := s.tokens.Revoke(ctx, userID, purpose, now); err != nil {
		return "", nil, err
	}

	token := &users.AccountToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: hash,
		ExpiresAt: now.Add(purpose.TTL()),
		CreatedAt: now,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", nil, err
	}
	return token.ID + "." + plain, token, nil
}

// redeem checks raw against its stored hash and consumes it
func (s *accountService) redeem(ctx context.Context, raw string, purpose users.TokenPurpose, resource string) (*users.AccountToken, error) {
	id, plain, ok := strings.Cut(strings.TrimSpace(raw), ".")
	if !ok || id == "" || plain == "" {
		s.reject(ctx, AnonymousUserID, resource, "", "malformed token")
		return nil, errTokenInvalid
	}

	token, err := s.tokens.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.reject(ctx, AnonymousUserID, resource, "", "unknown token")
			return nil, errTokenInvalid
		}
		return nil, err
	}
	if token.Purpose != purpose || !s.hasher.Compare(token.TokenHash, plain) {
		s.reject(ctx, AnonymousUserID, resource, "", "unknown token")
		return nil, errTokenInvalid
	}
	if token.UsedAt != nil {
		s.reject(ctx, token.UserID, resource, token.ID, "token already used")
		return nil, errTokenUsed
	}
	if token.Expired(s.now()) {
		s.reject(ctx, token.UserID, resource, token.ID, "token expired")
		return nil, errTokenExpired
	}

	consumed, err := s.tokens.Consume(ctx, token.ID, s.now())
	if err != nil {
		return nil, err
	}
	if !consumed {
		s.reject(ctx, token.UserID, resource, token.ID, "token already used")
		return nil, errTokenUsed
	}
	return token, nil
}

func (s *accountService) reject(ctx context.Context, userID, resource, resourceID, reason string) {
	s.recorder.Record(ctx, &audit.Entry{
		UserID:       userID,
		Action:       audit.ActionAccessDenied,
		ResourceType: resource,
		ResourceID:   resourceID,
		Description:  "Account token rejected: " + reason,
	})
}

func (s *accountService) link(path, token string) string {
	return s.appURL + path + "?token=" + url.QueryEscape(token)
}

// send reports delivery instead of failing; the token is already stored
// and the user can ask for another mail.
func (s *accountService) send(ctx context.Context, email *notifications.Email) bool {
	if err := s.mailer.Send(ctx, email); err != nil {
		s.logger.Error("Failed to send account mail", "subject", email.Subject, "error", err)
		return false
	}
	return true
}
