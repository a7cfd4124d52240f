//go:build integration
// +build integration

package app

import (
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/connector"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/cryptography"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/realtime"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Test constants
const (
	TestJWTSecret     = "test-jwt-secret-0123456789abcdef0123"
	TestEncryptionKey = "test-encryption-key"
	TestIssuer        = "carelink-test"
	TestPassword      = "correct horse battery"
	TestAppURL        = "https://app.carelink.test"
)

// shiftCounter records shift transitions in memory
type shiftCounter struct {
	transitions []string
}

func (c *shiftCounter) ShiftTransition(transition string) {
	c.transitions = append(c.transitions, transition)
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	*Services

	// Infrastructure
	Mailer    *connector.RecordingMailer
	Hub       *realtime.Hub
	Storage   documents.DocumentStorage
	Shifted   *shiftCounter
	DBContext *persistence.TestContext
}

// SetupTestServices wires every service over a fresh database, temp-dir storage and a recording mailer
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	db := persistence.SetupTestDB(t, dbType)

	storageSettings := &config.StorageSettings{Provider: config.LocalStorageProvider, LocalDir: t.TempDir()}
	storage, err := connector.NewLocalStorage(storageSettings.LocalDir, logger)
	require.NoError(t, err)

	cipher, err := cryptography.NewSecretCipher(logger, TestEncryptionKey)
	require.NoError(t, err)

	mailer := connector.NewRecordingMailer()
	hub := realtime.NewHub(logger)
	t.Cleanup(hub.Close)

	s := &TestServices{Mailer: mailer, Hub: hub, Storage: storage, Shifted: &shiftCounter{}, DBContext: db}

	repos := &persistence.Repositories{
		Users:         db.UserRepo,
		AccountTokens: db.AccountTokenRepo,
		Profiles:      db.ProfileRepo,
		Homes:         db.HomeRepo,
		Families:      db.FamilyRepo,
		Leads:         db.LeadRepo,
		Messages:      db.MessageRepo,
		Appointments:  db.AppointmentRepo,
		Documents:     db.DocumentRepo,
		Shifts:        db.ShiftRepo,
		Payments:      db.PaymentRepo,
		Compliance:    db.ComplianceRepo,
		Assessments:   db.AssessmentRepo,
		Notifications: db.NotificationRepo,
		Audit:         db.AuditRepo,
	}
	s.Services, err = NewServices(repos, &Collaborators{
		Storage:   storage,
		Mailer:    mailer,
		Publisher: hub,
		Cipher:    cipher,
		Hasher:    cryptography.NewPasswordHasher(bcrypt.MinCost),
		TOTP:      cryptography.NewTOTPProvider(TestIssuer),
		Shifts:    s.Shifted,
	}, &Settings{
		Auth: &config.AuthSettings{
			JWTSecret:     TestJWTSecret,
			TokenTTL:      time.Hour,
			Issuer:        TestIssuer,
			EncryptionKey: TestEncryptionKey,
			AppURL:        TestAppURL,
		},
		Storage:    storageSettings,
		Audit:      &config.AuditSettings{Enabled: true, RetentionDays: 30},
		Compliance: &config.ComplianceSettings{WarningDays: 30},
	}, logger)
	require.NoError(t, err)

	return s
}

// Principal returns the caller identity of user
func Principal(user *users.User) users.Principal {
	return users.Principal{ID: user.ID, Email: user.Email, Role: user.Role}
}
