//go:build integration
// +build integration

package persistence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/assessments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"
	"github.com/profyt7/carelinkai-sub005/internal/domain/leads"
	"github.com/profyt7/carelinkai-sub005/internal/domain/messages"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/profiles"
	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestPasswordHash = "$2a$10$abcdefghijklmnopqrstuuJ1yq3Zr6rHk8xkZc4m7p0Qe9r8sYqG6"
	TestHourlyRate   = "25.50"
	TestHomeCapacity = 24
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	UserRepo         users.UserRepository
	AccountTokenRepo users.AccountTokenRepository
	ProfileRepo      profiles.ProfileRepository
	HomeRepo         homes.HomeRepository
	FamilyRepo       families.FamilyRepository
	LeadRepo         leads.LeadRepository
	MessageRepo      messages.MessageRepository
	AppointmentRepo  appointments.AppointmentRepository
	DocumentRepo     documents.DocumentRepository
	ShiftRepo        shifts.ShiftRepository
	PaymentRepo      payments.PaymentRepository
	ComplianceRepo   compliance.ComplianceRepository
	AssessmentRepo   assessments.AssessmentRepository
	NotificationRepo notifications.NotificationRepository
	AuditRepo        audit.AuditRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	logger := testutil.SetupTestLogger(t)

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName, logger)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	repos, err := NewRepositories(db, logger)
	require.NoError(t, err)

	tc := &TestContext{
		DB:               db,
		UserRepo:         repos.Users,
		AccountTokenRepo: repos.AccountTokens,
		ProfileRepo:      repos.Profiles,
		HomeRepo:         repos.Homes,
		FamilyRepo:       repos.Families,
		LeadRepo:         repos.Leads,
		MessageRepo:      repos.Messages,
		AppointmentRepo:  repos.Appointments,
		DocumentRepo:     repos.Documents,
		ShiftRepo:        repos.Shifts,
		PaymentRepo:      repos.Payments,
		ComplianceRepo:   repos.Compliance,
		AssessmentRepo:   repos.Assessments,
		NotificationRepo: repos.Notifications,
		AuditRepo:        repos.Audit,
	}

	return tc
}

// CreateTestUser stores an active user with role
func CreateTestUser(t *testing.T, tc *TestContext, role users.Role) *users.User {
	t.Helper()

	id := uuid.NewString()
	user := &users.User{
		ID:           id,
		Email:        strings.ToLower(string(role)) + "-" + id[:8] + "@example.com",
		PasswordHash: TestPasswordHash,
		FirstName:    "Test",
		LastName:     string(role),
		Role:         role,
		Status:       users.StatusActive,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, tc.UserRepo.Create(context.Background(), user))
	return user
}

// CreateTestHome stores an active home run by operatorID
func CreateTestHome(t *testing.T, tc *TestContext, operatorID string) *homes.Home {
	t.Helper()

	home := &homes.Home{
		ID:         uuid.NewString(),
		OperatorID: operatorID,
		Name:       "Maple Grove " + uuid.NewString()[:4],
		Address:    "12 Maple Street",
		Capacity:   TestHomeCapacity,
		Status:     homes.HomeActive,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, tc.HomeRepo.CreateHome(context.Background(), home))
	return home
}

// CreateTestResident stores an active resident of homeID
func CreateTestResident(t *testing.T, tc *TestContext, homeID string, familyID *string) *homes.Resident {
	t.Helper()

	resident := &homes.Resident{
		ID:          uuid.NewString(),
		HomeID:      homeID,
		FamilyID:    familyID,
		FirstName:   "Edith",
		LastName:    "Clarke",
		DateOfBirth: time.Date(1938, time.March, 10, 0, 0, 0, 0, time.UTC),
		CareLevel:   "ASSISTED",
		Status:      homes.ResidentActive,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, tc.HomeRepo.CreateResident(context.Background(), resident))
	return resident
}

// CreateTestFamily stores a family owned by ownerID
func CreateTestFamily(t *testing.T, tc *TestContext, ownerID string) *families.Family {
	t.Helper()

	now := time.Now().UTC()
	family := &families.Family{
		ID:        uuid.NewString(),
		Name:      "Clarke family",
		CreatedBy: ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &families.Member{
		ID:       uuid.NewString(),
		FamilyID: family.ID,
		UserID:   ownerID,
		Role:     families.MemberOwner,
		JoinedAt: now,
	}
	require.NoError(t, tc.FamilyRepo.Create(context.Background(), family, owner))
	return family
}

// CreateTestShift stores an open shift of homeID starting at start and lasting hours
func CreateTestShift(t *testing.T, tc *TestContext, homeID string, start time.Time, hours int) *shifts.Shift {
	t.Helper()

	shift := &shifts.Shift{
		ID:         uuid.NewString(),
		HomeID:     homeID,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(hours) * time.Hour),
		HourlyRate: decimal.RequireFromString(TestHourlyRate),
		Status:     shifts.StatusOpen,
		Version:    1,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, tc.ShiftRepo.Create(context.Background(), shift))
	return shift
}

// NewTestAppointment builds an unsaved confirmed appointment created by creatorID
func NewTestAppointment(creatorID string, start time.Time, duration time.Duration, participantIDs ...string) *appointments.Appointment {
	participants := make([]appointments.Participant, len(participantIDs))
	for i, id := range participantIDs {
		participants[i] = appointments.Participant{UserID: id, Status: appointments.ParticipantPending}
	}
	return &appointments.Appointment{
		ID:           uuid.NewString(),
		Type:         appointments.TypeConsultation,
		Title:        "Care consultation",
		Status:       appointments.StatusConfirmed,
		StartTime:    start,
		EndTime:      start.Add(duration),
		CreatedBy:    creatorID,
		Participants: participants,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}
