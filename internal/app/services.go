package app

import (
	"fmt"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/assessments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
	"github.com/profyt7/carelinkai-sub005/internal/domain/cryptoalg"
	"github.com/profyt7/carelinkai-sub005/internal/domain/dashboard"
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
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"
)

// Collaborators are the non-database adapters the services are built over
type Collaborators struct {
	Storage   documents.DocumentStorage
	Mailer    notifications.Mailer
	Publisher notifications.Publisher
	Cipher    cryptoalg.SecretCipher
	Hasher    cryptoalg.PasswordHasher
	TOTP      cryptoalg.TOTPProvider
	Shifts    ShiftObserver
}

// Settings are the configuration sections the services read
type Settings struct {
	Auth       *config.AuthSettings
	Storage    *config.StorageSettings
	Audit      *config.AuditSettings
	Compliance *config.ComplianceSettings
}

// Services is the complete set of application services
type Services struct {
	Audit         audit.AuditService
	Auth          users.AuthService
	Accounts      users.AccountService
	Users         users.UserService
	TwoFactor     users.TwoFactorService
	Profiles      profiles.ProfileService
	Homes         homes.HomeService
	Families      families.FamilyService
	Leads         leads.LeadService
	Notifications notifications.NotificationService
	Messages      messages.MessageService
	Appointments  appointments.AppointmentService
	Documents     documents.DocumentService
	Shifts        shifts.ShiftService
	Payments      payments.PaymentService
	Compliance    compliance.ComplianceService
	Assessments   assessments.AssessmentService
	Dashboard     dashboard.DashboardService
}

// NewServices wires every service in dependency order: audit first, since all
// others record through it, then notifications, which shifts, leads,
// messages and appointments fan out to.
func NewServices(repos *persistence.Repositories, c *Collaborators, settings *Settings, logger logger.Logger) (*Services, error) {
	var (
		s   Services
		err error
	)

	if s.Audit, err = NewAuditService(repos.Audit, repos.Users, settings.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create audit service: %w", err)
	}
	if s.TwoFactor, err = NewTwoFactorService(repos.Users, c.TOTP, c.Hasher, c.Cipher, s.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create two-factor service: %w", err)
	}
	if s.Auth, err = NewAuthService(repos.Users, c.Hasher, s.TwoFactor, s.Audit, settings.Auth, logger); err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	s.Accounts, err = NewAccountService(repos.Users, repos.AccountTokens, c.Hasher, c.Mailer, s.Audit, settings.Auth, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}
	if s.Users, err = NewUserService(repos.Users, c.Hasher, s.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	if s.Profiles, err = NewProfileService(repos.Profiles, s.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}
	if s.Homes, err = NewHomeService(repos.Homes, repos.Families, s.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create home service: %w", err)
	}
	if s.Families, err = NewFamilyService(repos.Families, repos.Users, s.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create family service: %w", err)
	}
	if s.Notifications, err = NewNotificationService(repos.Notifications, repos.Users, c.Mailer, c.Publisher, logger); err != nil {
		return nil, fmt.Errorf("failed to create notification service: %w", err)
	}
	if s.Leads, err = NewLeadService(repos.Leads, repos.Users, s.Notifications, s.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create lead service: %w", err)
	}
	if s.Messages, err = NewMessageService(repos.Messages, repos.Users, s.Notifications, c.Publisher, logger); err != nil {
		return nil, fmt.Errorf("failed to create message service: %w", err)
	}
	if s.Appointments, err = NewAppointmentService(repos.Appointments, repos.Users, s.Notifications, s.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create appointment service: %w", err)
	}
	if s.Documents, err = NewDocumentService(repos.Documents, c.Storage, c.Cipher, s.Families, s.Audit, settings.Storage, logger); err != nil {
		return nil, fmt.Errorf("failed to create document service: %w", err)
	}
	s.Shifts, err = NewShiftService(repos.Shifts, repos.Homes, s.Homes, repos.Appointments, repos.Payments,
		s.Notifications, s.Audit, c.Shifts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift service: %w", err)
	}
	if s.Payments, err = NewPaymentService(repos.Payments, s.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create payment service: %w", err)
	}
	s.Compliance, err = NewComplianceService(repos.Compliance, repos.Homes, s.Homes, s.Notifications, s.Audit,
		settings.Compliance, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create compliance service: %w", err)
	}
	if s.Assessments, err = NewAssessmentService(repos.Assessments, s.Homes, s.Audit, logger); err != nil {
		return nil, fmt.Errorf("failed to create assessment service: %w", err)
	}
	s.Dashboard, err = NewDashboardService(DashboardRepositories{
		Users:         repos.Users,
		Homes:         repos.Homes,
		Leads:         repos.Leads,
		Shifts:        repos.Shifts,
		Compliance:    repos.Compliance,
		Messages:      repos.Messages,
		Notifications: repos.Notifications,
		Appointments:  repos.Appointments,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard service: %w", err)
	}

	logger.Info("Application services initialized successfully")
	return &s, nil
}
