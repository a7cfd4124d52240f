package persistence

import (
	"fmt"

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
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"gorm.io/gorm"
)

// Repositories is every GORM repository over one connection
type Repositories struct {
	Users         users.UserRepository
	AccountTokens users.AccountTokenRepository
	Profiles      profiles.ProfileRepository
	Homes         homes.HomeRepository
	Families      families.FamilyRepository
	Leads         leads.LeadRepository
	Messages      messages.MessageRepository
	Appointments  appointments.AppointmentRepository
	Documents     documents.DocumentRepository
	Shifts        shifts.ShiftRepository
	Payments      payments.PaymentRepository
	Compliance    compliance.ComplianceRepository
	Assessments   assessments.AssessmentRepository
	Notifications notifications.NotificationRepository
	Audit         audit.AuditRepository
}

// NewRepositories builds the repositories over db
func NewRepositories(db *gorm.DB, logger logger.Logger) (*Repositories, error) {
	var (
		r   Repositories
		err error
	)

	if r.Users, err = NewGormUserRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	if r.AccountTokens, err = NewGormAccountTokenRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create account token repository: %w", err)
	}
	if r.Profiles, err = NewGormProfileRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create profile repository: %w", err)
	}
	if r.Homes, err = NewGormHomeRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create home repository: %w", err)
	}
	if r.Families, err = NewGormFamilyRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create family repository: %w", err)
	}
	if r.Leads, err = NewGormLeadRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create lead repository: %w", err)
	}
	if r.Messages, err = NewGormMessageRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create message repository: %w", err)
	}
	if r.Appointments, err = NewGormAppointmentRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create appointment repository: %w", err)
	}
	if r.Documents, err = NewGormDocumentRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create document repository: %w", err)
	}
	if r.Shifts, err = NewGormShiftRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create shift repository: %w", err)
	}
	if r.Payments, err = NewGormPaymentRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create payment repository: %w", err)
	}
	if r.Compliance, err = NewGormComplianceRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create compliance repository: %w", err)
	}
	if r.Assessments, err = NewGormAssessmentRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create assessment repository: %w", err)
	}
	if r.Notifications, err = NewGormNotificationRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create notification repository: %w", err)
	}
	if r.Audit, err = NewGormAuditRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create audit repository: %w", err)
	}
	return &r, nil
}
