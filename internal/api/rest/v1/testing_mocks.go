//go:build unit
// +build unit

package v1

import (
	"context"
	"io"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/dashboard"
	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"

	"github.com/stretchr/testify/mock"
)

// MockTokenParser is a mock implementation of TokenParser
type MockTokenParser struct {
	mock.Mock
}

func (m *MockTokenParser) ParseToken(token string) (*users.Principal, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Principal), args.Error(1)
}

// MockShiftService is a mock implementation of shifts.ShiftService
type MockShiftService struct {
	mock.Mock
}

func (m *MockShiftService) shift(args mock.Arguments) (*shifts.Shift, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shifts.Shift), args.Error(1)
}

func (m *MockShiftService) application(args mock.Arguments) (*shifts.Application, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shifts.Application), args.Error(1)
}

func (m *MockShiftService) List(ctx context.Context, caller users.Principal, query *shifts.Query) ([]*shifts.Shift, int64, error) {
	args := m.Called(ctx, caller, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*shifts.Shift), args.Get(1).(int64), args.Error(2)
}

func (m *MockShiftService) Create(ctx context.Context, caller users.Principal, input *shifts.CreateInput) (*shifts.Shift, error) {
	return m.shift(m.Called(ctx, caller, input))
}

func (m *MockShiftService) Get(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Shift, error) {
	return m.shift(m.Called(ctx, caller, shiftID))
}

func (m *MockShiftService) Apply(ctx context.Context, caller users.Principal, shiftID, notes string) (*shifts.Application, error) {
	return m.application(m.Called(ctx, caller, shiftID, notes))
}

func (m *MockShiftService) Withdraw(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Application, error) {
	return m.application(m.Called(ctx, caller, shiftID))
}

func (m *MockShiftService) Offer(ctx context.Context, caller users.Principal, shiftID, caregiverID, notes string) (*shifts.Application, error) {
	return m.application(m.Called(ctx, caller, shiftID, caregiverID, notes))
}

func (m *MockShiftService) Reject(ctx context.Context, caller users.Principal, shiftID, caregiverID string) (*shifts.Application, error) {
	return m.application(m.Called(ctx, caller, shiftID, caregiverID))
}

func (m *MockShiftService) Accept(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Application, error) {
	return m.application(m.Called(ctx, caller, shiftID))
}

func (m *MockShiftService) Confirm(ctx context.Context, caller users.Principal, shiftID, caregiverID string) (*shifts.Shift, error) {
	return m.shift(m.Called(ctx, caller, shiftID, caregiverID))
}

func (m *MockShiftService) Start(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Shift, error) {
	return m.shift(m.Called(ctx, caller, shiftID))
}

func (m *MockShiftService) Cancel(ctx context.Context, caller users.Principal, shiftID, reason string) (*shifts.Shift, error) {
	return m.shift(m.Called(ctx, caller, shiftID, reason))
}

func (m *MockShiftService) Complete(ctx context.Context, caller users.Principal, shiftID string) (*shifts.Shift, *payments.Payment, error) {
	args := m.Called(ctx, caller, shiftID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var payment *payments.Payment
	if args.Get(1) != nil {
		payment = args.Get(1).(*payments.Payment)
	}
	return args.Get(0).(*shifts.Shift), payment, args.Error(2)
}

func (m *MockShiftService) ListApplications(ctx context.Context, caller users.Principal, shiftID string) ([]*shifts.Application, error) {
	args := m.Called(ctx, caller, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shifts.Application), args.Error(1)
}

func (m *MockShiftService) Timesheets(ctx context.Context, caller users.Principal) (*shifts.Timesheet, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shifts.Timesheet), args.Error(1)
}

// MockAuditService is a mock implementation of audit.AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry *audit.Entry) {
	m.Called(ctx, entry)
}

func (m *MockAuditService) RecordPHIAccess(ctx context.Context, userID, resourceType, resourceID, purpose string, granted bool) {
	m.Called(ctx, userID, resourceType, resourceID, purpose, granted)
}

func (m *MockAuditService) RecordDataExport(ctx context.Context, userID, resourceType, format string, filters map[string]interface{}, count int) string {
	args := m.Called(ctx, userID, resourceType, format, filters, count)
	return args.String(0)
}

func (m *MockAuditService) Query(ctx context.Context, query *audit.Query) (*audit.QueryResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.QueryResult), args.Error(1)
}

func (m *MockAuditService) logs(args mock.Arguments) ([]*audit.Log, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Log), args.Error(1)
}

func (m *MockAuditService) ResourceTrail(ctx context.Context, resourceType, resourceID string, limit int) ([]*audit.Log, error) {
	return m.logs(m.Called(ctx, resourceType, resourceID, limit))
}

func (m *MockAuditService) UserTrail(ctx context.Context, userID string, limit int) ([]*audit.Log, error) {
	return m.logs(m.Called(ctx, userID, limit))
}

func (m *MockAuditService) SecurityEvents(ctx context.Context, limit int) ([]*audit.Log, error) {
	return m.logs(m.Called(ctx, limit))
}

func (m *MockAuditService) ComplianceReport(ctx context.Context, start, end time.Time) (*audit.ComplianceReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.ComplianceReport), args.Error(1)
}

func (m *MockAuditService) Purge(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditService) HasAccessedBefore(ctx context.Context, userID, resourceType, resourceID string) (bool, error) {
	args := m.Called(ctx, userID, resourceType, resourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuditService) DetectUnusualAccess(ctx context.Context, lookbackDays int) ([]audit.UnusualAccess, error) {
	args := m.Called(ctx, lookbackDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.UnusualAccess), args.Error(1)
}

func (m *MockAuditService) ExportCSV(ctx context.Context, caller users.Principal, query *audit.Query, w io.Writer) (int, error) {
	args := m.Called(ctx, caller, query, w)
	return args.Int(0), args.Error(1)
}

// MockPaymentService is a mock implementation of payments.PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ListMine(ctx context.Context, caller users.Principal) ([]*payments.Payment, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payments.Payment), args.Error(1)
}

func (m *MockPaymentService) ListAll(ctx context.Context, caller users.Principal, query *payments.Query) ([]*payments.Payment, error) {
	args := m.Called(ctx, caller, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payments.Payment), args.Error(1)
}

func (m *MockPaymentService) MarkPaid(ctx context.Context, caller users.Principal, paymentID string) (*payments.Payment, error) {
	args := m.Called(ctx, caller, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Payment), args.Error(1)
}

// MockNotificationService is a mock implementation of notifications.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID string, kind notifications.Type, title, message string, data map[string]string) (*notifications.Notification, error) {
	args := m.Called(ctx, userID, kind, title, message, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.Notification), args.Error(1)
}

func (m *MockNotificationService) List(ctx context.Context, caller users.Principal, unreadOnly bool, limit int) ([]*notifications.Notification, error) {
	args := m.Called(ctx, caller, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notifications.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, caller users.Principal, notificationID string) error {
	args := m.Called(ctx, caller, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, caller users.Principal) (int64, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, caller users.Principal) (int64, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(int64), args.Error(1)
}

// MockDashboardService is a mock implementation of dashboard.DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context, caller users.Principal) (*dashboard.Summary, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Summary), args.Error(1)
}

// MockDocumentService is a mock implementation of documents.DocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) document(args mock.Arguments) (*documents.FamilyDocument, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.FamilyDocument), args.Error(1)
}

func (m *MockDocumentService) Upload(ctx context.Context, caller users.Principal, input *documents.UploadInput, file *documents.Upload) (*documents.FamilyDocument, error) {
	return m.document(m.Called(ctx, caller, input, file))
}

func (m *MockDocumentService) List(ctx context.Context, caller users.Principal, query *documents.Query) (*documents.Page, error) {
	args := m.Called(ctx, caller, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Page), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, caller users.Principal, documentID string) (*documents.FamilyDocument, error) {
	return m.document(m.Called(ctx, caller, documentID))
}

func (m *MockDocumentService) Download(ctx context.Context, caller users.Principal, documentID string) (*documents.Download, error) {
	args := m.Called(ctx, caller, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Download), args.Error(1)
}

func (m *MockDocumentService) UpdateMetadata(ctx context.Context, caller users.Principal, documentID string, update *documents.MetadataUpdate) (*documents.FamilyDocument, error) {
	return m.document(m.Called(ctx, caller, documentID, update))
}

func (m *MockDocumentService) Delete(ctx context.Context, caller users.Principal, documentID string) error {
	args := m.Called(ctx, caller, documentID)
	return args.Error(0)
}

func (m *MockDocumentService) AddComment(ctx context.Context, caller users.Principal, documentID, content string) (*documents.Comment, error) {
	args := m.Called(ctx, caller, documentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Comment), args.Error(1)
}

func (m *MockDocumentService) ListComments(ctx context.Context, caller users.Principal, documentID string) ([]*documents.Comment, error) {
	args := m.Called(ctx, caller, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documents.Comment), args.Error(1)
}

// MockAccountService is a mock implementation of users.AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) SendVerification(ctx context.Context, caller users.Principal) error {
	return m.Called(ctx, caller).Error(0)
}

func (m *MockAccountService) ResendVerification(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAccountService) VerifyEmail(ctx context.Context, token string) (*users.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockAccountService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAccountService) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}
