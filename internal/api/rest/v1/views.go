package v1

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/assessments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
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

	"github.com/shopspring/decimal"
)

// UserResponse is an account without credentials
type UserResponse struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Phone            string     `json:"phone,omitempty"`
	Role             string     `json:"role"`
	Status           string     `json:"status"`
	TwoFactorEnabled bool       `json:"twoFactorEnabled"`
	EmailVerified    bool       `json:"emailVerified"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func newUserResponse(user *users.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Phone:            user.Phone,
		Role:             string(user.Role),
		Status:           string(user.Status),
		TwoFactorEnabled: user.TwoFactorEnabled,
		EmailVerified:    user.EmailVerifiedAt != nil,
		LastLoginAt:      user.LastLoginAt,
		CreatedAt:        user.CreatedAt,
	}
}

// UserListResponse is one page of accounts
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

// SessionResponse is returned by a successful login
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// TwoFactorSetupResponse carries the secret to load into an authenticator app
type TwoFactorSetupResponse struct {
	Secret      string   `json:"secret"`
	OTPAuthURL  string   `json:"otpauthUrl"`
	BackupCodes []string `json:"backupCodes"`
}

// CaregiverProfileResponse is the public view of a caregiver
type CaregiverProfileResponse struct {
	UserID          string          `json:"userId"`
	Bio             string          `json:"bio"`
	HourlyRate      decimal.Decimal `json:"hourlyRate"`
	YearsExperience int             `json:"yearsExperience"`
	Specialties     []string        `json:"specialties"`
	Available       bool            `json:"available"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func newCaregiverProfileResponse(p *profiles.CaregiverProfile) CaregiverProfileResponse {
	return CaregiverProfileResponse{
		UserID:          p.UserID,
		Bio:             p.Bio,
		HourlyRate:      p.HourlyRate,
		YearsExperience: p.YearsExperience,
		Specialties:     nonNil(p.Specialties),
		Available:       p.Available,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ProviderProfileResponse is the public view of a service provider
type ProviderProfileResponse struct {
	UserID       string    `json:"userId"`
	BusinessName string    `json:"businessName"`
	ServiceTypes []string  `json:"serviceTypes"`
	ServiceArea  string    `json:"serviceArea"`
	Verified     bool      `json:"verified"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func newProviderProfileResponse(p *profiles.ProviderProfile) ProviderProfileResponse {
	return ProviderProfileResponse{
		UserID:       p.UserID,
		BusinessName: p.BusinessName,
		ServiceTypes: nonNil(p.ServiceTypes),
		ServiceArea:  p.ServiceArea,
		Verified:     p.Verified,
		UpdatedAt:    p.UpdatedAt,
	}
}

// HomeResponse is an assisted-living home
type HomeResponse struct {
	ID         string    `json:"id"`
	OperatorID string    `json:"operatorId"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Capacity   int       `json:"capacity"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newHomeResponse(h *homes.Home) HomeResponse {
	return HomeResponse{
		ID:         h.ID,
		OperatorID: h.OperatorID,
		Name:       h.Name,
		Address:    h.Address,
		Capacity:   h.Capacity,
		Status:     string(h.Status),
		CreatedAt:  h.CreatedAt,
	}
}

// ResidentResponse is a resident of a home
type ResidentResponse struct {
	ID          string    `json:"id"`
	HomeID      string    `json:"homeId"`
	FamilyID    *string   `json:"familyId,omitempty"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	CareLevel   string    `json:"careLevel"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newResidentResponse(r *homes.Resident) ResidentResponse {
	return ResidentResponse{
		ID:          r.ID,
		HomeID:      r.HomeID,
		FamilyID:    r.FamilyID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		CareLevel:   r.CareLevel,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

// AssessmentResponse is one scored resident assessment
type AssessmentResponse struct {
	ID              string    `json:"id"`
	ResidentID      string    `json:"residentId"`
	Type            string    `json:"type"`
	Score           int       `json:"score"`
	Findings        string    `json:"findings"`
	Recommendations string    `json:"recommendations"`
	AssessedBy      string    `json:"assessedBy"`
	AssessedAt      time.Time `json:"assessedAt"`
}

func newAssessmentResponse(a *assessments.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:              a.ID,
		ResidentID:      a.ResidentID,
		Type:            string(a.Type),
		Score:           a.Score,
		Findings:        a.Findings,
		Recommendations: a.Recommendations,
		AssessedBy:      a.AssessedBy,
		AssessedAt:      a.AssessedAt,
	}
}

// FamilyResponse is a family workspace
type FamilyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func newFamilyResponse(f *families.Family) FamilyResponse {
	return FamilyResponse{ID: f.ID, Name: f.Name, CreatedBy: f.CreatedBy, CreatedAt: f.CreatedAt}
}

// MemberResponse is a family membership
type MemberResponse struct {
	ID       string    `json:"id"`
	FamilyID string    `json:"familyId"`
	UserID   string    `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

func newMemberResponse(m *families.Member) MemberResponse {
	return MemberResponse{ID: m.ID, FamilyID: m.FamilyID, UserID: m.UserID, Role: string(m.Role), JoinedAt: m.JoinedAt}
}

// ActivityResponse is one entry of the family feed
type ActivityResponse struct {
	ID           string    `json:"id"`
	ActorID      string    `json:"actorId"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	ResourceType string    `json:"resourceType,omitempty"`
	ResourceID   string    `json:"resourceId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func newActivityResponse(a *families.Activity) ActivityResponse {
	return ActivityResponse{
		ID:           a.ID,
		ActorID:      a.ActorID,
		Type:         string(a.Type),
		Description:  a.Description,
		ResourceType: a.ResourceType,
		ResourceID:   a.ResourceID,
		CreatedAt:    a.CreatedAt,
	}
}

// DocumentResponse is the metadata of a family document
type DocumentResponse struct {
	ID          string    `json:"id"`
	FamilyID    string    `json:"familyId"`
	UploaderID  string    `json:"uploaderId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	FileSize    int64     `json:"fileSize"`
	Encrypted   bool      `json:"encrypted"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newDocumentResponse(d *documents.FamilyDocument) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		FamilyID:    d.FamilyID,
		UploaderID:  d.UploaderID,
		Title:       d.Title,
		Description: d.Description,
		Type:        string(d.Type),
		FileName:    d.FileName,
		ContentType: d.ContentType,
		FileSize:    d.FileSize,
		Encrypted:   d.Encrypted,
		Tags:        nonNil(d.Tags),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// PaginationResponse describes the page returned by a list endpoint
type PaginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// DocumentPageResponse is one page of family documents
type DocumentPageResponse struct {
	Documents  []DocumentResponse `json:"documents"`
	Pagination PaginationResponse `json:"pagination"`
}

// CommentResponse is a comment on a document
type CommentResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	AuthorID   string    `json:"authorId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newCommentResponse(c *documents.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, DocumentID: c.DocumentID, AuthorID: c.AuthorID, Content: c.Content, CreatedAt: c.CreatedAt}
}

// LeadResponse is an inquiry from a family
type LeadResponse struct {
	ID                   string     `json:"id"`
	FamilyID             string     `json:"familyId"`
	TargetType           string     `json:"targetType"`
	TargetID             string     `json:"targetId"`
	Status               string     `json:"status"`
	Message              string     `json:"message"`
	PreferredStartDate   *time.Time `json:"preferredStartDate,omitempty"`
	ExpectedHoursPerWeek *int       `json:"expectedHoursPerWeek,omitempty"`
	Location             string     `json:"location"`
	OperatorNotes        string     `json:"operatorNotes,omitempty"`
	AssignedOperatorID   *string    `json:"assignedOperatorId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// newLeadResponse hides operator notes from everyone but staff
func newLeadResponse(l *leads.Lead, caller users.Principal) LeadResponse {
	response := LeadResponse{
		ID:                   l.ID,
		FamilyID:             l.FamilyID,
		TargetType:           string(l.TargetType),
		TargetID:             l.TargetID,
		Status:               string(l.Status),
		Message:              l.Message,
		PreferredStartDate:   l.PreferredStartDate,
		ExpectedHoursPerWeek: l.ExpectedHoursPerWeek,
		Location:             l.Location,
		AssignedOperatorID:   l.AssignedOperatorID,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
	if caller.Can(users.PermLeadsManage) {
		response.OperatorNotes = l.OperatorNotes
	}
	return response
}

// LeadPageResponse is one page of the operator lead queue
type LeadPageResponse struct {
	Leads      []LeadResponse     `json:"leads"`
	Pagination PaginationResponse `json:"pagination"`
}

// MessageResponse is one direct message
type MessageResponse struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"senderId"`
	RecipientID string     `json:"recipientId"`
	Content     string     `json:"content"`
	LeadID      *string    `json:"leadId,omitempty"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func newMessageResponse(m *messages.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		LeadID:      m.LeadID,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}

// ConversationResponse summarises the thread with one partner
type ConversationResponse struct {
	PartnerID   string           `json:"partnerId"`
	LastMessage *MessageResponse `json:"lastMessage,omitempty"`
	UnreadCount int64            `json:"unreadCount"`
}

// CountResponse carries a single counter
type CountResponse struct {
	Count int64 `json:"count"`
}

// ParticipantResponse is an invitee and their answer
type ParticipantResponse struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// AppointmentResponse is a calendar entry
type AppointmentResponse struct {
	ID           string                `json:"id"`
	Type         string                `json:"type"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Status       string                `json:"status"`
	StartTime    time.Time             `json:"startTime"`
	EndTime      time.Time             `json:"endTime"`
	Location     string                `json:"location"`
	CreatedBy    string                `json:"createdBy"`
	HomeID       *string               `json:"homeId,omitempty"`
	ResidentID   *string               `json:"residentId,omitempty"`
	Participants []ParticipantResponse `json:"participants"`
	CancelReason string                `json:"cancelReason,omitempty"`
	CancelledAt  *time.Time            `json:"cancelledAt,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
}

func newAppointmentResponse(a *appointments.Appointment) AppointmentResponse {
	participants := make([]ParticipantResponse, 0, len(a.Participants))
	for _, p := range a.Participants {
		participants = append(participants, ParticipantResponse{UserID: p.UserID, Status: string(p.Status)})
	}
	return AppointmentResponse{
		ID:           a.ID,
		Type:         string(a.Type),
		Title:        a.Title,
		Description:  a.Description,
		Status:       string(a.Status),
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Location:     a.Location,
		CreatedBy:    a.CreatedBy,
		HomeID:       a.HomeID,
		ResidentID:   a.ResidentID,
		Participants: participants,
		CancelReason: a.CancelReason,
		CancelledAt:  a.CancelledAt,
		CreatedAt:    a.CreatedAt,
	}
}

// AvailabilityResponse answers whether a user is free in a window
type AvailabilityResponse struct {
	UserID    string                 `json:"userId"`
	Start     time.Time              `json:"start"`
	End       time.Time              `json:"end"`
	Available bool                   `json:"available"`
	Conflicts []ConflictResponseItem `json:"conflicts"`
}

func newAvailabilityResponse(r *appointments.AvailabilityResult) AvailabilityResponse {
	return AvailabilityResponse{
		UserID:    r.UserID,
		Start:     r.Start,
		End:       r.End,
		Available: r.Available,
		Conflicts: newConflictItems(r.Conflicts),
	}
}

func newConflictItems(conflicts []appointments.Conflict) []ConflictResponseItem {
	items := make([]ConflictResponseItem, 0, len(conflicts))
	for _, c := range conflicts {
		items = append(items, ConflictResponseItem{
			AppointmentID: c.AppointmentID,
			UserID:        c.UserID,
			Title:         c.Title,
			StartTime:     c.StartTime.UTC().Format(timeLayout),
			EndTime:       c.EndTime.UTC().Format(timeLayout),
		})
	}
	return items
}

// TimeSlotResponse is a window free for every requested user
type TimeSlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilitySlotResponse is one weekly working window
type AvailabilitySlotResponse struct {
	ID          string `json:"id"`
	DayOfWeek   int    `json:"dayOfWeek"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
}

// ShiftResponse is a caregiver shift
type ShiftResponse struct {
	ID            string          `json:"id"`
	HomeID        string          `json:"homeId"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       time.Time       `json:"endTime"`
	HourlyRate    decimal.Decimal `json:"hourlyRate"`
	Notes         string          `json:"notes"`
	Status        string          `json:"status"`
	CaregiverID   *string         `json:"caregiverId,omitempty"`
	AppointmentID *string         `json:"appointmentId,omitempty"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func newShiftResponse(s *shifts.Shift) ShiftResponse {
	return ShiftResponse{
		ID:            s.ID,
		HomeID:        s.HomeID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		HourlyRate:    s.HourlyRate,
		Notes:         s.Notes,
		Status:        string(s.Status),
		CaregiverID:   s.CaregiverID,
		AppointmentID: s.AppointmentID,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
	}
}

// ShiftListResponse is one page of shifts
type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
	Total  int64           `json:"total"`
}

// ApplicationResponse is a caregiver's application to a shift
type ApplicationResponse struct {
	ID          string     `json:"id"`
	ShiftID     string     `json:"shiftId"`
	CaregiverID string     `json:"caregiverId"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	AppliedAt   *time.Time `json:"appliedAt,omitempty"`
	OfferedAt   *time.Time `json:"offeredAt,omitempty"`
	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	WithdrawnAt *time.Time `json:"withdrawnAt,omitempty"`
}

func newApplicationResponse(a *shifts.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		ShiftID:     a.ShiftID,
		CaregiverID: a.CaregiverID,
		Status:      string(a.Status),
		Notes:       a.Notes,
		AppliedAt:   a.AppliedAt,
		OfferedAt:   a.OfferedAt,
		AcceptedAt:  a.AcceptedAt,
		RejectedAt:  a.RejectedAt,
		WithdrawnAt: a.WithdrawnAt,
	}
}

// PaymentResponse is a payout owed or made to a caregiver
type PaymentResponse struct {
	ID        string          `json:"id"`
	PayeeID   string          `json:"payeeId"`
	ShiftID   *string         `json:"shiftId,omitempty"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	PaidAt    *time.Time      `json:"paidAt,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func newPaymentResponse(p *payments.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		PayeeID:   p.PayeeID,
		ShiftID:   p.ShiftID,
		Type:      string(p.Type),
		Amount:    p.Amount,
		Status:    string(p.Status),
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
	}
}

// CompletedShiftResponse is a finished shift and the payment it produced
type CompletedShiftResponse struct {
	Shift   ShiftResponse    `json:"shift"`
	Payment *PaymentResponse `json:"payment,omitempty"`
}

// TimesheetResponse totals a caregiver's completed work
type TimesheetResponse struct {
	Shifts     []ShiftResponse   `json:"shifts"`
	Payments   []PaymentResponse `json:"payments"`
	TotalHours decimal.Decimal   `json:"totalHours"`
	TotalPay   decimal.Decimal   `json:"totalPay"`
}

// ComplianceResponse is a license, certification or similar credential
type ComplianceResponse struct {
	ID         string     `json:"id"`
	OwnerType  string     `json:"ownerType"`
	OwnerID    string     `json:"ownerId"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	IssuedAt   *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	Status     string     `json:"status"`
	VerifiedBy *string    `json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func newComplianceResponse(i *compliance.Item) ComplianceResponse {
	return ComplianceResponse{
		ID:         i.ID,
		OwnerType:  string(i.OwnerType),
		OwnerID:    i.OwnerID,
		Type:       string(i.Type),
		Title:      i.Title,
		IssuedAt:   i.IssuedAt,
		ExpiresAt:  i.ExpiresAt,
		Status:     string(i.Status),
		VerifiedBy: i.VerifiedBy,
		VerifiedAt: i.VerifiedAt,
		CreatedAt:  i.CreatedAt,
	}
}

// NotificationResponse is an in-app notification
type NotificationResponse struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	ReadAt    *time.Time        `json:"readAt,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

func newNotificationResponse(n *notifications.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// AuditLogResponse is one audit trail entry
type AuditLogResponse struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"userId"`
	ActionedBy   *string                `json:"actionedBy,omitempty"`
	Action       string                 `json:"action"`
	ResourceType string                 `json:"resourceType"`
	ResourceID   *string                `json:"resourceId,omitempty"`
	Description  string                 `json:"description"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	IPAddress    string                 `json:"ipAddress"`
	UserAgent    string                 `json:"userAgent"`
	CreatedAt    time.Time              `json:"createdAt"`
}

func newAuditLogResponse(l *audit.Log) AuditLogResponse {
	return AuditLogResponse{
		ID:           l.ID,
		UserID:       l.UserID,
		ActionedBy:   l.ActionedBy,
		Action:       string(l.Action),
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Description:  l.Description,
		Metadata:     l.Metadata,
		IPAddress:    l.IPAddress,
		UserAgent:    l.UserAgent,
		CreatedAt:    l.CreatedAt,
	}
}

func newAuditLogResponses(logs []*audit.Log) []AuditLogResponse {
	var listResponse = []AuditLogResponse{}
	for _, l := range logs {
		listResponse = append(listResponse, newAuditLogResponse(l))
	}
	return listResponse
}

// AuditPageResponse is one page of an audit query
type AuditPageResponse struct {
	Logs       []AuditLogResponse `json:"logs"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	HasMore    bool               `json:"hasMore"`
}

// UserActivityResponse is one row of the busiest-users table
type UserActivityResponse struct {
	UserID    string `json:"userId"`
	Count     int64  `json:"count"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// ComplianceReportResponse summarises audit activity over a period
type ComplianceReportResponse struct {
	StartDate             time.Time              `json:"startDate"`
	EndDate               time.Time              `json:"endDate"`
	DurationDays          int                    `json:"durationDays"`
	TotalEvents           int64                  `json:"totalEvents"`
	UniqueUsers           int                    `json:"uniqueUsers"`
	UniqueResourceTypes   int                    `json:"uniqueResourceTypes"`
	ActionBreakdown       map[string]int64       `json:"actionBreakdown"`
	ResourceTypeBreakdown map[string]int64       `json:"resourceTypeBreakdown"`
	TopUsers              []UserActivityResponse `json:"topUsers"`
	GeneratedAt           time.Time              `json:"generatedAt"`
}

func newComplianceReportResponse(r *audit.ComplianceReport) ComplianceReportResponse {
	topUsers := make([]UserActivityResponse, 0, len(r.TopUsers))
	for _, u := range r.TopUsers {
		topUsers = append(topUsers, UserActivityResponse{
			UserID:    u.UserID,
			Count:     u.Count,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      string(u.Role),
		})
	}
	return ComplianceReportResponse{
		StartDate:             r.StartDate,
		EndDate:               r.EndDate,
		DurationDays:          r.DurationDays,
		TotalEvents:           r.TotalEvents,
		UniqueUsers:           r.UniqueUsers,
		UniqueResourceTypes:   r.UniqueResourceTypes,
		ActionBreakdown:       r.ActionBreakdown,
		ResourceTypeBreakdown: r.ResourceTypeBreakdown,
		TopUsers:              topUsers,
		GeneratedAt:           r.GeneratedAt,
	}
}

// UnusualAccessResponse flags a user reading more records than their role normally does
type UnusualAccessResponse struct {
	UserID       string `json:"userId"`
	UserEmail    string `json:"userEmail"`
	UserRole     string `json:"userRole"`
	ResourceType string `json:"resourceType"`
	AccessCount  int    `json:"accessCount"`
	Threshold    int    `json:"threshold"`
	Severity     string `json:"severity"`
	Type         string `json:"type"`
}

// DashboardResponse carries the role-scoped counters of the home screen
type DashboardResponse struct {
	Role                 string           `json:"role"`
	UsersByRole          map[string]int64 `json:"usersByRole,omitempty"`
	LeadsByStatus        map[string]int64 `json:"leadsByStatus,omitempty"`
	OpenShifts           int64            `json:"openShifts"`
	PendingApplications  int64            `json:"pendingApplications"`
	ExpiringCompliance   int64            `json:"expiringCompliance"`
	UnreadMessages       int64            `json:"unreadMessages"`
	UnreadNotifications  int64            `json:"unreadNotifications"`
	UpcomingAppointments int64            `json:"upcomingAppointments"`
}

func newDashboardResponse(s *dashboard.Summary) DashboardResponse {
	return DashboardResponse{
		Role:                 string(s.Role),
		UsersByRole:          s.UsersByRole,
		LeadsByStatus:        s.LeadsByStatus,
		OpenShifts:           s.OpenShifts,
		PendingApplications:  s.PendingApplications,
		ExpiringCompliance:   s.ExpiringCompliance,
		UnreadMessages:       s.UnreadMessages,
		UnreadNotifications:  s.UnreadNotifications,
		UpcomingAppointments: s.UpcomingAppointments,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
