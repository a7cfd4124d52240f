package v1

import (
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/validators"

	"github.com/shopspring/decimal"
)

const timeLayout = time.RFC3339

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"firstName" validate:"required,notblank,max=100"`
	LastName  string `json:"lastName" validate:"required,notblank,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	Role      string `json:"role" validate:"required,oneof=FAMILY CAREGIVER PROVIDER AFFILIATE"`
}

// Validate for validating RegisterRequest struct
func (r *RegisterRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Code     string `json:"code" validate:"omitempty,max=32"`
}

// Validate for validating LoginRequest struct
func (r *LoginRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ChangePasswordRequest is the body of POST /auth/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128,nefield=CurrentPassword"`
}

// Validate for validating ChangePasswordRequest struct
func (r *ChangePasswordRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// EmailRequest names the account a mailed link is requested for
type EmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// Validate for validating EmailRequest struct
func (r *EmailRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// VerifyEmailRequest carries the token from a verification link
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required,max=200"`
}

// Validate for validating VerifyEmailRequest struct
func (r *VerifyEmailRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ResetPasswordRequest is the body of POST /auth/reset-password
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required,max=200"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=128"`
}

// Validate for validating ResetPasswordRequest struct
func (r *ResetPasswordRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// TwoFactorCodeRequest carries an authenticator or backup code
type TwoFactorCodeRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// Validate for validating TwoFactorCodeRequest struct
func (r *TwoFactorCodeRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// UpdateUserRequest changes the role and/or status of an account
type UpdateUserRequest struct {
	Role   *string `json:"role" validate:"omitempty,oneof=ADMIN OPERATOR CAREGIVER FAMILY STAFF AFFILIATE PROVIDER"`
	Status *string `json:"status" validate:"omitempty,oneof=ACTIVE PENDING SUSPENDED"`
}

// Validate requires at least one change
func (r *UpdateUserRequest) Validate() error {
	if r.Role == nil && r.Status == nil {
		return fmt.Errorf("%w: role or status is required", apperr.ErrValidation)
	}
	return validators.ValidateStruct(r)
}

// CaregiverProfileRequest is the body of PUT /profiles/caregiver
type CaregiverProfileRequest struct {
	Bio             string          `json:"bio" validate:"max=2000"`
	HourlyRate      decimal.Decimal `json:"hourlyRate" validate:"decimal_gte0"`
	YearsExperience int             `json:"yearsExperience" validate:"gte=0,lte=70"`
	Specialties     []string        `json:"specialties" validate:"max=20,dive,notblank,max=50"`
	Available       bool            `json:"available"`
}

// Validate for validating CaregiverProfileRequest struct
func (r *CaregiverProfileRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ProviderProfileRequest is the body of PUT /profiles/provider
type ProviderProfileRequest struct {
	BusinessName string   `json:"businessName" validate:"required,notblank,max=200"`
	ServiceTypes []string `json:"serviceTypes" validate:"max=20,dive,notblank,max=50"`
	ServiceArea  string   `json:"serviceArea" validate:"max=200"`
}

// Validate for validating ProviderProfileRequest struct
func (r *ProviderProfileRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// VerifyProviderRequest sets the verified flag of a provider
type VerifyProviderRequest struct {
	Verified bool `json:"verified"`
}

// CreateHomeRequest is the body of POST /homes. OperatorID is only read for admins.
type CreateHomeRequest struct {
	OperatorID string `json:"operatorId" validate:"omitempty,uuid4"`
	Name       string `json:"name" validate:"required,notblank,max=200"`
	Address    string `json:"address" validate:"required,notblank,max=500"`
	Capacity   int    `json:"capacity" validate:"gt=0,lte=10000"`
}

// Validate for validating CreateHomeRequest struct
func (r *CreateHomeRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CreateResidentRequest is the body of POST /homes/:id/residents
type CreateResidentRequest struct {
	FamilyID    *string   `json:"familyId" validate:"omitempty,uuid4"`
	FirstName   string    `json:"firstName" validate:"required,notblank,max=100"`
	LastName    string    `json:"lastName" validate:"required,notblank,max=100"`
	DateOfBirth time.Time `json:"dateOfBirth" validate:"required"`
	CareLevel   string    `json:"careLevel" validate:"max=50"`
}

// Validate for validating CreateResidentRequest struct
func (r *CreateResidentRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CreateAssessmentRequest is the body of POST /residents/:id/assessments
type CreateAssessmentRequest struct {
	Type            string     `json:"type" validate:"required,oneof=ADL COGNITIVE FALL_RISK NUTRITION GENERAL"`
	Score           int        `json:"score" validate:"gte=0,lte=100"`
	Findings        string     `json:"findings" validate:"max=5000"`
	Recommendations string     `json:"recommendations" validate:"max=5000"`
	AssessedAt      *time.Time `json:"assessedAt"`
}

// Validate for validating CreateAssessmentRequest struct
func (r *CreateAssessmentRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CreateFamilyRequest is the body of POST /families
type CreateFamilyRequest struct {
	Name string `json:"name" validate:"required,notblank,max=200"`
}

// Validate for validating CreateFamilyRequest struct
func (r *CreateFamilyRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// AddMemberRequest is the body of POST /families/:id/members
type AddMemberRequest struct {
	UserID string `json:"userId" validate:"required,uuid4"`
	Role   string `json:"role" validate:"required,oneof=CARE_PROXY MEMBER VIEWER"`
}

// Validate for validating AddMemberRequest struct
func (r *AddMemberRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// UpdateDocumentRequest is the body of PATCH /family/documents/:id
type UpdateDocumentRequest struct {
	Title       *string   `json:"title" validate:"omitempty,notblank,max=255"`
	Description *string   `json:"description" validate:"omitempty,max=1000"`
	Type        *string   `json:"type" validate:"omitempty,oneof=CARE_PLAN MEDICAL_RECORD INSURANCE_DOCUMENT LEGAL_DOCUMENT PERSONAL_DOCUMENT PHOTO VIDEO OTHER"`
	Tags        *[]string `json:"tags" validate:"omitempty,max=20,dive,notblank,max=50"`
}

// Validate for validating UpdateDocumentRequest struct
func (r *UpdateDocumentRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CommentRequest is the body of POST /family/documents/:id/comments
type CommentRequest struct {
	Content string `json:"content" validate:"required,notblank,max=2000"`
}

// Validate for validating CommentRequest struct
func (r *CommentRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CreateLeadRequest is the body of POST /leads
type CreateLeadRequest struct {
	TargetType           string     `json:"targetType" validate:"required,oneof=AIDE PROVIDER"`
	TargetID             string     `json:"targetId" validate:"required,uuid4"`
	Message              string     `json:"message" validate:"max=5000"`
	PreferredStartDate   *time.Time `json:"preferredStartDate"`
	ExpectedHoursPerWeek *int       `json:"expectedHoursPerWeek" validate:"omitempty,gte=0,lte=168"`
	Location             string     `json:"location" validate:"max=500"`
}

// Validate for validating CreateLeadRequest struct
func (r *CreateLeadRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// UpdateLeadRequest is the body of PATCH /operator/leads/:id. An empty
// assignedOperatorId clears the assignment.
type UpdateLeadRequest struct {
	Status             *string `json:"status" validate:"omitempty,oneof=NEW IN_REVIEW CONTACTED CLOSED CANCELLED"`
	OperatorNotes      *string `json:"operatorNotes" validate:"omitempty,max=5000"`
	AssignedOperatorID *string `json:"assignedOperatorId" validate:"omitempty,len=0|uuid4"`
}

// Validate requires at least one change
func (r *UpdateLeadRequest) Validate() error {
	if r.Status == nil && r.OperatorNotes == nil && r.AssignedOperatorID == nil {
		return fmt.Errorf("%w: nothing to update", apperr.ErrValidation)
	}
	return validators.ValidateStruct(r)
}

// SendMessageRequest is the body of POST /messages
type SendMessageRequest struct {
	RecipientID string  `json:"recipientId" validate:"required,uuid4"`
	Content     string  `json:"content" validate:"required,notblank,max=5000"`
	LeadID      *string `json:"leadId" validate:"omitempty,uuid4"`
}

// Validate for validating SendMessageRequest struct
func (r *SendMessageRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CreateAppointmentRequest is the body of POST /calendar/appointments
type CreateAppointmentRequest struct {
	Type           string    `json:"type" validate:"required,oneof=CARE_EVALUATION FACILITY_TOUR CAREGIVER_SHIFT FAMILY_VISIT CONSULTATION MEDICAL_APPOINTMENT ADMIN_MEETING SOCIAL_EVENT"`
	Title          string    `json:"title" validate:"required,notblank,max=200"`
	Description    string    `json:"description" validate:"max=2000"`
	StartTime      time.Time `json:"startTime" validate:"required"`
	EndTime        time.Time `json:"endTime" validate:"required"`
	Location       string    `json:"location" validate:"max=500"`
	HomeID         *string   `json:"homeId" validate:"omitempty,uuid4"`
	ResidentID     *string   `json:"residentId" validate:"omitempty,uuid4"`
	ParticipantIDs []string  `json:"participantIds" validate:"max=50,dive,uuid4"`
}

// Validate checks fields and that the appointment ends after it starts
func (r *CreateAppointmentRequest) Validate() error {
	if err := validators.ValidateStruct(r); err != nil {
		return err
	}
	return validateWindow(r.StartTime, r.EndTime)
}

// TimeWindowRequest moves an appointment
type TimeWindowRequest struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
}

// Validate checks that the window ends after it starts
func (r *TimeWindowRequest) Validate() error {
	if err := validators.ValidateStruct(r); err != nil {
		return err
	}
	return validateWindow(r.StartTime, r.EndTime)
}

// ReasonRequest carries an optional cancellation reason
type ReasonRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// Validate for validating ReasonRequest struct
func (r *ReasonRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// RespondRequest answers an appointment invitation
type RespondRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED DECLINED"`
}

// Validate for validating RespondRequest struct
func (r *RespondRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// FindSlotsRequest is the body of POST /calendar/availability/slots
type FindSlotsRequest struct {
	UserIDs           []string  `json:"userIds" validate:"required,min=1,max=20,dive,uuid4"`
	From              time.Time `json:"from" validate:"required"`
	To                time.Time `json:"to" validate:"required"`
	DurationMinutes   int       `json:"durationMinutes" validate:"gte=15,lte=1440"`
	BusinessHoursOnly bool      `json:"businessHoursOnly"`
	ExcludeWeekends   bool      `json:"excludeWeekends"`
}

// Validate checks fields and the search range
func (r *FindSlotsRequest) Validate() error {
	if err := validators.ValidateStruct(r); err != nil {
		return err
	}
	return validateWindow(r.From, r.To)
}

// AvailabilitySlotRequest is one weekly working window, in minutes after midnight
type AvailabilitySlotRequest struct {
	DayOfWeek   int `json:"dayOfWeek" validate:"gte=0,lte=6"`
	StartMinute int `json:"startMinute" validate:"gte=0,lt=1440"`
	EndMinute   int `json:"endMinute" validate:"gt=0,lte=1440,gtfield=StartMinute"`
}

// AvailabilityScheduleRequest replaces the caller's weekly schedule
type AvailabilityScheduleRequest struct {
	Slots []AvailabilitySlotRequest `json:"slots" validate:"max=50,dive"`
}

// Validate for validating AvailabilityScheduleRequest struct
func (r *AvailabilityScheduleRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CreateShiftRequest is the body of POST /shifts
type CreateShiftRequest struct {
	HomeID     string          `json:"homeId" validate:"required,uuid4"`
	StartTime  time.Time       `json:"startTime" validate:"required"`
	EndTime    time.Time       `json:"endTime" validate:"required"`
	HourlyRate decimal.Decimal `json:"hourlyRate" validate:"decimal_gt0"`
	Notes      string          `json:"notes" validate:"max=5000"`
}

// Validate checks fields and that the shift ends after it starts
func (r *CreateShiftRequest) Validate() error {
	if err := validators.ValidateStruct(r); err != nil {
		return err
	}
	return validateWindow(r.StartTime, r.EndTime)
}

// NotesRequest carries optional free text for an application
type NotesRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// Validate for validating NotesRequest struct
func (r *NotesRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CaregiverActionRequest names the caregiver an operator acts on
type CaregiverActionRequest struct {
	CaregiverID string `json:"caregiverId" validate:"required,uuid4"`
	Notes       string `json:"notes" validate:"max=2000"`
}

// Validate for validating CaregiverActionRequest struct
func (r *CaregiverActionRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// ConfirmShiftRequest optionally names the accepted caregiver to assign
type ConfirmShiftRequest struct {
	CaregiverID string `json:"caregiverId" validate:"omitempty,uuid4"`
}

// Validate for validating ConfirmShiftRequest struct
func (r *ConfirmShiftRequest) Validate() error {
	return validators.ValidateStruct(r)
}

// CreateComplianceRequest is the body of POST /compliance
type CreateComplianceRequest struct {
	OwnerType string     `json:"ownerType" validate:"required,oneof=CAREGIVER HOME"`
	OwnerID   string     `json:"ownerId" validate:"required,uuid4"`
	Type      string     `json:"type" validate:"required,oneof=LICENSE CERTIFICATION BACKGROUND_CHECK TRAINING INSURANCE"`
	Title     string     `json:"title" validate:"required,notblank,max=200"`
	IssuedAt  *time.Time `json:"issuedAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// Validate for validating CreateComplianceRequest struct
func (r *CreateComplianceRequest) Validate() error {
	return validators.ValidateStruct(r)
}

func validateWindow(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end must be after start", apperr.ErrValidation)
	}
	return nil
}
