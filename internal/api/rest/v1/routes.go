package v1

import (
	"net/http"

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
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/ratelimit"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Services are the application services behind the version 1 routes
type Services struct {
	Auth          users.AuthService
	Accounts      users.AccountService
	Users         users.UserService
	TwoFactor     users.TwoFactorService
	Profiles      profiles.ProfileService
	Homes         homes.HomeService
	Assessments   assessments.AssessmentService
	Families      families.FamilyService
	Documents     documents.DocumentService
	Leads         leads.LeadService
	Messages      messages.MessageService
	Appointments  appointments.AppointmentService
	Shifts        shifts.ShiftService
	Payments      payments.PaymentService
	Compliance    compliance.ComplianceService
	Notifications notifications.NotificationService
	Audit         audit.AuditService
	Dashboard     dashboard.DashboardService
}

// Platform carries the cross-cutting collaborators of the router
type Platform struct {
	Limiter        ratelimit.Limiter
	Observer       RequestObserver
	MetricsHandler http.Handler
	Database       Pinger
	Realtime       ConnectionServer
	Logger         logger.Logger
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services *Services, platform *Platform) {
	r.Use(RequestMeta(), Metrics(platform.Observer), RequestLogger(platform.Logger))

	systemHandler := NewSystemHandler(platform.Database, platform.Realtime, platform.Logger)
	r.GET("/healthz", systemHandler.Health)
	r.GET("/metrics", gin.WrapH(platform.MetricsHandler))

	v1 := r.Group(BasePath) // lookup in version file
	v1.GET("/healthz", systemHandler.Health)

	authHandler := NewAuthHandler(services.Auth, services.Accounts, services.Users, services.TwoFactor)
	public := v1.Group("", RateLimit(platform.Limiter, platform.Logger))
	public.POST("/auth/register", authHandler.Register)
	public.POST("/auth/login", authHandler.Login)
	public.POST("/auth/forgot-password", authHandler.ForgotPassword)
	public.POST("/auth/reset-password", authHandler.ResetPassword)
	public.POST("/auth/verify-email", authHandler.VerifyEmail)
	public.POST("/auth/resend-verification", authHandler.ResendVerification)

	api := v1.Group("", Authenticate(services.Auth), RateLimit(platform.Limiter, platform.Logger))

	// Auth Routes
	api.GET("/auth/me", authHandler.Me)
	api.POST("/auth/password", authHandler.ChangePassword)
	api.POST("/auth/send-verification", authHandler.SendVerification)
	api.POST("/auth/2fa/setup", authHandler.SetupTwoFactor)
	api.POST("/auth/2fa/enable", authHandler.EnableTwoFactor)
	api.POST("/auth/2fa/disable", authHandler.DisableTwoFactor)

	// User Routes
	userHandler := NewUserHandler(services.Users)
	adminOnly := RequireRoles(users.RoleAdmin)
	api.GET("/users", adminOnly, userHandler.List)
	api.PATCH("/users/:id", adminOnly, userHandler.Update)

	// Profile Routes
	profileHandler := NewProfileHandler(services.Profiles)
	api.PUT("/profiles/caregiver", RequireRoles(users.RoleCaregiver), profileHandler.UpsertCaregiver)
	api.PUT("/profiles/provider", RequireRoles(users.RoleProvider), profileHandler.UpsertProvider)
	api.GET("/profiles/caregivers", profileHandler.SearchCaregivers)
	api.GET("/profiles/providers", profileHandler.SearchProviders)
	api.PATCH("/profiles/providers/:userId/verify", adminOnly, profileHandler.VerifyProvider)
	api.GET("/profiles/:userId", profileHandler.GetByUserID)

	// Home, Resident and Assessment Routes
	homeHandler := NewHomeHandler(services.Homes, services.Assessments)
	api.POST("/homes", RequirePermission(users.PermHomesManage), homeHandler.CreateHome)
	api.GET("/homes", homeHandler.ListHomes)
	api.GET("/homes/:id", homeHandler.GetHome)
	api.POST("/homes/:id/residents", RequirePermission(users.PermResidentsManage), homeHandler.CreateResident)
	api.GET("/homes/:id/residents", RequirePermission(users.PermResidentsView), homeHandler.ListResidents)
	api.GET("/residents/:id", RequirePermission(users.PermResidentsView), homeHandler.GetResident)
	api.POST("/residents/:id/assessments", RequirePermission(users.PermAssessmentsManage), homeHandler.CreateAssessment)
	api.GET("/residents/:id/assessments", RequirePermission(users.PermResidentsView), homeHandler.ListAssessments)
	api.GET("/assessments/:id", RequirePermission(users.PermResidentsView), homeHandler.GetAssessment)

	// Family Routes
	familyHandler := NewFamilyHandler(services.Families)
	api.POST("/families", familyHandler.Create)
	api.GET("/families", familyHandler.ListMine)
	api.GET("/families/:id/members", familyHandler.ListMembers)
	api.POST("/families/:id/members", familyHandler.AddMember)
	api.GET("/families/:id/activity", familyHandler.ListActivity)

	// Family Document Routes
	documentHandler := NewDocumentHandler(services.Documents)
	api.POST("/family/documents", documentHandler.Upload)
	api.GET("/family/documents", documentHandler.List)
	api.GET("/family/documents/:id", documentHandler.GetByID)
	api.PATCH("/family/documents/:id", documentHandler.UpdateMetadata)
	api.DELETE("/family/documents/:id", documentHandler.DeleteByID)
	api.GET("/family/documents/:id/file", documentHandler.Download)
	api.POST("/family/documents/:id/comments", documentHandler.AddComment)
	api.GET("/family/documents/:id/comments", documentHandler.ListComments)

	// Lead Routes
	leadHandler := NewLeadHandler(services.Leads)
	api.POST("/leads", RequirePermission(users.PermLeadsCreate), leadHandler.Create)
	api.GET("/leads/mine", RequireRoles(users.RoleFamily), leadHandler.ListMine)
	operatorLeads := api.Group("/operator/leads", RequirePermission(users.PermLeadsManage))
	operatorLeads.GET("", leadHandler.List)
	operatorLeads.GET("/:id", leadHandler.GetByID)
	operatorLeads.PATCH("/:id", leadHandler.Update)
	operatorLeads.DELETE("/:id", leadHandler.DeleteByID)

	// Message Routes
	messageHandler := NewMessageHandler(services.Messages)
	api.POST("/messages", messageHandler.Send)
	api.GET("/messages/conversations", messageHandler.ListConversations)
	api.GET("/messages/thread/:userId", messageHandler.ListThread)
	api.GET("/messages/unread-count", messageHandler.UnreadCount)

	// Calendar Routes
	appointmentHandler := NewAppointmentHandler(services.Appointments)
	calendar := api.Group("/calendar", RequirePermission(users.PermAppointmentsView))
	calendar.POST("/appointments", appointmentHandler.Create)
	calendar.GET("/appointments", appointmentHandler.List)
	calendar.GET("/appointments/:id", appointmentHandler.GetByID)
	calendar.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)
	calendar.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
	calendar.POST("/appointments/:id/complete", appointmentHandler.Complete)
	calendar.POST("/appointments/:id/respond", appointmentHandler.Respond)
	calendar.GET("/availability", appointmentHandler.CheckAvailability)
	calendar.POST("/availability/slots", appointmentHandler.FindSlots)
	calendar.PUT("/availability/schedule", appointmentHandler.SetSchedule)
	calendar.GET("/availability/schedule", appointmentHandler.GetSchedule)

	// Shift Routes
	shiftHandler := NewShiftHandler(services.Shifts)
	caregiverOnly := RequireRoles(users.RoleCaregiver)
	api.GET("/shifts", shiftHandler.List)
	api.POST("/shifts", RequirePermission(users.PermShiftsCreate), shiftHandler.Create)
	api.GET("/shifts/timesheets", caregiverOnly, shiftHandler.Timesheets)
	api.GET("/shifts/:id", shiftHandler.GetByID)
	api.POST("/shifts/:id/apply", caregiverOnly, shiftHandler.Apply)
	api.DELETE("/shifts/:id/application", caregiverOnly, shiftHandler.Withdraw)
	api.POST("/shifts/:id/accept", caregiverOnly, shiftHandler.Accept)
	api.POST("/shifts/:id/start", caregiverOnly, shiftHandler.Start)
	api.POST("/shifts/:id/offer", shiftHandler.Offer)
	api.POST("/shifts/:id/reject", shiftHandler.Reject)
	api.POST("/shifts/:id/confirm", shiftHandler.Confirm)
	api.POST("/shifts/:id/cancel", shiftHandler.Cancel)
	api.POST("/shifts/:id/complete", shiftHandler.Complete)
	api.GET("/shifts/:id/applications", shiftHandler.ListApplications)

	// Payment Routes
	paymentHandler := NewPaymentHandler(services.Payments)
	api.GET("/payments", paymentHandler.List)
	api.POST("/payments/:id/paid", RequirePermission(users.PermPaymentsManage), paymentHandler.MarkPaid)

	// Compliance Routes
	complianceHandler := NewComplianceHandler(services.Compliance)
	api.POST("/compliance", complianceHandler.Create)
	api.GET("/compliance", complianceHandler.List)
	api.POST("/compliance/:id/verify", RequireRoles(users.RoleAdmin, users.RoleStaff), complianceHandler.Verify)

	// Notification Routes
	notificationHandler := NewNotificationHandler(services.Notifications)
	api.GET("/notifications", notificationHandler.List)
	api.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	api.POST("/notifications/:id/read", notificationHandler.MarkRead)

	// Audit Routes
	auditHandler := NewAuditHandler(services.Audit)
	auditLogs := api.Group("/admin/audit-logs", RequirePermission(users.PermAuditView))
	auditLogs.GET("", auditHandler.Query)
	auditLogs.GET("/export", RequirePermission(users.PermAuditExport), auditHandler.Export)
	auditLogs.GET("/security", auditHandler.SecurityEvents)
	auditLogs.GET("/report", auditHandler.ComplianceReport)
	auditLogs.GET("/unusual", auditHandler.UnusualAccess)
	auditLogs.GET("/resource/:type/:id", auditHandler.ResourceTrail)
	auditLogs.GET("/users/:id", auditHandler.UserTrail)

	// Dashboard Routes
	dashboardHandler := NewDashboardHandler(services.Dashboard)
	api.GET("/dashboard/summary", RequirePermission(users.PermDashboardView), dashboardHandler.Summary)

	// Realtime
	api.GET("/ws", systemHandler.Connect)
}
