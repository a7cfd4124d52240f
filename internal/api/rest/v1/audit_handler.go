package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

const defaultReportWindow = 30 * 24 * time.Hour

// AuditHandler defines the interface for the administrative audit trail
type AuditHandler interface {
	Query(ctx *gin.Context)
	Export(ctx *gin.Context)
	SecurityEvents(ctx *gin.Context)
	ComplianceReport(ctx *gin.Context)
	UnusualAccess(ctx *gin.Context)
	ResourceTrail(ctx *gin.Context)
	UserTrail(ctx *gin.Context)
}

type auditHandler struct {
	auditService audit.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandler{auditService: auditService}
}

// parseAuditQuery reads the shared filter parameters of the trail endpoints
func parseAuditQuery(ctx *gin.Context) *audit.Query {
	query := audit.NewQuery()

	query.UserID = ctx.Query("userId")
	query.ActionedBy = ctx.Query("actionedBy")
	for _, action := range strutil.SplitCSV(ctx.Query("action")) {
		query.Actions = append(query.Actions, audit.Action(action))
	}
	query.ResourceTypes = strutil.SplitList(ctx.Query("resourceType"))
	query.ResourceID = ctx.Query("resourceId")
	query.IPAddress = ctx.Query("ipAddress")
	if from, ok := strutil.ParseTime(ctx.Query("from")); ok {
		query.From = &from
	}
	if to, ok := strutil.ParseTime(ctx.Query("to")); ok {
		query.To = &to
	}
	query.Limit = strutil.ConvertToIntDefault(ctx.Query("limit"), audit.DefaultQueryLimit)
	query.Offset = strutil.ConvertToInt(ctx.Query("offset"))
	if order := ctx.Query("sortOrder"); order == "asc" || order == "desc" {
		query.SortOrder = order
	}
	return query
}

// Query handles the GET request searching the audit trail
// @Summary Search audit logs
// @Tags Audit
// @Produce json
// @Param userId query string false "Subject user ID"
// @Param actionedBy query string false "Acting user ID"
// @Param action query string false "Comma separated actions"
// @Param resourceType query string false "Comma separated resource types"
// @Param resourceId query string false "Resource ID"
// @Param ipAddress query string false "Client IP address"
// @Param from query string false "Created at or after (RFC3339)"
// @Param to query string false "Created at or before (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} AuditPageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/audit-logs [get]
func (handler *auditHandler) Query(ctx *gin.Context) {
	result, err := handler.auditService.Query(ctx.Request.Context(), parseAuditQuery(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, AuditPageResponse{
		Logs:       newAuditLogResponses(result.Logs),
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
		HasMore:    result.HasMore,
	})
}

// Export handles the GET request downloading matching entries as CSV
// @Summary Export audit logs
// @Tags Audit
// @Produce text/csv
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/audit-logs/export [get]
func (handler *auditHandler) Export(ctx *gin.Context) {
	fileName := fmt.Sprintf("audit-logs-%s.csv", time.Now().UTC().Format("20060102-150405"))
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))

	if _, err := handler.auditService.ExportCSV(ctx.Request.Context(), currentPrincipal(ctx), parseAuditQuery(ctx), ctx.Writer); err != nil {
		if ctx.Writer.Written() {
			_ = ctx.Error(err)
			return
		}
		abortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusOK)
}

func (handler *auditHandler) SecurityEvents(ctx *gin.Context) {
	logs, err := handler.auditService.SecurityEvents(ctx.Request.Context(), strutil.ConvertToInt(ctx.Query("limit")))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAuditLogResponses(logs))
}

// ComplianceReport handles the GET request summarising the trail over a period
// @Summary Audit compliance report
// @Description Defaults to the last 30 days.
// @Tags Audit
// @Produce json
// @Param from query string false "Period start (RFC3339)"
// @Param to query string false "Period end (RFC3339)"
// @Success 200 {object} ComplianceReportResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/audit-logs/report [get]
func (handler *auditHandler) ComplianceReport(ctx *gin.Context) {
	end, ok := strutil.ParseTime(ctx.Query("to"))
	if !ok {
		end = time.Now().UTC()
	}
	start, ok := strutil.ParseTime(ctx.Query("from"))
	if !ok {
		start = end.Add(-defaultReportWindow)
	}
	if !end.After(start) {
		abortBadRequest(ctx, "to must be after from")
		return
	}

	report, err := handler.auditService.ComplianceReport(ctx.Request.Context(), start, end)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newComplianceReportResponse(report))
}

// UnusualAccess lists users whose access volume exceeds their role threshold
func (handler *auditHandler) UnusualAccess(ctx *gin.Context) {
	lookback := strutil.ConvertToIntDefault(ctx.Query("lookbackDays"), audit.DefaultLookbackDays)
	if lookback <= 0 || lookback > 365 {
		abortBadRequest(ctx, "lookbackDays must be between 1 and 365")
		return
	}

	flagged, err := handler.auditService.DetectUnusualAccess(ctx.Request.Context(), lookback)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []UnusualAccessResponse{}
	for _, f := range flagged {
		listResponse = append(listResponse, UnusualAccessResponse{
			UserID:       f.UserID,
			UserEmail:    f.UserEmail,
			UserRole:     string(f.UserRole),
			ResourceType: f.ResourceType,
			AccessCount:  f.AccessCount,
			Threshold:    f.Threshold,
			Severity:     string(f.Severity),
			Type:         f.Type,
		})
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *auditHandler) ResourceTrail(ctx *gin.Context) {
	logs, err := handler.auditService.ResourceTrail(ctx.Request.Context(), ctx.Param("type"), ctx.Param("id"), strutil.ConvertToInt(ctx.Query("limit")))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAuditLogResponses(logs))
}

func (handler *auditHandler) UserTrail(ctx *gin.Context) {
	logs, err := handler.auditService.UserTrail(ctx.Request.Context(), ctx.Param("id"), strutil.ConvertToInt(ctx.Query("limit")))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAuditLogResponses(logs))
}
