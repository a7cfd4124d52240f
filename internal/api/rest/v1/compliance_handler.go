package v1

import (
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// ComplianceHandler defines the interface for licenses, certifications and checks
type ComplianceHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	Verify(ctx *gin.Context)
}

type complianceHandler struct {
	complianceService compliance.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler
func NewComplianceHandler(complianceService compliance.ComplianceService) ComplianceHandler {
	return &complianceHandler{complianceService: complianceService}
}

// Create handles the POST request recording a compliance item
// @Summary Record a compliance item
// @Tags Compliance
// @Accept json
// @Produce json
// @Param requestBody body CreateComplianceRequest true "Item"
// @Success 201 {object} ComplianceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /compliance [post]
func (handler *complianceHandler) Create(ctx *gin.Context) {
	var request CreateComplianceRequest
	if !bindRequest(ctx, &request) {
		return
	}

	item, err := handler.complianceService.Create(ctx.Request.Context(), currentPrincipal(ctx), &compliance.CreateInput{
		OwnerType: compliance.OwnerType(request.OwnerType),
		OwnerID:   request.OwnerID,
		Type:      compliance.ItemType(request.Type),
		Title:     request.Title,
		IssuedAt:  request.IssuedAt,
		ExpiresAt: request.ExpiresAt,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newComplianceResponse(item))
}

// List handles the GET request for compliance items visible to the caller
// @Summary List compliance items
// @Tags Compliance
// @Produce json
// @Param ownerType query string false "CAREGIVER or HOME"
// @Param ownerId query string false "Comma separated owner IDs"
// @Param status query string false "Comma separated statuses"
// @Param expiringBefore query string false "Expiring before (RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Success 200 {array} ComplianceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /compliance [get]
func (handler *complianceHandler) List(ctx *gin.Context) {
	query := &compliance.Query{Limit: strutil.ConvertToInt(ctx.Query("limit"))}

	if ownerType := strutil.SplitCSV(ctx.Query("ownerType")); len(ownerType) == 1 {
		query.OwnerType = compliance.OwnerType(ownerType[0])
	}
	query.OwnerIDs = strutil.SplitList(ctx.Query("ownerId"))
	for _, status := range strutil.SplitCSV(ctx.Query("status")) {
		query.Statuses = append(query.Statuses, compliance.Status(status))
	}
	if before, ok := strutil.ParseTime(ctx.Query("expiringBefore")); ok {
		query.ExpiringBefore = &before
	}

	list, err := handler.complianceService.List(ctx.Request.Context(), currentPrincipal(ctx), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []ComplianceResponse{}
	for _, item := range list {
		listResponse = append(listResponse, newComplianceResponse(item))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *complianceHandler) Verify(ctx *gin.Context) {
	item, err := handler.complianceService.Verify(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newComplianceResponse(item))
}
