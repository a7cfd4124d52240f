package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/profyt7/carelinkai-sub005/internal/domain/leads"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// LeadHandler defines the interface for family inquiries and the operator lead queue
type LeadHandler interface {
	Create(ctx *gin.Context)
	ListMine(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type leadHandler struct {
	leadService leads.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService leads.LeadService) LeadHandler {
	return &leadHandler{leadService: leadService}
}

// Create handles the POST request submitting an inquiry to a caregiver or provider
// @Summary Submit an inquiry
// @Tags Lead
// @Accept json
// @Produce json
// @Param requestBody body CreateLeadRequest true "Inquiry"
// @Success 201 {object} LeadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /leads [post]
func (handler *leadHandler) Create(ctx *gin.Context) {
	var request CreateLeadRequest
	if !bindRequest(ctx, &request) {
		return
	}

	caller := currentPrincipal(ctx)
	lead, err := handler.leadService.Create(ctx.Request.Context(), caller, &leads.CreateInput{
		TargetType:           leads.TargetType(request.TargetType),
		TargetID:             request.TargetID,
		Message:              request.Message,
		PreferredStartDate:   request.PreferredStartDate,
		ExpectedHoursPerWeek: request.ExpectedHoursPerWeek,
		Location:             request.Location,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newLeadResponse(lead, caller))
}

func (handler *leadHandler) ListMine(ctx *gin.Context) {
	caller := currentPrincipal(ctx)
	list, err := handler.leadService.ListMine(ctx.Request.Context(), caller)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []LeadResponse{}
	for _, lead := range list {
		listResponse = append(listResponse, newLeadResponse(lead, caller))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// List handles the GET request for the operator lead queue
// @Summary List leads
// @Tags Lead
// @Produce json
// @Param status query string false "Comma separated statuses"
// @Param targetType query string false "AIDE or PROVIDER"
// @Param assignedTo query string false "Assigned operator ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sortBy query string false "createdAt, updatedAt or status"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} LeadPageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /operator/leads [get]
func (handler *leadHandler) List(ctx *gin.Context) {
	query := leads.NewQuery()

	for _, status := range strutil.SplitCSV(ctx.Query("status")) {
		query.Statuses = append(query.Statuses, leads.Status(status))
	}
	if targetType := ctx.Query("targetType"); len(targetType) > 0 {
		query.TargetType = leads.TargetType(strings.ToUpper(targetType))
	}
	query.AssignedTo = ctx.Query("assignedTo")
	if page := ctx.Query("page"); len(page) > 0 {
		query.Page = strutil.ConvertToInt(page)
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}
	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = strings.ToLower(sortOrder)
	}

	caller := currentPrincipal(ctx)
	page, err := handler.leadService.List(ctx.Request.Context(), caller, query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []LeadResponse{}
	for _, lead := range page.Leads {
		listResponse = append(listResponse, newLeadResponse(lead, caller))
	}
	ctx.JSON(http.StatusOK, LeadPageResponse{
		Leads: listResponse,
		Pagination: PaginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	})
}

func (handler *leadHandler) GetByID(ctx *gin.Context) {
	caller := currentPrincipal(ctx)
	lead, err := handler.leadService.Get(ctx.Request.Context(), caller, ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newLeadResponse(lead, caller))
}

// Update changes status, notes or assignment of a lead
func (handler *leadHandler) Update(ctx *gin.Context) {
	var request UpdateLeadRequest
	if !bindRequest(ctx, &request) {
		return
	}

	update := &leads.Update{
		OperatorNotes:      request.OperatorNotes,
		AssignedOperatorID: request.AssignedOperatorID,
	}
	if request.Status != nil {
		status := leads.Status(*request.Status)
		update.Status = &status
	}

	caller := currentPrincipal(ctx)
	lead, err := handler.leadService.Update(ctx.Request.Context(), caller, ctx.Param("id"), update)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newLeadResponse(lead, caller))
}

func (handler *leadHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.leadService.Delete(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id")); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: fmt.Sprintf("deleted lead with id %s", ctx.Param("id"))})
}
