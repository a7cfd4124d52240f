package v1

import (
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/assessments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"

	"github.com/gin-gonic/gin"
)

// HomeHandler defines the interface for homes, their residents and resident assessments
type HomeHandler interface {
	CreateHome(ctx *gin.Context)
	ListHomes(ctx *gin.Context)
	GetHome(ctx *gin.Context)
	CreateResident(ctx *gin.Context)
	ListResidents(ctx *gin.Context)
	GetResident(ctx *gin.Context)
	CreateAssessment(ctx *gin.Context)
	ListAssessments(ctx *gin.Context)
	GetAssessment(ctx *gin.Context)
}

type homeHandler struct {
	homeService       homes.HomeService
	assessmentService assessments.AssessmentService
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(homeService homes.HomeService, assessmentService assessments.AssessmentService) HomeHandler {
	return &homeHandler{
		homeService:       homeService,
		assessmentService: assessmentService,
	}
}

// CreateHome handles the POST request registering an assisted-living home
// @Summary Create a home
// @Tags Home
// @Accept json
// @Produce json
// @Param requestBody body CreateHomeRequest true "Home data"
// @Success 201 {object} HomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /homes [post]
func (handler *homeHandler) CreateHome(ctx *gin.Context) {
	var request CreateHomeRequest
	if !bindRequest(ctx, &request) {
		return
	}

	home, err := handler.homeService.CreateHome(ctx.Request.Context(), currentPrincipal(ctx), &homes.Home{
		OperatorID: request.OperatorID,
		Name:       request.Name,
		Address:    request.Address,
		Capacity:   request.Capacity,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newHomeResponse(home))
}

func (handler *homeHandler) ListHomes(ctx *gin.Context) {
	list, err := handler.homeService.ListHomes(ctx.Request.Context(), currentPrincipal(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []HomeResponse{}
	for _, home := range list {
		listResponse = append(listResponse, newHomeResponse(home))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *homeHandler) GetHome(ctx *gin.Context) {
	home, err := handler.homeService.GetHome(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newHomeResponse(home))
}

// CreateResident handles the POST request admitting a resident to a home
// @Summary Admit a resident
// @Tags Home
// @Accept json
// @Produce json
// @Param id path string true "Home ID"
// @Param requestBody body CreateResidentRequest true "Resident data"
// @Success 201 {object} ResidentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /homes/{id}/residents [post]
func (handler *homeHandler) CreateResident(ctx *gin.Context) {
	var request CreateResidentRequest
	if !bindRequest(ctx, &request) {
		return
	}

	resident, err := handler.homeService.CreateResident(ctx.Request.Context(), currentPrincipal(ctx), &homes.Resident{
		HomeID:      ctx.Param("id"),
		FamilyID:    request.FamilyID,
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		DateOfBirth: request.DateOfBirth,
		CareLevel:   request.CareLevel,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newResidentResponse(resident))
}

func (handler *homeHandler) ListResidents(ctx *gin.Context) {
	residents, err := handler.homeService.ListResidents(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []ResidentResponse{}
	for _, resident := range residents {
		listResponse = append(listResponse, newResidentResponse(resident))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *homeHandler) GetResident(ctx *gin.Context) {
	resident, err := handler.homeService.GetResident(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newResidentResponse(resident))
}

func (handler *homeHandler) CreateAssessment(ctx *gin.Context) {
	var request CreateAssessmentRequest
	if !bindRequest(ctx, &request) {
		return
	}

	assessment, err := handler.assessmentService.Create(ctx.Request.Context(), currentPrincipal(ctx), &assessments.CreateInput{
		ResidentID:      ctx.Param("id"),
		Type:            assessments.Type(request.Type),
		Score:           request.Score,
		Findings:        request.Findings,
		Recommendations: request.Recommendations,
		AssessedAt:      request.AssessedAt,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newAssessmentResponse(assessment))
}

func (handler *homeHandler) ListAssessments(ctx *gin.Context) {
	list, err := handler.assessmentService.ListByResident(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []AssessmentResponse{}
	for _, assessment := range list {
		listResponse = append(listResponse, newAssessmentResponse(assessment))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *homeHandler) GetAssessment(ctx *gin.Context) {
	assessment, err := handler.assessmentService.Get(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAssessmentResponse(assessment))
}
