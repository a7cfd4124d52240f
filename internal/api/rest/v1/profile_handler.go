package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/profiles"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProfileHandler defines the interface for caregiver and provider profiles
type ProfileHandler interface {
	UpsertCaregiver(ctx *gin.Context)
	UpsertProvider(ctx *gin.Context)
	SearchCaregivers(ctx *gin.Context)
	SearchProviders(ctx *gin.Context)
	GetByUserID(ctx *gin.Context)
	VerifyProvider(ctx *gin.Context)
}

type profileHandler struct {
	profileService profiles.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService profiles.ProfileService) ProfileHandler {
	return &profileHandler{profileService: profileService}
}

// ProfileResponse holds whichever profiles a user has
type ProfileResponse struct {
	Caregiver *CaregiverProfileResponse `json:"caregiver,omitempty"`
	Provider  *ProviderProfileResponse  `json:"provider,omitempty"`
}

func (handler *profileHandler) UpsertCaregiver(ctx *gin.Context) {
	var request CaregiverProfileRequest
	if !bindRequest(ctx, &request) {
		return
	}

	profile, err := handler.profileService.UpsertCaregiver(ctx.Request.Context(), currentPrincipal(ctx), &profiles.CaregiverProfile{
		Bio:             request.Bio,
		HourlyRate:      request.HourlyRate,
		YearsExperience: request.YearsExperience,
		Specialties:     request.Specialties,
		Available:       request.Available,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newCaregiverProfileResponse(profile))
}

func (handler *profileHandler) UpsertProvider(ctx *gin.Context) {
	var request ProviderProfileRequest
	if !bindRequest(ctx, &request) {
		return
	}

	profile, err := handler.profileService.UpsertProvider(ctx.Request.Context(), currentPrincipal(ctx), &profiles.ProviderProfile{
		BusinessName: request.BusinessName,
		ServiceTypes: request.ServiceTypes,
		ServiceArea:  request.ServiceArea,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newProviderProfileResponse(profile))
}

// SearchCaregivers handles the GET request for the caregiver marketplace
// @Summary Search caregivers
// @Tags Profile
// @Produce json
// @Param specialty query string false "Specialty"
// @Param maxRate query string false "Highest hourly rate"
// @Param available query bool false "Only caregivers taking work"
// @Success 200 {array} CaregiverProfileResponse
// @Router /profiles/caregivers [get]
func (handler *profileHandler) SearchCaregivers(ctx *gin.Context) {
	query := &profiles.CaregiverQuery{
		Specialty:     ctx.Query("specialty"),
		AvailableOnly: strutil.ConvertToBool(ctx.Query("available")),
		Limit:         strutil.ConvertToInt(ctx.Query("limit")),
		Offset:        strutil.ConvertToInt(ctx.Query("offset")),
	}
	if maxRate := ctx.Query("maxRate"); len(maxRate) > 0 {
		rate, err := decimal.NewFromString(maxRate)
		if err != nil {
			abortBadRequest(ctx, fmt.Sprintf("invalid maxRate: %v", err))
			return
		}
		query.MaxRate = &rate
	}

	caregivers, err := handler.profileService.SearchCaregivers(ctx.Request.Context(), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []CaregiverProfileResponse{}
	for _, caregiver := range caregivers {
		listResponse = append(listResponse, newCaregiverProfileResponse(caregiver))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *profileHandler) SearchProviders(ctx *gin.Context) {
	query := &profiles.ProviderQuery{
		ServiceType:  ctx.Query("serviceType"),
		VerifiedOnly: strutil.ConvertToBool(ctx.Query("verified")),
		Limit:        strutil.ConvertToInt(ctx.Query("limit")),
		Offset:       strutil.ConvertToInt(ctx.Query("offset")),
	}

	providers, err := handler.profileService.SearchProviders(ctx.Request.Context(), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []ProviderProfileResponse{}
	for _, provider := range providers {
		listResponse = append(listResponse, newProviderProfileResponse(provider))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByUserID returns the caregiver and/or provider profile of a user, 404 when neither exists
func (handler *profileHandler) GetByUserID(ctx *gin.Context) {
	userID := ctx.Param("userId")
	var response ProfileResponse

	caregiver, err := handler.profileService.GetCaregiver(ctx.Request.Context(), userID)
	switch {
	case err == nil:
		view := newCaregiverProfileResponse(caregiver)
		response.Caregiver = &view
	case !errors.Is(err, apperr.ErrNotFound):
		abortWithError(ctx, err)
		return
	}

	provider, err := handler.profileService.GetProvider(ctx.Request.Context(), userID)
	switch {
	case err == nil:
		view := newProviderProfileResponse(provider)
		response.Provider = &view
	case !errors.Is(err, apperr.ErrNotFound):
		abortWithError(ctx, err)
		return
	}

	if response.Caregiver == nil && response.Provider == nil {
		abortWithError(ctx, fmt.Errorf("%w: no profile for user %s", apperr.ErrNotFound, userID))
		return
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *profileHandler) VerifyProvider(ctx *gin.Context) {
	var request VerifyProviderRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortBadRequest(ctx, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	profile, err := handler.profileService.SetProviderVerified(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("userId"), request.Verified)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newProviderProfileResponse(profile))
}
