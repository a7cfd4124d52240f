package v1

import (
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/dashboard"

	"github.com/gin-gonic/gin"
)

// DashboardHandler defines the interface for the home screen counters
type DashboardHandler interface {
	Summary(ctx *gin.Context)
}

type dashboardHandler struct {
	dashboardService dashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{dashboardService: dashboardService}
}

// Summary handles the GET request for the caller's dashboard
// @Summary Dashboard summary
// @Description Counters are scoped to the caller's role.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 403 {object} ErrorResponse
// @Router /dashboard/summary [get]
func (handler *dashboardHandler) Summary(ctx *gin.Context) {
	summary, err := handler.dashboardService.Summary(ctx.Request.Context(), currentPrincipal(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newDashboardResponse(summary))
}
