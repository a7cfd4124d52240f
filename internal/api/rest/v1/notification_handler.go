package v1

import (
	"fmt"
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// NotificationHandler defines the interface for in-app notifications
type NotificationHandler interface {
	List(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
	MarkAllRead(ctx *gin.Context)
}

type notificationHandler struct {
	notificationService notifications.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService notifications.NotificationService) NotificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

// List handles the GET request for the caller's notifications, newest first
// @Summary List notifications
// @Tags Notification
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Param limit query int false "Limit the number of results"
// @Success 200 {array} NotificationResponse
// @Router /notifications [get]
func (handler *notificationHandler) List(ctx *gin.Context) {
	unreadOnly := strutil.ConvertToBool(ctx.Query("unread"))
	limit := strutil.ConvertToInt(ctx.Query("limit"))

	list, err := handler.notificationService.List(ctx.Request.Context(), currentPrincipal(ctx), unreadOnly, limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []NotificationResponse{}
	for _, notification := range list {
		listResponse = append(listResponse, newNotificationResponse(notification))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *notificationHandler) MarkRead(ctx *gin.Context) {
	if err := handler.notificationService.MarkRead(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id")); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: fmt.Sprintf("marked notification %s as read", ctx.Param("id"))})
}

func (handler *notificationHandler) MarkAllRead(ctx *gin.Context) {
	count, err := handler.notificationService.MarkAllRead(ctx.Request.Context(), currentPrincipal(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, CountResponse{Count: count})
}
