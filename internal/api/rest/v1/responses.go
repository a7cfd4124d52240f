package v1

import (
	"errors"
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse acknowledges a request that returns no resource
type InfoResponse struct {
	Message string `json:"message"`
}

// ConflictResponse lists the appointments that overlap a proposed booking
type ConflictResponse struct {
	Message                   string                 `json:"message"`
	ConflictingAppointmentIDs []string               `json:"conflictingAppointmentIds"`
	Conflicts                 []ConflictResponseItem `json:"conflicts"`
}

// ConflictResponseItem is one overlapping booking
type ConflictResponseItem struct {
	AppointmentID string `json:"appointmentId"`
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

// statusFor maps an error kind to its HTTP status
func statusFor(err error) int {
	switch apperr.Kind(err) {
	case apperr.ErrValidation, apperr.ErrInvalidState:
		return http.StatusBadRequest
	case apperr.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the error body for err. Unclassified errors are attached
// to the gin context for the request logger and reported without their text.
func abortWithError(ctx *gin.Context, err error) {
	var conflict *appointments.ConflictError
	if errors.As(err, &conflict) {
		ctx.AbortWithStatusJSON(http.StatusConflict, ConflictResponse{
			Message:                   "scheduling conflict detected",
			ConflictingAppointmentIDs: conflict.AppointmentIDs(),
			Conflicts:                 newConflictItems(conflict.Conflicts),
		})
		return
	}

	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = ctx.Error(err)
		message = "internal server error"
	}
	ctx.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

// abortBadRequest reports malformed input that never reached a service
func abortBadRequest(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: message})
}
