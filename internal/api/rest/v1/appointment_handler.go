package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler defines the interface for the calendar
type AppointmentHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Reschedule(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	Complete(ctx *gin.Context)
	Respond(ctx *gin.Context)
	CheckAvailability(ctx *gin.Context)
	FindSlots(ctx *gin.Context)
	SetSchedule(ctx *gin.Context)
	GetSchedule(ctx *gin.Context)
}

type appointmentHandler struct {
	appointmentService appointments.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointmentService appointments.AppointmentService) AppointmentHandler {
	return &appointmentHandler{appointmentService: appointmentService}
}

// Create handles the POST request booking an appointment
// @Summary Book an appointment
// @Description Fails with 409 and the overlapping bookings when the creator or any participant is busy.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param requestBody body CreateAppointmentRequest true "Appointment"
// @Success 201 {object} AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ConflictResponse
// @Router /calendar/appointments [post]
func (handler *appointmentHandler) Create(ctx *gin.Context) {
	var request CreateAppointmentRequest
	if !bindRequest(ctx, &request) {
		return
	}

	appointment, err := handler.appointmentService.Create(ctx.Request.Context(), currentPrincipal(ctx), &appointments.CreateInput{
		Type:           appointments.Type(request.Type),
		Title:          request.Title,
		Description:    request.Description,
		StartTime:      request.StartTime,
		EndTime:        request.EndTime,
		Location:       request.Location,
		HomeID:         request.HomeID,
		ResidentID:     request.ResidentID,
		ParticipantIDs: request.ParticipantIDs,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newAppointmentResponse(appointment))
}

// List handles the GET request for the caller's calendar
// @Summary List appointments
// @Tags Calendar
// @Produce json
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Param type query string false "Comma separated appointment types"
// @Param status query string false "Comma separated statuses"
// @Param limit query int false "Limit the number of results"
// @Success 200 {array} AppointmentResponse
// @Router /calendar/appointments [get]
func (handler *appointmentHandler) List(ctx *gin.Context) {
	query := &appointments.Query{Limit: strutil.ConvertToInt(ctx.Query("limit"))}

	if from, ok := strutil.ParseTime(ctx.Query("from")); ok {
		query.From = &from
	}
	if to, ok := strutil.ParseTime(ctx.Query("to")); ok {
		query.To = &to
	}
	for _, t := range strutil.SplitCSV(ctx.Query("type")) {
		query.Types = append(query.Types, appointments.Type(t))
	}
	for _, s := range strutil.SplitCSV(ctx.Query("status")) {
		query.Statuses = append(query.Statuses, appointments.Status(s))
	}

	list, err := handler.appointmentService.List(ctx.Request.Context(), currentPrincipal(ctx), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []AppointmentResponse{}
	for _, appointment := range list {
		listResponse = append(listResponse, newAppointmentResponse(appointment))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *appointmentHandler) GetByID(ctx *gin.Context) {
	appointment, err := handler.appointmentService.Get(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAppointmentResponse(appointment))
}

func (handler *appointmentHandler) Reschedule(ctx *gin.Context) {
	var request TimeWindowRequest
	if !bindRequest(ctx, &request) {
		return
	}

	appointment, err := handler.appointmentService.Reschedule(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), request.StartTime, request.EndTime)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAppointmentResponse(appointment))
}

func (handler *appointmentHandler) Cancel(ctx *gin.Context) {
	var request ReasonRequest
	if !bindOptionalRequest(ctx, &request) {
		return
	}

	appointment, err := handler.appointmentService.Cancel(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), request.Reason)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAppointmentResponse(appointment))
}

func (handler *appointmentHandler) Complete(ctx *gin.Context) {
	appointment, err := handler.appointmentService.Complete(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAppointmentResponse(appointment))
}

// Respond records the caller's answer to an invitation
func (handler *appointmentHandler) Respond(ctx *gin.Context) {
	var request RespondRequest
	if !bindRequest(ctx, &request) {
		return
	}

	appointment, err := handler.appointmentService.Respond(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), appointments.ParticipantStatus(request.Status))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAppointmentResponse(appointment))
}

// CheckAvailability handles the GET request asking whether a user is free
// @Summary Check availability
// @Tags Calendar
// @Produce json
// @Param userId query string false "User to check, defaults to the caller"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Success 200 {object} AvailabilityResponse
// @Failure 400 {object} ErrorResponse
// @Router /calendar/availability [get]
func (handler *appointmentHandler) CheckAvailability(ctx *gin.Context) {
	start, startOK := strutil.ParseTime(ctx.Query("start"))
	end, endOK := strutil.ParseTime(ctx.Query("end"))
	if !startOK || !endOK {
		abortBadRequest(ctx, "start and end are required RFC3339 timestamps")
		return
	}

	userID := ctx.DefaultQuery("userId", currentPrincipal(ctx).ID)
	result, err := handler.appointmentService.CheckAvailability(ctx.Request.Context(), userID, start, end)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAvailabilityResponse(result))
}

// FindSlots searches for windows in which every listed user is free
func (handler *appointmentHandler) FindSlots(ctx *gin.Context) {
	var request FindSlotsRequest
	if !bindRequest(ctx, &request) {
		return
	}

	slots, err := handler.appointmentService.FindSlots(ctx.Request.Context(), &appointments.SlotQuery{
		UserIDs:           request.UserIDs,
		From:              request.From,
		To:                request.To,
		Duration:          time.Duration(request.DurationMinutes) * time.Minute,
		BusinessHoursOnly: request.BusinessHoursOnly,
		ExcludeWeekends:   request.ExcludeWeekends,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []TimeSlotResponse{}
	for _, slot := range slots {
		listResponse = append(listResponse, TimeSlotResponse{Start: slot.Start, End: slot.End})
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// SetSchedule replaces the caller's weekly working hours
func (handler *appointmentHandler) SetSchedule(ctx *gin.Context) {
	var request AvailabilityScheduleRequest
	if !bindRequest(ctx, &request) {
		return
	}

	slots := make([]*appointments.AvailabilitySlot, 0, len(request.Slots))
	for _, slot := range request.Slots {
		slots = append(slots, &appointments.AvailabilitySlot{
			DayOfWeek:   slot.DayOfWeek,
			StartMinute: slot.StartMinute,
			EndMinute:   slot.EndMinute,
		})
	}

	saved, err := handler.appointmentService.SetAvailability(ctx.Request.Context(), currentPrincipal(ctx), slots)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newAvailabilitySlotResponses(saved))
}

func (handler *appointmentHandler) GetSchedule(ctx *gin.Context) {
	userID := ctx.DefaultQuery("userId", currentPrincipal(ctx).ID)
	slots, err := handler.appointmentService.ListAvailability(ctx.Request.Context(), userID)
	if err != nil {
		abortWithError(ctx, fmt.Errorf("failed to load schedule of %s: %w", userID, err))
		return
	}
	ctx.JSON(http.StatusOK, newAvailabilitySlotResponses(slots))
}

func newAvailabilitySlotResponses(slots []*appointments.AvailabilitySlot) []AvailabilitySlotResponse {
	var listResponse = []AvailabilitySlotResponse{}
	for _, slot := range slots {
		listResponse = append(listResponse, AvailabilitySlotResponse{
			ID:          slot.ID,
			DayOfWeek:   slot.DayOfWeek,
			StartMinute: slot.StartMinute,
			EndMinute:   slot.EndMinute,
		})
	}
	return listResponse
}
