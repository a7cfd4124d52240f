package v1

import (
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// ShiftHandler defines the interface for shift postings and their applications
type ShiftHandler interface {
	List(ctx *gin.Context)
	Create(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Apply(ctx *gin.Context)
	Withdraw(ctx *gin.Context)
	Offer(ctx *gin.Context)
	Reject(ctx *gin.Context)
	Accept(ctx *gin.Context)
	Confirm(ctx *gin.Context)
	Start(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	Complete(ctx *gin.Context)
	ListApplications(ctx *gin.Context)
	Timesheets(ctx *gin.Context)
}

type shiftHandler struct {
	shiftService shifts.ShiftService
}

// NewShiftHandler creates a new ShiftHandler
func NewShiftHandler(shiftService shifts.ShiftService) ShiftHandler {
	return &shiftHandler{shiftService: shiftService}
}

// List handles the GET request for shifts
// @Summary List shifts
// @Description Operators see the shifts of their homes; caregivers see open shifts or their applications.
// @Tags Shift
// @Produce json
// @Param homeId query string false "Home ID"
// @Param status query string false "Comma separated shift statuses"
// @Param from query string false "Starting at or after (RFC3339)"
// @Param to query string false "Starting before (RFC3339)"
// @Param mine query bool false "Only shifts the caller applied to"
// @Param applicationStatus query string false "Application status of the caller"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {object} ShiftListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /shifts [get]
func (handler *shiftHandler) List(ctx *gin.Context) {
	query := shifts.NewQuery()

	query.HomeID = ctx.Query("homeId")
	for _, status := range strutil.SplitCSV(ctx.Query("status")) {
		query.Statuses = append(query.Statuses, shifts.Status(status))
	}
	if from, ok := strutil.ParseTime(ctx.Query("from")); ok {
		query.From = &from
	}
	if to, ok := strutil.ParseTime(ctx.Query("to")); ok {
		query.To = &to
	}
	query.MyApplications = strutil.ConvertToBool(ctx.Query("mine"))
	if applicationStatus := strutil.SplitCSV(ctx.Query("applicationStatus")); len(applicationStatus) == 1 {
		query.ApplicationStatus = shifts.ApplicationStatus(applicationStatus[0])
		query.MyApplications = true
	}
	query.Limit = strutil.ConvertToIntDefault(ctx.Query("limit"), shifts.DefaultListLimit)
	query.Offset = strutil.ConvertToInt(ctx.Query("offset"))

	list, total, err := handler.shiftService.List(ctx.Request.Context(), currentPrincipal(ctx), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []ShiftResponse{}
	for _, shift := range list {
		listResponse = append(listResponse, newShiftResponse(shift))
	}
	ctx.JSON(http.StatusOK, ShiftListResponse{Shifts: listResponse, Total: total})
}

// Create handles the POST request posting a shift
// @Summary Post a shift
// @Tags Shift
// @Accept json
// @Produce json
// @Param requestBody body CreateShiftRequest true "Shift"
// @Success 201 {object} ShiftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /shifts [post]
func (handler *shiftHandler) Create(ctx *gin.Context) {
	var request CreateShiftRequest
	if !bindRequest(ctx, &request) {
		return
	}

	shift, err := handler.shiftService.Create(ctx.Request.Context(), currentPrincipal(ctx), &shifts.CreateInput{
		HomeID:     request.HomeID,
		StartTime:  request.StartTime,
		EndTime:    request.EndTime,
		HourlyRate: request.HourlyRate,
		Notes:      request.Notes,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newShiftResponse(shift))
}

func (handler *shiftHandler) GetByID(ctx *gin.Context) {
	shift, err := handler.shiftService.Get(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newShiftResponse(shift))
}

// Apply handles the POST request of a caregiver applying to an open shift
// @Summary Apply to a shift
// @Tags Shift
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param requestBody body NotesRequest false "Notes"
// @Success 201 {object} ApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shifts/{id}/apply [post]
func (handler *shiftHandler) Apply(ctx *gin.Context) {
	var request NotesRequest
	if !bindOptionalRequest(ctx, &request) {
		return
	}

	application, err := handler.shiftService.Apply(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), request.Notes)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newApplicationResponse(application))
}

func (handler *shiftHandler) Withdraw(ctx *gin.Context) {
	application, err := handler.shiftService.Withdraw(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newApplicationResponse(application))
}

// Offer handles the POST request of an operator offering a shift to a caregiver
// @Summary Offer a shift
// @Tags Shift
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param requestBody body CaregiverActionRequest true "Caregiver"
// @Success 200 {object} ApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /shifts/{id}/offer [post]
func (handler *shiftHandler) Offer(ctx *gin.Context) {
	var request CaregiverActionRequest
	if !bindRequest(ctx, &request) {
		return
	}

	application, err := handler.shiftService.Offer(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), request.CaregiverID, request.Notes)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newApplicationResponse(application))
}

func (handler *shiftHandler) Reject(ctx *gin.Context) {
	var request CaregiverActionRequest
	if !bindRequest(ctx, &request) {
		return
	}

	application, err := handler.shiftService.Reject(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), request.CaregiverID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newApplicationResponse(application))
}

func (handler *shiftHandler) Accept(ctx *gin.Context) {
	application, err := handler.shiftService.Accept(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newApplicationResponse(application))
}

// Confirm handles the POST request assigning the shift to the caregiver who accepted it
// @Summary Confirm a shift
// @Description Books a CAREGIVER_SHIFT appointment and assigns the shift. The caregiver may be omitted when exactly one offer was accepted.
// @Tags Shift
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param requestBody body ConfirmShiftRequest false "Caregiver"
// @Success 200 {object} ShiftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shifts/{id}/confirm [post]
func (handler *shiftHandler) Confirm(ctx *gin.Context) {
	var request ConfirmShiftRequest
	if !bindOptionalRequest(ctx, &request) {
		return
	}

	shift, err := handler.shiftService.Confirm(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), request.CaregiverID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newShiftResponse(shift))
}

func (handler *shiftHandler) Start(ctx *gin.Context) {
	shift, err := handler.shiftService.Start(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newShiftResponse(shift))
}

func (handler *shiftHandler) Cancel(ctx *gin.Context) {
	var request ReasonRequest
	if !bindOptionalRequest(ctx, &request) {
		return
	}

	shift, err := handler.shiftService.Cancel(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"), request.Reason)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newShiftResponse(shift))
}

// Complete handles the POST request closing a worked shift
// @Summary Complete a shift
// @Description Completes the linked appointment and creates the caregiver payment.
// @Tags Shift
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} CompletedShiftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shifts/{id}/complete [post]
func (handler *shiftHandler) Complete(ctx *gin.Context) {
	shift, payment, err := handler.shiftService.Complete(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response := CompletedShiftResponse{Shift: newShiftResponse(shift)}
	if payment != nil {
		paymentResponse := newPaymentResponse(payment)
		response.Payment = &paymentResponse
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *shiftHandler) ListApplications(ctx *gin.Context) {
	list, err := handler.shiftService.ListApplications(ctx.Request.Context(), currentPrincipal(ctx), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	var listResponse = []ApplicationResponse{}
	for _, application := range list {
		listResponse = append(listResponse, newApplicationResponse(application))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// Timesheets returns the caller's completed shifts and payments
func (handler *shiftHandler) Timesheets(ctx *gin.Context) {
	timesheet, err := handler.shiftService.Timesheets(ctx.Request.Context(), currentPrincipal(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	response := TimesheetResponse{
		Shifts:     []ShiftResponse{},
		Payments:   []PaymentResponse{},
		TotalHours: timesheet.TotalHours,
		TotalPay:   timesheet.TotalPay,
	}
	for _, shift := range timesheet.Shifts {
		response.Shifts = append(response.Shifts, newShiftResponse(shift))
	}
	for _, payment := range timesheet.Payments {
		response.Payments = append(response.Payments, newPaymentResponse(payment))
	}
	ctx.JSON(http.StatusOK, response)
}
