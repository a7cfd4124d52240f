//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	testCaregiver = &users.Principal{ID: testCaregiverID, Email: "cg@example.com", Role: users.RoleCaregiver}
	testOperator  = &users.Principal{ID: testOperatorID, Email: "op@example.com", Role: users.RoleOperator}
)

func testShift(status shifts.Status) *shifts.Shift {
	start := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	return &shifts.Shift{
		ID:         testShiftID,
		HomeID:     testHomeID,
		StartTime:  start,
		EndTime:    start.Add(8 * time.Hour),
		HourlyRate: decimal.NewFromInt(30),
		Status:     status,
		Version:    1,
	}
}

func TestShiftHandler_List_DefaultsAndFilters(t *testing.T) {
	mockService := new(MockShiftService)
	handler := NewShiftHandler(mockService)

	mockService.On("List", mock.Anything, *testCaregiver, mock.MatchedBy(func(q *shifts.Query) bool {
		return q.Limit == shifts.DefaultListLimit &&
			len(q.Statuses) == 1 && q.Statuses[0] == shifts.StatusOpen &&
			q.MyApplications && q.ApplicationStatus == shifts.ApplicationOffered
	})).Return([]*shifts.Shift{testShift(shifts.StatusOpen)}, int64(1), nil)

	c, w := newTestContext(t, http.MethodGet, "/shifts?status=open&applicationStatus=offered", nil, testCaregiver)
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body ShiftListResponse
	decodeBody(t, w, &body)
	assert.Equal(t, int64(1), body.Total)
	assert.Equal(t, testShiftID, body.Shifts[0].ID)
	mockService.AssertExpectations(t)
}

func TestShiftHandler_List_ForeignHomeForbidden(t *testing.T) {
	mockService := new(MockShiftService)
	handler := NewShiftHandler(mockService)

	mockService.On("List", mock.Anything, *testOperator, mock.Anything).
		Return(nil, int64(0), fmt.Errorf("%w: home is not managed by caller", apperr.ErrForbidden))

	c, w := newTestContext(t, http.MethodGet, "/shifts?homeId="+testHomeID, nil, testOperator)
	handler.List(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestShiftHandler_Create_InvalidBody(t *testing.T) {
	mockService := new(MockShiftService)
	handler := NewShiftHandler(mockService)

	c, w := newTestContext(t, http.MethodPost, "/shifts", gin.H{"homeId": testHomeID, "hourlyRate": "0"}, testOperator)
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestShiftHandler_Apply_WithoutBody(t *testing.T) {
	mockService := new(MockShiftService)
	handler := NewShiftHandler(mockService)

	mockService.On("Apply", mock.Anything, *testCaregiver, testShiftID, "").
		Return(&shifts.Application{ID: "app-1", ShiftID: testShiftID, CaregiverID: testCaregiverID, Status: shifts.ApplicationApplied}, nil)

	c, w := newTestContext(t, http.MethodPost, "/shifts/"+testShiftID+"/apply", nil, testCaregiver)
	c.Params = gin.Params{{Key: "id", Value: testShiftID}}
	handler.Apply(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"APPLIED"`)
	mockService.AssertExpectations(t)
}

func TestShiftHandler_Confirm_LostRace(t *testing.T) {
	mockService := new(MockShiftService)
	handler := NewShiftHandler(mockService)

	mockService.On("Confirm", mock.Anything, *testOperator, testShiftID, testCaregiverID).
		Return(nil, fmt.Errorf("%w: shift %s was modified concurrently", apperr.ErrConflict, testShiftID))

	c, w := newTestContext(t, http.MethodPost, "/shifts/"+testShiftID+"/confirm", gin.H{"caregiverId": testCaregiverID}, testOperator)
	c.Params = gin.Params{{Key: "id", Value: testShiftID}}
	handler.Confirm(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "modified concurrently")
}

func TestShiftHandler_Start_InvalidState(t *testing.T) {
	mockService := new(MockShiftService)
	handler := NewShiftHandler(mockService)

	mockService.On("Start", mock.Anything, *testCaregiver, testShiftID).
		Return(nil, fmt.Errorf("%w: shift is OPEN", apperr.ErrInvalidState))

	c, w := newTestContext(t, http.MethodPost, "/shifts/"+testShiftID+"/start", nil, testCaregiver)
	c.Params = gin.Params{{Key: "id", Value: testShiftID}}
	handler.Start(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShiftHandler_Complete_ReturnsPayment(t *testing.T) {
	mockService := new(MockShiftService)
	handler := NewShiftHandler(mockService)

	shiftID := testShiftID
	completed := testShift(shifts.StatusCompleted)
	payment := &payments.Payment{
		ID:      "pay-1",
		PayeeID: testCaregiverID,
		ShiftID: &shiftID,
		Type:    payments.TypeCaregiverPayment,
		Amount:  decimal.NewFromInt(240),
		Status:  payments.StatusPending,
	}
	mockService.On("Complete", mock.Anything, *testOperator, testShiftID).Return(completed, payment, nil)

	c, w := newTestContext(t, http.MethodPost, "/shifts/"+testShiftID+"/complete", nil, testOperator)
	c.Params = gin.Params{{Key: "id", Value: testShiftID}}
	handler.Complete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body CompletedShiftResponse
	decodeBody(t, w, &body)
	assert.Equal(t, "COMPLETED", body.Shift.Status)
	if assert.NotNil(t, body.Payment) {
		assert.True(t, decimal.NewFromInt(240).Equal(body.Payment.Amount))
		assert.Equal(t, "PENDING", body.Payment.Status)
	}
}

func TestShiftHandler_GetByID_NotFound(t *testing.T) {
	mockService := new(MockShiftService)
	handler := NewShiftHandler(mockService)

	mockService.On("Get", mock.Anything, *testCaregiver, "missing").
		Return(nil, fmt.Errorf("shift with ID missing not found: %w", apperr.ErrNotFound))

	c, w := newTestContext(t, http.MethodGet, "/shifts/missing", nil, testCaregiver)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShiftHandler_Timesheets(t *testing.T) {
	mockService := new(MockShiftService)
	handler := NewShiftHandler(mockService)

	mockService.On("Timesheets", mock.Anything, *testCaregiver).Return(&shifts.Timesheet{
		Shifts:     []*shifts.Shift{testShift(shifts.StatusCompleted)},
		TotalHours: decimal.NewFromInt(8),
		TotalPay:   decimal.NewFromInt(240),
	}, nil)

	c, w := newTestContext(t, http.MethodGet, "/shifts/timesheets", nil, testCaregiver)
	handler.Timesheets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body TimesheetResponse
	decodeBody(t, w, &body)
	assert.Len(t, body.Shifts, 1)
	assert.Empty(t, body.Payments)
	assert.True(t, decimal.NewFromInt(8).Equal(body.TotalHours))
}
