//go:build unit
// +build unit

package v1

import (
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHomeID = "5f1f1c5e-7a5b-4c3e-9d1a-2b3c4d5e6f70"

func TestCreateShiftRequest_Validate(t *testing.T) {
	start := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		request   CreateShiftRequest
		shouldErr bool
	}{
		{"Valid shift", CreateShiftRequest{HomeID: testHomeID, StartTime: start, EndTime: start.Add(8 * time.Hour), HourlyRate: decimal.NewFromInt(25)}, false},
		{"Zero rate", CreateShiftRequest{HomeID: testHomeID, StartTime: start, EndTime: start.Add(8 * time.Hour), HourlyRate: decimal.Zero}, true},
		{"Negative rate", CreateShiftRequest{HomeID: testHomeID, StartTime: start, EndTime: start.Add(time.Hour), HourlyRate: decimal.NewFromInt(-5)}, true},
		{"Ends before start", CreateShiftRequest{HomeID: testHomeID, StartTime: start, EndTime: start.Add(-time.Hour), HourlyRate: decimal.NewFromInt(25)}, true},
		{"Empty window", CreateShiftRequest{HomeID: testHomeID, StartTime: start, EndTime: start, HourlyRate: decimal.NewFromInt(25)}, true},
		{"Bad home id", CreateShiftRequest{HomeID: "home-1", StartTime: start, EndTime: start.Add(time.Hour), HourlyRate: decimal.NewFromInt(25)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
				assert.ErrorIs(t, err, apperr.ErrValidation)
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestUpdateLeadRequest_Validate(t *testing.T) {
	status := "CONTACTED"
	badStatus := "ARCHIVED"
	unassign := ""
	notes := "Called the family"

	tests := []struct {
		name      string
		request   UpdateLeadRequest
		shouldErr bool
	}{
		{"Status change", UpdateLeadRequest{Status: &status}, false},
		{"Notes only", UpdateLeadRequest{OperatorNotes: &notes}, false},
		{"Clear assignee", UpdateLeadRequest{AssignedOperatorID: &unassign}, false},
		{"Nothing to update", UpdateLeadRequest{}, true},
		{"Unknown status", UpdateLeadRequest{Status: &badStatus}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		Email:     "family@example.com",
		Password:  "long enough",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "FAMILY",
	}
	require.NoError(t, valid.Validate())

	admin := valid
	admin.Role = "ADMIN"
	require.Error(t, admin.Validate(), "privileged roles cannot self-register")

	short := valid
	short.Password = "short"
	require.Error(t, short.Validate())

	blank := valid
	blank.FirstName = "   "
	require.Error(t, blank.Validate())
}

func TestAvailabilityScheduleRequest_Validate(t *testing.T) {
	valid := AvailabilityScheduleRequest{Slots: []AvailabilitySlotRequest{
		{DayOfWeek: 1, StartMinute: 9 * 60, EndMinute: 17 * 60},
	}}
	require.NoError(t, valid.Validate())

	inverted := AvailabilityScheduleRequest{Slots: []AvailabilitySlotRequest{
		{DayOfWeek: 1, StartMinute: 17 * 60, EndMinute: 9 * 60},
	}}
	require.Error(t, inverted.Validate())

	badDay := AvailabilityScheduleRequest{Slots: []AvailabilitySlotRequest{
		{DayOfWeek: 7, StartMinute: 0, EndMinute: 60},
	}}
	require.Error(t, badDay.Validate())
}

func TestConfirmShiftRequest_Validate(t *testing.T) {
	require.NoError(t, (&ConfirmShiftRequest{}).Validate())
	require.NoError(t, (&ConfirmShiftRequest{CaregiverID: testHomeID}).Validate())
	require.Error(t, (&ConfirmShiftRequest{CaregiverID: "not-a-uuid"}).Validate())
}

func TestErrorResponse_Creation(t *testing.T) {
	errResp := ErrorResponse{
		Message: "Test error",
	}

	require.Equal(t, "Test error", errResp.Message)
}
