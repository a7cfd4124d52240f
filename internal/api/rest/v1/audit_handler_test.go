//go:build unit
// +build unit

package v1

import (
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testAdmin = &users.Principal{ID: "9f8e7d6c-5b4a-4c3d-8e1f-0a1b2c3d4e5f", Email: "admin@example.com", Role: users.RoleAdmin}

func TestAuditHandler_Query_ParsesFilters(t *testing.T) {
	mockService := new(MockAuditService)
	handler := NewAuditHandler(mockService)

	resourceID := "res-1"
	mockService.On("Query", mock.Anything, mock.MatchedBy(func(q *audit.Query) bool {
		return q.UserID == "u-1" &&
			assert.ObjectsAreEqual([]audit.Action{audit.ActionRead, audit.ActionExport}, q.Actions) &&
			assert.ObjectsAreEqual([]string{audit.ResourceResident, audit.ResourceDocument}, q.ResourceTypes) &&
			q.Limit == 25 && q.Offset == 50 && q.SortOrder == "asc" && q.From != nil && q.To == nil
	})).Return(&audit.QueryResult{
		Logs:       []*audit.Log{{ID: "log-1", UserID: "u-1", Action: audit.ActionRead, ResourceType: audit.ResourceResident, ResourceID: &resourceID}},
		Total:      51,
		Page:       3,
		TotalPages: 3,
		HasMore:    false,
	}, nil)

	c, w := newTestContext(t, http.MethodGet,
		"/admin/audit-logs?userId=u-1&action=read,export&resourceType=Resident,Document&limit=25&offset=50&sortOrder=asc&from=2025-01-01T00:00:00Z",
		nil, testAdmin)
	handler.Query(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body AuditPageResponse
	decodeBody(t, w, &body)
	assert.Equal(t, int64(51), body.Total)
	assert.Equal(t, 3, body.Page)
	assert.Equal(t, "res-1", *body.Logs[0].ResourceID)
	mockService.AssertExpectations(t)
}

func TestAuditHandler_Query_InvalidLimit(t *testing.T) {
	mockService := new(MockAuditService)
	handler := NewAuditHandler(mockService)

	mockService.On("Query", mock.Anything, mock.Anything).Return(nil, (&audit.Query{Limit: 5000, SortOrder: "desc"}).Validate())

	c, w := newTestContext(t, http.MethodGet, "/admin/audit-logs?limit=5000", nil, testAdmin)
	handler.Query(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditHandler_Export_WritesCSV(t *testing.T) {
	mockService := new(MockAuditService)
	handler := NewAuditHandler(mockService)

	mockService.On("ExportCSV", mock.Anything, *testAdmin, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(3).(io.Writer), "id,createdAt\nlog-1,2025-01-01T00:00:00Z\n")
		}).
		Return(1, nil)

	c, w := newTestContext(t, http.MethodGet, "/admin/audit-logs/export", nil, testAdmin)
	handler.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "audit-logs-")
	assert.Contains(t, w.Body.String(), "log-1")
}

func TestAuditHandler_ComplianceReport_DefaultWindow(t *testing.T) {
	mockService := new(MockAuditService)
	handler := NewAuditHandler(mockService)

	mockService.On("ComplianceReport", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			start, end := args.Get(1).(time.Time), args.Get(2).(time.Time)
			assert.Equal(t, defaultReportWindow, end.Sub(start))
		}).
		Return(&audit.ComplianceReport{DurationDays: 30, ActionBreakdown: map[string]int64{"READ": 4}}, nil)

	c, w := newTestContext(t, http.MethodGet, "/admin/audit-logs/report", nil, testAdmin)
	handler.ComplianceReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body ComplianceReportResponse
	decodeBody(t, w, &body)
	assert.Equal(t, 30, body.DurationDays)
	assert.Equal(t, int64(4), body.ActionBreakdown["READ"])
}

func TestAuditHandler_ComplianceReport_InvertedRange(t *testing.T) {
	handler := NewAuditHandler(new(MockAuditService))

	c, w := newTestContext(t, http.MethodGet, "/admin/audit-logs/report?from=2025-02-01T00:00:00Z&to=2025-01-01T00:00:00Z", nil, testAdmin)
	handler.ComplianceReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditHandler_UnusualAccess(t *testing.T) {
	mockService := new(MockAuditService)
	handler := NewAuditHandler(mockService)

	mockService.On("DetectUnusualAccess", mock.Anything, 7).Return([]audit.UnusualAccess{{
		UserID:       "u-1",
		UserRole:     users.RoleCaregiver,
		ResourceType: audit.ResourceResident,
		AccessCount:  500,
		Threshold:    150,
		Severity:     audit.SeverityHigh,
		Type:         audit.PatternHighVolume,
	}}, nil)

	c, w := newTestContext(t, http.MethodGet, "/admin/audit-logs/unusual?lookbackDays=7", nil, testAdmin)
	handler.UnusualAccess(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"severity":"high"`)

	c, w = newTestContext(t, http.MethodGet, "/admin/audit-logs/unusual?lookbackDays=0", nil, testAdmin)
	handler.UnusualAccess(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditHandler_ResourceTrail_Failure(t *testing.T) {
	mockService := new(MockAuditService)
	handler := NewAuditHandler(mockService)

	mockService.On("ResourceTrail", mock.Anything, audit.ResourceResident, "res-1", 0).Return(nil, errors.New("db gone"))

	c, w := newTestContext(t, http.MethodGet, "/admin/audit-logs/resource/Resident/res-1", nil, testAdmin)
	c.Params = gin.Params{{Key: "type", Value: audit.ResourceResident}, {Key: "id", Value: "res-1"}}
	handler.ResourceTrail(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
