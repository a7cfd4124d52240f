//go:build unit
// +build unit

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeMetadata(t *testing.T) {
	metadata := map[string]interface{}{
		"Password": "hunter2",
		"apiKey":   "abc",
		"leadId":   "123",
		"changes":  []interface{}{"status: NEW → CONTACTED"},
		"nested": map[string]interface{}{
			"authHeader": "Bearer x",
			"count":      3,
			"cards": []interface{}{
				map[string]interface{}{"cvv": "123", "last4": "4242"},
			},
		},
		"headers": map[string]string{"x-session-token": "t", "accept": "json"},
	}

	got := SanitizeMetadata(metadata)

	assert.Equal(t, Redacted, got["Password"])
	assert.Equal(t, Redacted, got["apiKey"])
	assert.Equal(t, "123", got["leadId"])
	assert.Equal(t, []interface{}{"status: NEW → CONTACTED"}, got["changes"])

	nested := got["nested"].(map[string]interface{})
	assert.Equal(t, Redacted, nested["authHeader"])
	assert.Equal(t, 3, nested["count"])
	assert.Equal(t, Redacted, nested["cards"])

	headers := got["headers"].(map[string]interface{})
	assert.Equal(t, Redacted, headers["x-session-token"])
	assert.Equal(t, "json", headers["accept"])

	assert.Equal(t, "hunter2", metadata["Password"], "input must not be modified")
	assert.Nil(t, SanitizeMetadata(nil))
}

func TestSanitizeMetadataSlicesOfMaps(t *testing.T) {
	got := SanitizeMetadata(map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"ssnLast4": "1234", "name": "a"},
			"plain",
		},
	})

	items := got["items"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, Redacted, items[0].(map[string]interface{})["ssnLast4"])
	assert.Equal(t, "a", items[0].(map[string]interface{})["name"])
	assert.Equal(t, "plain", items[1])
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name         string
		forwardedFor string
		realIP       string
		expected     string
	}{
		{"forwarded chain", "203.0.113.7, 10.0.0.1", "10.0.0.2", "203.0.113.7"},
		{"real ip", "", "198.51.100.4", "198.51.100.4"},
		{"nothing", "", "", UnknownClient},
		{"blank forwarded", " ", "198.51.100.4", "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClientIP(tt.forwardedFor, tt.realIP))
		})
	}
}

func TestRequestMeta(t *testing.T) {
	assert.Equal(t, RequestMeta{IPAddress: UnknownClient, UserAgent: UnknownClient}, RequestMetaFrom(context.Background()))

	ctx := WithRequestMeta(context.Background(), RequestMeta{IPAddress: "1.2.3.4", UserAgent: "curl"})
	assert.Equal(t, "1.2.3.4", RequestMetaFrom(ctx).IPAddress)
	assert.Equal(t, "curl", RequestMetaFrom(ctx).UserAgent)
}

func TestAccessThreshold(t *testing.T) {
	tests := []struct {
		role         users.Role
		resourceType string
		expected     int
	}{
		{users.RoleAdmin, ResourceResident, 300},
		{users.RoleOperator, ResourceHome, 300},
		{users.RoleCaregiver, ResourceDocument, 113},
		{users.RoleFamily, ResourceUser, 30},
		{users.RoleStaff, "Unlisted", 50},
		{users.RoleCaregiver, ResourcePayment, 75},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.resourceType, func(t *testing.T) {
			assert.Equal(t, tt.expected, AccessThreshold(tt.role, tt.resourceType))
		})
	}
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, SeverityLow, SeverityOf(60, 50))
	assert.Equal(t, SeverityLow, SeverityOf(75, 50))
	assert.Equal(t, SeverityMedium, SeverityOf(76, 50))
	assert.Equal(t, SeverityMedium, SeverityOf(150, 50))
	assert.Equal(t, SeverityHigh, SeverityOf(151, 50))
}

func TestFlagUnusualAccess(t *testing.T) {
	counts := []AccessCount{
		{UserID: "u1", Role: users.RoleFamily, ResourceType: ResourceUser, Count: 30},
		{UserID: "u2", Role: users.RoleFamily, ResourceType: ResourceUser, Count: 31},
		{UserID: "u3", Role: users.RoleOperator, ResourceType: ResourceResident, Count: 700},
	}

	flagged := FlagUnusualAccess(counts)

	require.Len(t, flagged, 2)
	assert.Equal(t, "u3", flagged[0].UserID)
	assert.Equal(t, SeverityHigh, flagged[0].Severity)
	assert.Equal(t, 200, flagged[0].Threshold)
	assert.Equal(t, PatternHighVolume, flagged[0].Type)
	assert.Equal(t, "u2", flagged[1].UserID)
	assert.Equal(t, SeverityLow, flagged[1].Severity)
}

func TestNewComplianceReport(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(36 * time.Hour)
	byUser := map[string]int64{}
	for i := 0; i < 12; i++ {
		byUser[string(rune('a'+i))] = int64(i + 1)
	}

	report := NewComplianceReport(start, end,
		map[string]int64{"READ": 70, "LOGIN": 8},
		map[string]int64{ResourceResident: 60, ResourceUser: 18},
		byUser, end)

	assert.Equal(t, 2, report.DurationDays)
	assert.Equal(t, int64(78), report.TotalEvents)
	assert.Equal(t, 12, report.UniqueUsers)
	assert.Equal(t, 2, report.UniqueResourceTypes)
	require.Len(t, report.TopUsers, TopUsersInReport)
	assert.Equal(t, "l", report.TopUsers[0].UserID)
	assert.Equal(t, int64(12), report.TopUsers[0].Count)
}

func TestNewQueryResult(t *testing.T) {
	q := NewQuery()
	q.Limit = 10
	q.Offset = 20

	result := NewQueryResult(nil, 45, q)

	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 5, result.TotalPages)
	assert.True(t, result.HasMore)

	q.Offset = 40
	assert.False(t, NewQueryResult(nil, 45, q).HasMore)
}
