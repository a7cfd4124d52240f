package audit

import (
	"math"
	"sort"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
)

// Unusual access detection defaults
const (
	DefaultLookbackDays    = 30
	DefaultAccessThreshold = 50
	PatternHighVolume      = "HIGH_VOLUME_ACCESS"
)

// Severity of an unusual access pattern
type Severity string

// Severities
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AccessActions are the actions counted by unusual access detection
var AccessActions = []Action{ActionRead, ActionUpdate, ActionDelete, ActionExport}

var baseThresholds = map[string]int{
	ResourceResident:  100,
	ResourceHome:      150,
	ResourceCaregiver: 200,
	ResourceDocument:  75,
	ResourcePayment:   50,
	ResourceUser:      30,
}

// AccessThreshold is the number of accesses over the lookback that role may make to
// resourceType before it is flagged
func AccessThreshold(role users.Role, resourceType string) int {
	base, ok := baseThresholds[resourceType]
	if !ok {
		base = DefaultAccessThreshold
	}
	multiplier := 1.0
	switch role {
	case users.RoleAdmin:
		multiplier = 3
	case users.RoleOperator:
		multiplier = 2
	case users.RoleCaregiver:
		multiplier = 1.5
	}
	return int(math.Round(float64(base) * multiplier))
}

// SeverityOf grades how far count exceeds threshold
func SeverityOf(count, threshold int) Severity {
	ratio := float64(count) / float64(threshold)
	switch {
	case ratio > 3:
		return SeverityHigh
	case ratio > 1.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// AccessCount is how often one user touched one resource type
type AccessCount struct {
	UserID       string
	Email        string
	Role         users.Role
	ResourceType string
	Count        int
}

// UnusualAccess is a flagged access pattern
type UnusualAccess struct {
	UserID       string
	UserEmail    string
	UserRole     users.Role
	ResourceType string
	AccessCount  int
	Threshold    int
	Severity     Severity
	Type         string
}

// FlagUnusualAccess keeps the counts above their role threshold, worst first
func FlagUnusualAccess(counts []AccessCount) []UnusualAccess {
	var flagged []UnusualAccess
	for _, c := range counts {
		threshold := AccessThreshold(c.Role, c.ResourceType)
		if c.Count <= threshold {
			continue
		}
		flagged = append(flagged, UnusualAccess{
			UserID:       c.UserID,
			UserEmail:    c.Email,
			UserRole:     c.Role,
			ResourceType: c.ResourceType,
			AccessCount:  c.Count,
			Threshold:    threshold,
			Severity:     SeverityOf(c.Count, threshold),
			Type:         PatternHighVolume,
		})
	}
	sort.SliceStable(flagged, func(i, j int) bool {
		return float64(flagged[i].AccessCount)/float64(flagged[i].Threshold) >
			float64(flagged[j].AccessCount)/float64(flagged[j].Threshold)
	})
	return flagged
}

// UserActivity is a user's share of the trail in a report
type UserActivity struct {
	UserID    string
	Count     int64
	Email     string
	FirstName string
	LastName  string
	Role      users.Role
}

// ComplianceReport summarises the trail over a period
type ComplianceReport struct {
	StartDate             time.Time
	EndDate               time.Time
	DurationDays          int
	TotalEvents           int64
	UniqueUsers           int
	UniqueResourceTypes   int
	ActionBreakdown       map[string]int64
	ResourceTypeBreakdown map[string]int64
	TopUsers              []UserActivity
	GeneratedAt           time.Time
}

// NewComplianceReport assembles a report from per-action, per-resource and per-user counts.
// Top users are the TopUsersInReport most active, ties broken by user ID.
func NewComplianceReport(start, end time.Time, actions, resources, byUser map[string]int64, now time.Time) *ComplianceReport {
	var total int64
	for _, count := range actions {
		total += count
	}

	top := make([]UserActivity, 0, len(byUser))
	for userID, count := range byUser {
		top = append(top, UserActivity{UserID: userID, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].UserID < top[j].UserID
	})
	if len(top) > TopUsersInReport {
		top = top[:TopUsersInReport]
	}

	return &ComplianceReport{
		StartDate:             start,
		EndDate:               end,
		DurationDays:          int(math.Ceil(end.Sub(start).Hours() / 24)),
		TotalEvents:           total,
		UniqueUsers:           len(byUser),
		UniqueResourceTypes:   len(resources),
		ActionBreakdown:       actions,
		ResourceTypeBreakdown: resources,
		TopUsers:              top,
		GeneratedAt:           now,
	}
}

// SecurityKeywords mark descriptions that count as security events
var SecurityKeywords = []string{"permission", "security", "password", "authentication"}

// SecurityActions always count as security events
var SecurityActions = []Action{ActionLogin, ActionLogout, ActionAccessDenied}
