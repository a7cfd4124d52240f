// Package dashboard aggregates role-specific counters for the landing page.
package dashboard

import (
	"context"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
)

// Summary holds the counters visible to the caller's role. Nil maps and
// zero counts mean the figure does not apply to the role.
type Summary struct {
	Role                 users.Role
	UsersByRole          map[string]int64
	LeadsByStatus        map[string]int64
	OpenShifts           int64
	PendingApplications  int64
	ExpiringCompliance   int64
	UnreadMessages       int64
	UnreadNotifications  int64
	UpcomingAppointments int64
}

// DashboardService builds summaries
type DashboardService interface {
	Summary(ctx context.Context, caller users.Principal) (*Summary, error)
}
