package app

import (
	"context"
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/appointments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
	"github.com/profyt7/carelinkai-sub005/internal/domain/dashboard"
	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"
	"github.com/profyt7/carelinkai-sub005/internal/domain/leads"
	"github.com/profyt7/carelinkai-sub005/internal/domain/messages"
	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/domain/shifts"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// upcomingWindow bounds the appointment counter
const upcomingWindow = 7 * 24 * time.Hour

// DashboardRepositories groups the read sides the dashboard counts over
type DashboardRepositories struct {
	Users         users.UserRepository
	Homes         homes.HomeRepository
	Leads         leads.LeadRepository
	Shifts        shifts.ShiftRepository
	Compliance    compliance.ComplianceRepository
	Messages      messages.MessageRepository
	Notifications notifications.NotificationRepository
	Appointments  appointments.AppointmentRepository
}

// dashboardService implements dashboard.DashboardService
type dashboardService struct {
	repos  DashboardRepositories
	logger logger.Logger
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(repos DashboardRepositories, logger logger.Logger) (dashboard.DashboardService, error) {
	return &dashboardService{repos: repos, logger: logger}, nil
}

// Summary gathers the caller's counters concurrently; the first failing query cancels the rest
func (s *dashboardService) Summary(ctx context.Context, caller users.Principal) (*dashboard.Summary, error) {
	if !caller.Can(users.PermDashboardView) {
		return nil, fmt.Errorf("%w: dashboard requires %s", apperr.ErrForbidden, users.PermDashboardView)
	}

	// nil means every home, an empty slice means none
	var homeIDs []string
	if caller.Is(users.RoleOperator) {
		ids, err := s.repos.Homes.ListHomeIDsByOperator(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		homeIDs = append([]string{}, ids...)
	}

	summary := &dashboard.Summary{Role: caller.Role}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		summary.UnreadMessages, err = s.repos.Messages.UnreadCount(gctx, caller.ID)
		return err
	})
	g.Go(func() error {
		var err error
		summary.UnreadNotifications, err = s.repos.Notifications.UnreadCount(gctx, caller.ID)
		return err
	})
	g.Go(func() error {
		now := time.Now().UTC()
		until := now.Add(upcomingWindow)
		list, err := s.repos.Appointments.ListForUser(gctx, caller.ID, &appointments.Query{
			From:     &now,
			To:       &until,
			Statuses: []appointments.Status{appointments.StatusConfirmed, appointments.StatusPending, appointments.StatusRescheduled},
			Limit:    500,
		})
		summary.UpcomingAppointments = int64(len(list))
		return err
	})

	if caller.Is(users.RoleAdmin) {
		g.Go(func() error {
			counts, err := s.repos.Users.CountByRole(gctx)
			if err != nil {
				return err
			}
			summary.UsersByRole = make(map[string]int64, len(counts))
			for role, n := range counts {
				summary.UsersByRole[string(role)] = n
			}
			return nil
		})
	}

	if caller.Is(users.RoleAdmin, users.RoleOperator) {
		g.Go(func() error {
			counts, err := s.repos.Leads.CountByStatus(gctx)
			if err != nil {
				return err
			}
			summary.LeadsByStatus = make(map[string]int64, len(counts))
			for status, n := range counts {
				summary.LeadsByStatus[string(status)] = n
			}
			return nil
		})
	}

	if caller.Is(users.RoleAdmin, users.RoleStaff, users.RoleOperator, users.RoleCaregiver) {
		g.Go(func() error {
			filter := &shifts.Filter{Statuses: []shifts.Status{shifts.StatusOpen}, Limit: 1}
			if !caller.Is(users.RoleCaregiver) {
				filter.HomeIDs = homeIDs
			}
			_, total, err := s.repos.Shifts.List(gctx, filter)
			summary.OpenShifts = total
			return err
		})
		g.Go(func() error {
			query := &compliance.Query{Statuses: []compliance.Status{compliance.StatusExpiringSoon}}
			switch {
			case caller.Is(users.RoleCaregiver):
				query.OwnerType = compliance.OwnerCaregiver
				query.OwnerIDs = []string{caller.ID}
			case caller.Is(users.RoleOperator):
				query.OwnerType = compliance.OwnerHome
				query.OwnerIDs = homeIDs
			}
			items, err := s.repos.Compliance.List(gctx, query)
			summary.ExpiringCompliance = int64(len(items))
			return err
		})
	}

	if caller.Is(users.RoleAdmin, users.RoleStaff, users.RoleOperator) {
		g.Go(func() error {
			var err error
			summary.PendingApplications, err = s.repos.Shifts.CountApplications(gctx, homeIDs, shifts.ApplicationApplied)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to build dashboard summary", "user_id", caller.ID, "error", err)
		return nil, err
	}
	return summary, nil
}
