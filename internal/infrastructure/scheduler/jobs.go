package scheduler

import (
	"context"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/compliance"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"
)

// Job names
const (
	AuditPurgeJob      = "audit-purge"
	ComplianceSweepJob = "compliance-sweep"
)

// RegisterMaintenanceJobs adds the audit retention purge and the compliance expiry sweep
func RegisterMaintenanceJobs(
	s *Scheduler,
	auditService audit.AuditService,
	complianceService compliance.ComplianceService,
	auditSettings *config.AuditSettings,
	complianceSettings *config.ComplianceSettings,
	logger logger.Logger,
) error {
	if auditSettings.Enabled {
		err := s.Add(AuditPurgeJob, auditSettings.PurgeSchedule, func(ctx context.Context) error {
			removed, err := auditService.Purge(ctx, auditSettings.RetentionDays)
			if err != nil {
				return err
			}
			logger.Info("Audit retention purge", "removed", removed, "retention_days", auditSettings.RetentionDays)
			return nil
		})
		if err != nil {
			return err
		}
	}

	return s.Add(ComplianceSweepJob, complianceSettings.ExpirySchedule, func(ctx context.Context) error {
		result, err := complianceService.SweepExpirations(ctx, time.Now().UTC(), complianceSettings.WarningDays)
		if err != nil {
			return err
		}
		logger.Info("Compliance sweep",
			"checked", result.Checked, "expiring_soon", result.ExpiringSoon, "expired", result.Expired)
		return nil
	})
}
