package commands

import (
	"fmt"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/strutil"

	"github.com/spf13/cobra"
)

// MaintenanceCommandHandler runs the audit and compliance jobs on demand
type MaintenanceCommandHandler struct{}

// PurgeAuditLogsCmd deletes audit entries older than the retention window
func (commandHandler *MaintenanceCommandHandler) PurgeAuditLogsCmd(cmd *cobra.Command, _ []string) error {
	p, err := openPlatform(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	retentionDays, _ := cmd.Flags().GetInt("retention-days")
	if retentionDays <= 0 {
		retentionDays = p.cfg.Audit.RetentionDays
	}

	removed, err := p.services.Audit.Purge(cmd.Context(), retentionDays)
	if err != nil {
		return fmt.Errorf("failed to purge audit logs: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), map[string]int64{"removed": removed, "retentionDays": int64(retentionDays)})
}

// ComplianceSweepCmd recomputes compliance statuses and notifies owners of changes
func (commandHandler *MaintenanceCommandHandler) ComplianceSweepCmd(cmd *cobra.Command, _ []string) error {
	p, err := openPlatform(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	warningDays, _ := cmd.Flags().GetInt("warning-days")
	if warningDays <= 0 {
		warningDays = p.cfg.Compliance.WarningDays
	}

	result, err := p.services.Compliance.SweepExpirations(cmd.Context(), time.Now().UTC(), warningDays)
	if err != nil {
		return fmt.Errorf("failed to sweep compliance items: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), map[string]int{
		"checked":      result.Checked,
		"expiringSoon": result.ExpiringSoon,
		"expired":      result.Expired,
	})
}

// AuditReportCmd prints the audit compliance report for a period
func (commandHandler *MaintenanceCommandHandler) AuditReportCmd(cmd *cobra.Command, _ []string) error {
	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")

	end, ok := strutil.ParseTime(toFlag)
	if !ok {
		end = time.Now().UTC()
	}
	start, ok := strutil.ParseTime(fromFlag)
	if !ok {
		start = end.AddDate(0, 0, -30)
	}
	if !end.After(start) {
		return fmt.Errorf("--to must be after --from")
	}

	p, err := openPlatform(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	report, err := p.services.Audit.ComplianceReport(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), report)
}

// UnusualAccessCmd prints users whose record access exceeds their role threshold
func (commandHandler *MaintenanceCommandHandler) UnusualAccessCmd(cmd *cobra.Command, _ []string) error {
	lookbackDays, _ := cmd.Flags().GetInt("lookback-days")
	if lookbackDays <= 0 || lookbackDays > 365 {
		return fmt.Errorf("--lookback-days must be between 1 and 365")
	}

	p, err := openPlatform(cmd)
	if err != nil {
		return err
	}
	defer p.close()

	flagged, err := p.services.Audit.DetectUnusualAccess(cmd.Context(), lookbackDays)
	if err != nil {
		return fmt.Errorf("failed to analyse access: %w", err)
	}
	if flagged == nil {
		flagged = []audit.UnusualAccess{}
	}
	return printJSON(cmd.OutOrStdout(), flagged)
}

// InitMaintenanceCommands registers the audit and compliance maintenance commands
func InitMaintenanceCommands(rootCmd *cobra.Command) error {
	handler := &MaintenanceCommandHandler{}

	purgeCmd := &cobra.Command{
		Use:   "purge-audit-logs",
		Short: "Delete audit log entries older than the retention window",
		RunE:  handler.PurgeAuditLogsCmd,
	}
	purgeCmd.Flags().Int("retention-days", 0, "Retention window in days (defaults to audit.retention_days)")
	rootCmd.AddCommand(purgeCmd)

	sweepCmd := &cobra.Command{
		Use:   "compliance-sweep",
		Short: "Recompute compliance item statuses and notify owners",
		RunE:  handler.ComplianceSweepCmd,
	}
	sweepCmd.Flags().Int("warning-days", 0, "Days before expiry that count as expiring soon (defaults to compliance.warning_days)")
	rootCmd.AddCommand(sweepCmd)

	reportCmd := &cobra.Command{
		Use:   "compliance-report",
		Short: "Print the audit compliance report for a period (default: last 30 days)",
		RunE:  handler.AuditReportCmd,
	}
	reportCmd.Flags().String("from", "", "Period start (RFC3339)")
	reportCmd.Flags().String("to", "", "Period end (RFC3339)")
	rootCmd.AddCommand(reportCmd)

	unusualCmd := &cobra.Command{
		Use:   "unusual-access",
		Short: "List users whose record access exceeds their role threshold",
		RunE:  handler.UnusualAccessCmd,
	}
	unusualCmd.Flags().Int("lookback-days", audit.DefaultLookbackDays, "Days of history to analyse")
	rootCmd.AddCommand(unusualCmd)

	return nil
}
