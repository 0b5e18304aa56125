package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/audit"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// AuditCommandHandler encapsulates logic for the audit command group.
type AuditCommandHandler struct {
	auditService audit.AuditService
	logger       logger.Logger
}

// Initialize wires the audit service over the file trail and, when enabled,
// the admin audit table mirror.
func (commandHandler *AuditCommandHandler) Initialize(_ *cobra.Command, _ []string) error {
	cfg, err := loadOpsConfig()
	if err != nil {
		return err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return err
	}

	auditService, err := newAuditService(cfg, loggerInstance)
	if err != nil {
		return err
	}

	commandHandler.auditService = auditService
	commandHandler.logger = loggerInstance
	return nil
}

// LogCmd appends one event to the category trail
func (commandHandler *AuditCommandHandler) LogCmd(cmd *cobra.Command, _ []string) {
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		commandHandler.logger.Error("invalid category flag ", err)
		return
	}
	action, err := cmd.Flags().GetString("action")
	if err != nil {
		commandHandler.logger.Error("invalid action flag ", err)
		return
	}
	actor, err := cmd.Flags().GetString("actor")
	if err != nil {
		commandHandler.logger.Error("invalid actor flag ", err)
		return
	}
	targetTable, err := cmd.Flags().GetString("target-table")
	if err != nil {
		commandHandler.logger.Error("invalid target-table flag ", err)
		return
	}
	severity, err := cmd.Flags().GetString("severity")
	if err != nil {
		commandHandler.logger.Error("invalid severity flag ", err)
		return
	}
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		commandHandler.logger.Error("invalid message flag ", err)
		return
	}

	event := &audit.Event{
		Category:    category,
		Action:      action,
		Actor:       actor,
		TargetTable: targetTable,
		Severity:    severity,
		Message:     message,
	}

	if err := commandHandler.auditService.Log(cmd.Context(), event); err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}
}

// ReportCmd aggregates one category of the trail inside an optional window
func (commandHandler *AuditCommandHandler) ReportCmd(cmd *cobra.Command, _ []string) {
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		commandHandler.logger.Error("invalid category flag ", err)
		return
	}
	if category == "" {
		commandHandler.logger.Error("the category flag is required")
		return
	}

	since, err := parseTimeFlag(cmd, "since")
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	until, err := parseTimeFlag(cmd, "until")
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	report, err := commandHandler.auditService.Report(cmd.Context(), category, since, until)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	fmt.Printf("Category: %s\n", report.Category)
	fmt.Printf("Events:   %d (%d malformed lines skipped)\n", report.Events, report.Malformed)
	if report.Events > 0 {
		fmt.Printf("Window:   %s .. %s\n", report.First.Format(time.RFC3339), report.Last.Format(time.RFC3339))
	}

	printCounts("By action", report.ByAction)
	printCounts("By severity", report.BySeverity)
	printCounts("By actor", report.ByActor)
	printCounts("Per day", report.PerDay)
}

// RotateCmd renames the category trail and starts a fresh file
func (commandHandler *AuditCommandHandler) RotateCmd(cmd *cobra.Command, _ []string) {
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		commandHandler.logger.Error("invalid category flag ", err)
		return
	}
	if category == "" {
		commandHandler.logger.Error("the category flag is required")
		return
	}

	if err := commandHandler.auditService.Rotate(category); err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}
}

// parseTimeFlag reads an optional RFC3339 flag value.
func parseTimeFlag(cmd *cobra.Command, name string) (time.Time, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if value == "" {
		return time.Time{}, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be an RFC3339 timestamp: %w", name, err)
	}
	return parsed, nil
}

// printCounts prints one aggregation map in a stable order.
func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Printf("%s:\n", title)
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(w, "  %s\t%d\n", key, counts[key])
	}
	_ = w.Flush()
}

// InitAuditCommands registers the audit command group
func InitAuditCommands(rootCmd *cobra.Command) error {
	handler := &AuditCommandHandler{}

	auditCmd := &cobra.Command{
		Use:               "audit",
		Short:             "Append to and report on the operations audit trail",
		PersistentPreRunE: handler.Initialize,
	}

	var logCmd = &cobra.Command{
		Use:   "log",
		Short: "Append one event to a category trail",
		Run:   handler.LogCmd,
	}
	logCmd.Flags().StringP("category", "", "", "Trail category, e.g. migrations")
	logCmd.Flags().StringP("action", "", "", "Action performed, e.g. up")
	logCmd.Flags().StringP("actor", "", "", "Who performed the action")
	logCmd.Flags().StringP("target-table", "", "", "Table the action touched")
	logCmd.Flags().StringP("severity", "", audit.SeverityInfo, "Severity: info, warning, error or critical")
	logCmd.Flags().StringP("message", "", "", "Free-form description")
	auditCmd.AddCommand(logCmd)

	var reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Aggregate a category trail inside an optional window",
		Run:   handler.ReportCmd,
	}
	reportCmd.Flags().StringP("category", "", "", "Trail category to report on")
	reportCmd.Flags().StringP("since", "", "", "Only count events at or after this RFC3339 timestamp")
	reportCmd.Flags().StringP("until", "", "", "Only count events at or before this RFC3339 timestamp")
	auditCmd.AddCommand(reportCmd)

	var rotateCmd = &cobra.Command{
		Use:   "rotate",
		Short: "Rename a category trail and start a fresh file",
		Run:   handler.RotateCmd,
	}
	rotateCmd.Flags().StringP("category", "", "", "Trail category to rotate")
	auditCmd.AddCommand(rotateCmd)

	rootCmd.AddCommand(auditCmd)

	return nil
}
