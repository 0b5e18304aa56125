package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/migrations"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// MigrateCommandHandler encapsulates logic for the migrate command group.
type MigrateCommandHandler struct {
	migrationService migrations.MigrationService
	logger           logger.Logger
}

// Initialize wires the migration service from the CLI configuration. It runs
// right before a migrate subcommand, so the database connection is only
// opened when the group is actually used.
func (commandHandler *MigrateCommandHandler) Initialize(_ *cobra.Command, _ []string) error {
	cfg, err := loadOpsConfig()
	if err != nil {
		return err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return err
	}

	db, err := connectDatabase(cfg.Database)
	if err != nil {
		return err
	}

	scriptService, err := newScriptService(db, loggerInstance)
	if err != nil {
		return err
	}

	ledgerRepo, err := persistence.NewGormLedgerRepository(db, loggerInstance)
	if err != nil {
		return err
	}

	migrationService, err := app.NewMigrationService(ledgerRepo, scriptService, cfg.Paths.MigrationsDir, loggerInstance)
	if err != nil {
		return err
	}

	commandHandler.migrationService = migrationService
	commandHandler.logger = loggerInstance
	return nil
}

// UpCmd applies every pending migration script in lexical order
func (commandHandler *MigrateCommandHandler) UpCmd(cmd *cobra.Command, _ []string) {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		commandHandler.logger.Error("invalid dry-run flag ", err)
		return
	}
	stopOnError, err := cmd.Flags().GetBool("stop-on-error")
	if err != nil {
		commandHandler.logger.Error("invalid stop-on-error flag ", err)
		return
	}

	results, err := commandHandler.migrationService.Up(cmd.Context(), sqlexec.ExecOptions{
		DryRun:      dryRun,
		StopOnError: stopOnError,
	})
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	failed := 0
	for _, result := range results {
		if result.Ok() {
			continue
		}
		failed++
		commandHandler.logger.Error(result.Summary())
		for _, stmtErr := range result.Failed {
			commandHandler.logger.Error(stmtErr)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// StatusCmd prints the ledger state of every migration script
func (commandHandler *MigrateCommandHandler) StatusCmd(cmd *cobra.Command, _ []string) {
	statuses, err := commandHandler.migrationService.Status(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tAPPLIED AT")
	for _, status := range statuses {
		appliedAt := "-"
		if status.AppliedAt != nil {
			appliedAt = status.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", status.Name, status.State, appliedAt)
	}
	if err := w.Flush(); err != nil {
		commandHandler.logger.Error(err)
	}
}

// MarkAppliedCmd records a script in the ledger without executing it
func (commandHandler *MigrateCommandHandler) MarkAppliedCmd(cmd *cobra.Command, _ []string) {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		commandHandler.logger.Error("invalid name flag ", err)
		return
	}
	if name == "" {
		commandHandler.logger.Error("the name flag is required")
		return
	}

	if err := commandHandler.migrationService.MarkApplied(cmd.Context(), name); err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}
}

// InitMigrateCommands registers the migrate command group
func InitMigrateCommands(rootCmd *cobra.Command) error {
	handler := &MigrateCommandHandler{}

	migrateCmd := &cobra.Command{
		Use:               "migrate",
		Short:             "Apply and inspect schema migrations",
		PersistentPreRunE: handler.Initialize,
	}

	var upCmd = &cobra.Command{
		Use:   "up",
		Short: "Apply pending migration scripts in lexical order",
		Run:   handler.UpCmd,
	}
	upCmd.Flags().BoolP("dry-run", "", false, "Report the statements without executing them")
	upCmd.Flags().BoolP("stop-on-error", "", false, "Abort the run at the first failing statement")
	migrateCmd.AddCommand(upCmd)

	var statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show applied, pending and drifted migration scripts",
		Run:   handler.StatusCmd,
	}
	migrateCmd.AddCommand(statusCmd)

	var markAppliedCmd = &cobra.Command{
		Use:   "mark-applied",
		Short: "Record a script in the ledger without running it",
		Run:   handler.MarkAppliedCmd,
	}
	markAppliedCmd.Flags().StringP("name", "", "", "Migration script file name, e.g. 0001_core_tables.sql")
	migrateCmd.AddCommand(markAppliedCmd)

	rootCmd.AddCommand(migrateCmd)

	return nil
}
