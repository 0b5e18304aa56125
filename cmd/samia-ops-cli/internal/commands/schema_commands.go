package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/drift"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// SchemaCommandHandler encapsulates logic for the schema command group.
type SchemaCommandHandler struct {
	driftService drift.DriftService
	logger       logger.Logger
}

// Initialize wires the drift service over the live database catalog.
func (commandHandler *SchemaCommandHandler) Initialize(_ *cobra.Command, _ []string) error {
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

	schemaReader, err := persistence.NewGormSchemaReader(db)
	if err != nil {
		return err
	}

	driftService, err := app.NewDriftService(schemaReader, loggerInstance)
	if err != nil {
		return err
	}

	commandHandler.driftService = driftService
	commandHandler.logger = loggerInstance
	return nil
}

// CheckCmd compares the live schema against the expected catalog
func (commandHandler *SchemaCommandHandler) CheckCmd(cmd *cobra.Command, _ []string) {
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		commandHandler.logger.Error("invalid strict flag ", err)
		return
	}

	report, err := commandHandler.driftService.Check(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	for _, table := range report.MissingTables {
		fmt.Printf("missing table: %s\n", table)
	}
	for _, column := range report.MissingColumns {
		fmt.Printf("missing column: %s\n", column)
	}
	for _, mismatch := range report.TypeMismatches {
		fmt.Printf("type mismatch: %s\n", mismatch)
	}
	for _, mismatch := range report.NullabilityMismatches {
		fmt.Printf("nullability mismatch: %s\n", mismatch)
	}
	for _, table := range report.UnexpectedTables {
		fmt.Printf("unexpected table: %s\n", table)
	}

	if !report.Clean() {
		os.Exit(1)
	}
	if strict && len(report.UnexpectedTables) > 0 {
		commandHandler.logger.Error("Schema carries unexpected tables and strict mode is on")
		os.Exit(1)
	}
}

// DumpCmd prints the live schema as read from the database
func (commandHandler *SchemaCommandHandler) DumpCmd(cmd *cobra.Command, _ []string) {
	tables, err := commandHandler.driftService.Dump(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tCOLUMN\tTYPE\tNULLABLE")
	for _, table := range tables {
		for _, column := range table.Columns {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", table.Name, column.Name, column.DataType, column.Nullable)
		}
	}
	if err := w.Flush(); err != nil {
		commandHandler.logger.Error(err)
	}
}

// InitSchemaCommands registers the schema command group
func InitSchemaCommands(rootCmd *cobra.Command) error {
	handler := &SchemaCommandHandler{}

	schemaCmd := &cobra.Command{
		Use:               "schema",
		Short:             "Check and dump the live database schema",
		PersistentPreRunE: handler.Initialize,
	}

	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Compare the live schema against the expected catalog",
		Run:   handler.CheckCmd,
	}
	checkCmd.Flags().BoolP("strict", "", false, "Fail when the live schema carries unexpected tables")
	schemaCmd.AddCommand(checkCmd)

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the live schema as read from the database",
		Run:   handler.DumpCmd,
	}
	schemaCmd.AddCommand(dumpCmd)

	rootCmd.AddCommand(schemaCmd)

	return nil
}
