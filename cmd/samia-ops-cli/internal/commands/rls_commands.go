package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/policies"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/sqlexec"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// RLSCommandHandler encapsulates logic for the rls command group.
type RLSCommandHandler struct {
	policyService policies.PolicyService
	policySet     []policies.Policy
	logger        logger.Logger
}

// InitializeOffline resolves the policy set, either the built-in catalog or
// the configured manifest, without touching the database. Rendering needs
// nothing else.
func (commandHandler *RLSCommandHandler) InitializeOffline(_ *cobra.Command, _ []string) error {
	cfg, err := loadOpsConfig()
	if err != nil {
		return err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return err
	}

	policySet := policies.DefaultPolicies()
	if cfg.Paths.PoliciesManifest != "" {
		policySet, err = policies.LoadManifest(cfg.Paths.PoliciesManifest)
		if err != nil {
			return err
		}
	}

	commandHandler.policySet = policySet
	commandHandler.logger = loggerInstance
	return nil
}

// Initialize additionally wires the policy service over a live database
// connection, for the subcommands that execute or introspect SQL.
func (commandHandler *RLSCommandHandler) Initialize(cmd *cobra.Command, args []string) error {
	if err := commandHandler.InitializeOffline(cmd, args); err != nil {
		return err
	}

	cfg, err := loadOpsConfig()
	if err != nil {
		return err
	}

	db, err := connectDatabase(cfg.Database)
	if err != nil {
		return err
	}

	scriptService, err := newScriptService(db, commandHandler.logger)
	if err != nil {
		return err
	}

	policyReader, err := persistence.NewPgPolicyReader(db)
	if err != nil {
		return err
	}

	policyService, err := app.NewPolicyService(scriptService, policyReader, commandHandler.logger)
	if err != nil {
		return err
	}

	commandHandler.policyService = policyService
	return nil
}

// ApplyCmd drops and recreates every policy in the set
func (commandHandler *RLSCommandHandler) ApplyCmd(cmd *cobra.Command, _ []string) {
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

	result, err := commandHandler.policyService.Apply(cmd.Context(), commandHandler.policySet, sqlexec.ExecOptions{
		DryRun:      dryRun,
		StopOnError: stopOnError,
	})
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	if !result.Ok() {
		commandHandler.logger.Error(result.Summary())
		for _, stmtErr := range result.Failed {
			commandHandler.logger.Error(stmtErr)
		}
		os.Exit(1)
	}
}

// ListCmd prints the policies installed in the database
func (commandHandler *RLSCommandHandler) ListCmd(cmd *cobra.Command, _ []string) {
	table, err := cmd.Flags().GetString("table")
	if err != nil {
		commandHandler.logger.Error("invalid table flag ", err)
		return
	}

	applied, err := commandHandler.policyService.List(cmd.Context(), table)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tPOLICY\tCOMMAND\tROLES")
	for _, policy := range applied {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", policy.Table, policy.Name, policy.Command, strings.Join(policy.Roles, ","))
	}
	if err := w.Flush(); err != nil {
		commandHandler.logger.Error(err)
	}
}

// RenderCmd prints the SQL the apply command would execute
func (commandHandler *RLSCommandHandler) RenderCmd(_ *cobra.Command, _ []string) {
	script, err := policies.RenderAll(commandHandler.policySet)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	fmt.Println(script)
}

// InitRLSCommands registers the rls command group
func InitRLSCommands(rootCmd *cobra.Command) error {
	handler := &RLSCommandHandler{}

	rlsCmd := &cobra.Command{
		Use:               "rls",
		Short:             "Apply and inspect row level security policies",
		PersistentPreRunE: handler.Initialize,
	}

	var applyCmd = &cobra.Command{
		Use:   "apply",
		Short: "Drop and recreate the policy set on the live schema",
		Run:   handler.ApplyCmd,
	}
	applyCmd.Flags().BoolP("dry-run", "", false, "Report the statements without executing them")
	applyCmd.Flags().BoolP("stop-on-error", "", false, "Abort the run at the first failing statement")
	rlsCmd.AddCommand(applyCmd)

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the policies installed in the database",
		Run:   handler.ListCmd,
	}
	listCmd.Flags().StringP("table", "", "", "Only list policies on this table")
	rlsCmd.AddCommand(listCmd)

	var renderCmd = &cobra.Command{
		Use:               "render",
		Short:             "Print the SQL the apply command would execute",
		PersistentPreRunE: handler.InitializeOffline,
		Run:               handler.RenderCmd,
	}
	rlsCmd.AddCommand(renderCmd)

	rootCmd.AddCommand(rlsCmd)

	return nil
}
