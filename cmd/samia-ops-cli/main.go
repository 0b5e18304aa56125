// Package main is the entry point for the samia-ops-cli application.
// It initializes the root command and registers the command groups (migrate,
// rls, seed, password, audit, schema, doctor, provision, release, budget),
// then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/nabilgpt/samia-tarot-ops/cmd/samia-ops-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "samia-ops-cli",
		Short: "Operations toolkit for the Samia Tarot platform",
		Long: `samia-ops-cli is the operations command-line tool for the Samia Tarot
booking platform. It applies schema migrations and row level security
policies, seeds application settings, repairs account passwords, keeps an
audit trail, checks schema drift and vendor health, provisions DNS and
transactional email, and wraps the mobile store builds.

Database and vendor credentials are read from configs/ops.yaml, a local
.env file, or SAMIA_OPS_* environment variables. Credentials are only
required by the command groups that use them.`,
	}

	commands.RegisterGlobalFlags(rootCmd)

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitMigrateCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize migrate commands: %w", err)
	}

	if err := commands.InitRLSCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize rls commands: %w", err)
	}

	if err := commands.InitSeedCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize seed commands: %w", err)
	}

	if err := commands.InitPasswordCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize password commands: %w", err)
	}

	if err := commands.InitAuditCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize audit commands: %w", err)
	}

	if err := commands.InitSchemaCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize schema commands: %w", err)
	}

	if err := commands.InitDoctorCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize doctor commands: %w", err)
	}

	if err := commands.InitProvisionCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize provision commands: %w", err)
	}

	if err := commands.InitReleaseCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize release commands: %w", err)
	}

	if err := commands.InitBudgetCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize budget commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
