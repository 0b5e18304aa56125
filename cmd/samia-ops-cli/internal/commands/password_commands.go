package commands

import (
	"fmt"
	"os"

	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/accounts"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/connector"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/breaker"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// PasswordCommandHandler encapsulates logic for the password command group.
type PasswordCommandHandler struct {
	accountService accounts.AccountMaintenanceService
	logger         logger.Logger
}

// Initialize wires the account maintenance service over the profiles table
// and the BaaS auth admin API.
func (commandHandler *PasswordCommandHandler) Initialize(_ *cobra.Command, _ []string) error {
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

	profileRepo, err := persistence.NewGormProfileRepository(db, loggerInstance)
	if err != nil {
		return err
	}

	if err := cfg.BaaS.Validate(); err != nil {
		return err
	}

	authAdmin, err := connector.NewBaaSAdminConnector(&cfg.BaaS, breaker.New("baas-admin"), loggerInstance)
	if err != nil {
		return err
	}

	accountService, err := app.NewAccountMaintenanceService(profileRepo, authAdmin, loggerInstance)
	if err != nil {
		return err
	}

	commandHandler.accountService = accountService
	commandHandler.logger = loggerInstance
	return nil
}

// FixMissingCmd sets a temporary password on every profile without a hash
func (commandHandler *PasswordCommandHandler) FixMissingCmd(cmd *cobra.Command, _ []string) {
	tempPassword, err := cmd.Flags().GetString("temp-password")
	if err != nil {
		commandHandler.logger.Error("invalid temp-password flag ", err)
		return
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		commandHandler.logger.Error("invalid dry-run flag ", err)
		return
	}

	result, err := commandHandler.accountService.FixMissingPasswords(cmd.Context(), accounts.FixOptions{
		TempPassword: tempPassword,
		DryRun:       dryRun,
	})
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	// The one operator-facing print of the plaintext; it is never logged.
	if result.Updated > 0 && result.Password != "" {
		fmt.Printf("Temporary password for %d profile(s): %s\n", result.Updated, result.Password)
	}

	if result.Failed > 0 {
		os.Exit(1)
	}
}

// ResetCmd sets a new password for one profile in both stores
func (commandHandler *PasswordCommandHandler) ResetCmd(cmd *cobra.Command, _ []string) {
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		commandHandler.logger.Error("invalid email flag ", err)
		return
	}
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		commandHandler.logger.Error("invalid password flag ", err)
		return
	}
	if email == "" || password == "" {
		commandHandler.logger.Error("the email and password flags are required")
		return
	}

	if err := commandHandler.accountService.ResetPassword(cmd.Context(), email, password); err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}
}

// CreateUserCmd creates an auth user and its profiles row
func (commandHandler *PasswordCommandHandler) CreateUserCmd(cmd *cobra.Command, _ []string) {
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		commandHandler.logger.Error("invalid email flag ", err)
		return
	}
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		commandHandler.logger.Error("invalid password flag ", err)
		return
	}
	role, err := cmd.Flags().GetString("role")
	if err != nil {
		commandHandler.logger.Error("invalid role flag ", err)
		return
	}
	if email == "" || password == "" {
		commandHandler.logger.Error("the email and password flags are required")
		return
	}

	user, err := commandHandler.accountService.CreateUser(cmd.Context(), email, password, role)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	commandHandler.logger.Info("User ", user.Email, " has auth id ", user.ID)
}

// InitPasswordCommands registers the password command group
func InitPasswordCommands(rootCmd *cobra.Command) error {
	handler := &PasswordCommandHandler{}

	passwordCmd := &cobra.Command{
		Use:               "password",
		Short:             "Repair and manage account passwords",
		PersistentPreRunE: handler.Initialize,
	}

	var fixMissingCmd = &cobra.Command{
		Use:   "fix-missing",
		Short: "Set a temporary password on every profile without a hash",
		Run:   handler.FixMissingCmd,
	}
	fixMissingCmd.Flags().StringP("temp-password", "", "", "Temporary password to apply; random when omitted")
	fixMissingCmd.Flags().BoolP("dry-run", "", false, "Report the affected profiles without writing anything")
	passwordCmd.AddCommand(fixMissingCmd)

	var resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Set a new password for one account",
		Run:   handler.ResetCmd,
	}
	resetCmd.Flags().StringP("email", "", "", "Email of the profile to reset")
	resetCmd.Flags().StringP("password", "", "", "New password")
	passwordCmd.AddCommand(resetCmd)

	var createUserCmd = &cobra.Command{
		Use:   "create-user",
		Short: "Create an auth user and its profiles row",
		Run:   handler.CreateUserCmd,
	}
	createUserCmd.Flags().StringP("email", "", "", "Email for the new user")
	createUserCmd.Flags().StringP("password", "", "", "Password for the new user")
	createUserCmd.Flags().StringP("role", "", accounts.RoleClient, "Platform role: client, reader, monitor or admin")
	passwordCmd.AddCommand(createUserCmd)

	rootCmd.AddCommand(passwordCmd)

	return nil
}
