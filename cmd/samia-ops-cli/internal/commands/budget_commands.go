package commands

import (
	"fmt"
	"os"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/budget"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// BudgetCommandHandler encapsulates logic for the budget command group.
type BudgetCommandHandler struct {
	budget *budget.Budget
	logger logger.Logger
}

// Initialize loads the budget limits. The check runs entirely offline, so
// only config and the optional manifest are needed.
func (commandHandler *BudgetCommandHandler) Initialize(_ *cobra.Command, _ []string) error {
	cfg, err := loadOpsConfig()
	if err != nil {
		return err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return err
	}

	limits := budget.DefaultBudget()
	if cfg.Paths.BudgetsManifest != "" {
		limits, err = budget.LoadManifest(cfg.Paths.BudgetsManifest)
		if err != nil {
			return err
		}
	}

	commandHandler.budget = limits
	commandHandler.logger = loggerInstance
	return nil
}

// CheckCmd evaluates a Lighthouse report against the budget
func (commandHandler *BudgetCommandHandler) CheckCmd(cmd *cobra.Command, _ []string) {
	reportPath, err := cmd.Flags().GetString("report")
	if err != nil {
		commandHandler.logger.Error("invalid report flag ", err)
		return
	}
	if reportPath == "" {
		commandHandler.logger.Error("the report flag is required")
		return
	}

	file, err := os.Open(reportPath)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}
	defer file.Close()

	report, err := budget.ParseReport(file)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	result := budget.Evaluate(report, commandHandler.budget)

	if result.URL != "" {
		fmt.Printf("URL: %s\n", result.URL)
	}
	fmt.Printf("Performance score: %.2f\n", result.Score)

	if result.Ok() {
		fmt.Println("All budgets met")
		return
	}

	for _, violation := range result.Violations {
		fmt.Println(violation.String())
	}
	commandHandler.logger.Error(len(result.Violations), " budget violation(s)")
	os.Exit(1)
}

// InitBudgetCommands registers the budget command group
func InitBudgetCommands(rootCmd *cobra.Command) error {
	handler := &BudgetCommandHandler{}

	budgetCmd := &cobra.Command{
		Use:               "budget",
		Short:             "Check Lighthouse reports against the performance budget",
		PersistentPreRunE: handler.Initialize,
	}

	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Evaluate a Lighthouse JSON report against the budget",
		Run:   handler.CheckCmd,
	}
	checkCmd.Flags().StringP("report", "", "", "Path to the Lighthouse JSON report")
	budgetCmd.AddCommand(checkCmd)

	rootCmd.AddCommand(budgetCmd)

	return nil
}
