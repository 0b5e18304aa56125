package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/seeds"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// SeedCommandHandler encapsulates logic for the seed command group.
type SeedCommandHandler struct {
	seedService seeds.SeedService
	entries     []seeds.Entry
	logger      logger.Logger
}

// Initialize wires the seed service and resolves the entry set: the built-in
// defaults, with the configured manifest merged on top.
func (commandHandler *SeedCommandHandler) Initialize(_ *cobra.Command, _ []string) error {
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

	settingsRepo, err := persistence.NewGormSettingsRepository(db, loggerInstance)
	if err != nil {
		return err
	}

	seedService, err := app.NewSeedService(settingsRepo, loggerInstance)
	if err != nil {
		return err
	}

	entries := seeds.DefaultEntries()
	if cfg.Paths.SeedsManifest != "" {
		manifestEntries, err := seeds.LoadManifest(cfg.Paths.SeedsManifest)
		if err != nil {
			return err
		}
		entries = seeds.Merge(entries, manifestEntries)
	}

	commandHandler.seedService = seedService
	commandHandler.entries = entries
	commandHandler.logger = loggerInstance
	return nil
}

// RunCmd upserts the entry set into app_settings
func (commandHandler *SeedCommandHandler) RunCmd(cmd *cobra.Command, _ []string) {
	overwrite, err := cmd.Flags().GetBool("overwrite")
	if err != nil {
		commandHandler.logger.Error("invalid overwrite flag ", err)
		return
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		commandHandler.logger.Error("invalid dry-run flag ", err)
		return
	}

	if dryRun {
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tCATEGORY\tVALUE")
		for _, entry := range commandHandler.entries {
			fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Key, entry.Category, entry.DisplayValue())
		}
		if err := w.Flush(); err != nil {
			commandHandler.logger.Error(err)
		}
		commandHandler.logger.Info("Dry run: ", len(commandHandler.entries), " entries would be seeded")
		return
	}

	result, err := commandHandler.seedService.Seed(cmd.Context(), commandHandler.entries, overwrite)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	if result.Failed > 0 {
		os.Exit(1)
	}
}

// ListCmd prints the seeded settings with sensitive values redacted
func (commandHandler *SeedCommandHandler) ListCmd(cmd *cobra.Command, _ []string) {
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		commandHandler.logger.Error("invalid category flag ", err)
		return
	}

	entries, err := commandHandler.seedService.List(cmd.Context(), category)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tCATEGORY\tVALUE")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Key, entry.Category, entry.Value)
	}
	if err := w.Flush(); err != nil {
		commandHandler.logger.Error(err)
	}
}

// InitSeedCommands registers the seed command group
func InitSeedCommands(rootCmd *cobra.Command) error {
	handler := &SeedCommandHandler{}

	seedCmd := &cobra.Command{
		Use:               "seed",
		Short:             "Seed application settings and provider credentials",
		PersistentPreRunE: handler.Initialize,
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Upsert the seed entries into app_settings",
		Run:   handler.RunCmd,
	}
	runCmd.Flags().BoolP("overwrite", "", false, "Update entries whose key already exists")
	runCmd.Flags().BoolP("dry-run", "", false, "Print the entries without writing anything")
	seedCmd.AddCommand(runCmd)

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the seeded settings, sensitive values redacted",
		Run:   handler.ListCmd,
	}
	listCmd.Flags().StringP("category", "", "", "Only list entries in this category")
	seedCmd.AddCommand(listCmd)

	rootCmd.AddCommand(seedCmd)

	return nil
}
