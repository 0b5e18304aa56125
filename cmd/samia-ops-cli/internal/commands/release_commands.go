package commands

import (
	"fmt"
	"os"

	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/release"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/toolchain"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ReleaseCommandHandler encapsulates logic for the release command group.
type ReleaseCommandHandler struct {
	releaseService release.ReleaseService
	settings       config.ReleaseSettings
	logger         logger.Logger
}

// Initialize wires the release service over the Gradle and Xcode builders.
// No database connection is needed for builds.
func (commandHandler *ReleaseCommandHandler) Initialize(_ *cobra.Command, _ []string) error {
	cfg, err := loadOpsConfig()
	if err != nil {
		return err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return err
	}

	androidBuilder, err := toolchain.NewGradleBuilder(loggerInstance)
	if err != nil {
		return err
	}

	iosBuilder, err := toolchain.NewXcodeBuilder(loggerInstance)
	if err != nil {
		return err
	}

	releaseService, err := app.NewReleaseService(androidBuilder, iosBuilder, loggerInstance)
	if err != nil {
		return err
	}

	commandHandler.releaseService = releaseService
	commandHandler.settings = cfg.Release
	commandHandler.logger = loggerInstance
	return nil
}

func (commandHandler *ReleaseCommandHandler) buildSpec(cmd *cobra.Command, platform string) (release.BuildSpec, error) {
	projectDir, err := cmd.Flags().GetString("project-dir")
	if err != nil {
		return release.BuildSpec{}, fmt.Errorf("invalid project-dir flag: %w", err)
	}
	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return release.BuildSpec{}, fmt.Errorf("invalid output-dir flag: %w", err)
	}
	clean, err := cmd.Flags().GetBool("clean")
	if err != nil {
		return release.BuildSpec{}, fmt.Errorf("invalid clean flag: %w", err)
	}

	if outputDir == "" {
		outputDir = commandHandler.settings.OutputDir
	}

	return release.BuildSpec{
		Platform:   platform,
		ProjectDir: projectDir,
		OutputDir:  outputDir,
		Clean:      clean,
	}, nil
}

func (commandHandler *ReleaseCommandHandler) report(result *release.BuildResult) {
	path, err := commandHandler.releaseService.WriteInstructions(result)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}
	fmt.Printf("Artifact: %s\n", result.Artifact)
	fmt.Printf("Build log: %s\n", result.LogPath)
	fmt.Printf("Upload instructions: %s\n", path)
	commandHandler.logger.Info("Build finished in ", result.Duration)
}

// AndroidCmd builds the release AAB
func (commandHandler *ReleaseCommandHandler) AndroidCmd(cmd *cobra.Command, _ []string) {
	spec, err := commandHandler.buildSpec(cmd, release.PlatformAndroid)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	if spec.ProjectDir == "" {
		spec.ProjectDir = commandHandler.settings.AndroidDir
	}

	result, err := commandHandler.releaseService.BuildAndroid(cmd.Context(), spec)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	commandHandler.report(result)
}

// IOSCmd archives and exports the release IPA
func (commandHandler *ReleaseCommandHandler) IOSCmd(cmd *cobra.Command, _ []string) {
	spec, err := commandHandler.buildSpec(cmd, release.PlatformIOS)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	if spec.ProjectDir == "" {
		spec.ProjectDir = commandHandler.settings.IOSDir
	}

	scheme, err := cmd.Flags().GetString("scheme")
	if err != nil {
		commandHandler.logger.Error("invalid scheme flag ", err)
		return
	}
	if scheme == "" {
		scheme = commandHandler.settings.IOSScheme
	}
	spec.Scheme = scheme

	result, err := commandHandler.releaseService.BuildIOS(cmd.Context(), spec)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	commandHandler.report(result)
}

// InitReleaseCommands registers the release command group
func InitReleaseCommands(rootCmd *cobra.Command) error {
	handler := &ReleaseCommandHandler{}

	releaseCmd := &cobra.Command{
		Use:               "release",
		Short:             "Build store-ready mobile artifacts",
		PersistentPreRunE: handler.Initialize,
	}

	var androidCmd = &cobra.Command{
		Use:   "android",
		Short: "Build the release AAB through the Gradle wrapper",
		Run:   handler.AndroidCmd,
	}
	androidCmd.Flags().StringP("project-dir", "", "", "Android project directory")
	androidCmd.Flags().StringP("output-dir", "", "", "Directory the artifact is copied to")
	androidCmd.Flags().BoolP("clean", "", false, "Run a clean build")
	releaseCmd.AddCommand(androidCmd)

	var iosCmd = &cobra.Command{
		Use:   "ios",
		Short: "Archive and export the release IPA through xcodebuild",
		Run:   handler.IOSCmd,
	}
	iosCmd.Flags().StringP("project-dir", "", "", "iOS project directory")
	iosCmd.Flags().StringP("output-dir", "", "", "Directory the artifact is copied to")
	iosCmd.Flags().StringP("scheme", "", "", "Xcode scheme to archive")
	iosCmd.Flags().BoolP("clean", "", false, "Run a clean build")
	releaseCmd.AddCommand(iosCmd)

	rootCmd.AddCommand(releaseCmd)

	return nil
}
