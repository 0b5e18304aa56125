package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/release"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

// uploadInstructionsFileName is written next to every finished artifact.
const uploadInstructionsFileName = "store-upload-instructions.md"

// releaseService implements the ReleaseService interface over the per-platform
// builders
type releaseService struct {
	androidBuilder release.Builder
	iosBuilder     release.Builder
	logger         logger.Logger
}

// NewReleaseService creates a new releaseService instance
func NewReleaseService(androidBuilder, iosBuilder release.Builder, logger logger.Logger) (release.ReleaseService, error) {
	return &releaseService{
		androidBuilder: androidBuilder,
		iosBuilder:     iosBuilder,
		logger:         logger,
	}, nil
}

// BuildAndroid produces a release AAB through the project's Gradle wrapper.
func (s *releaseService) BuildAndroid(ctx context.Context, spec release.BuildSpec) (*release.BuildResult, error) {
	spec.Platform = release.PlatformAndroid

	result, err := s.androidBuilder.Build(ctx, spec)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Built Android artifact ", result.Artifact, " in ", result.Duration)
	return result, nil
}

// BuildIOS archives and exports a release IPA through xcodebuild.
func (s *releaseService) BuildIOS(ctx context.Context, spec release.BuildSpec) (*release.BuildResult, error) {
	spec.Platform = release.PlatformIOS

	result, err := s.iosBuilder.Build(ctx, spec)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Built iOS artifact ", result.Artifact, " in ", result.Duration)
	return result, nil
}

// WriteInstructions renders the store upload steps and writes them next to
// the artifact, returning the written path.
func (s *releaseService) WriteInstructions(result *release.BuildResult) (string, error) {
	if result == nil || result.Artifact == "" {
		return "", fmt.Errorf("cannot write upload instructions without a built artifact")
	}

	path := filepath.Join(filepath.Dir(result.Artifact), uploadInstructionsFileName)
	content := release.RenderInstructions(result)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write upload instructions to %s: %w", path, err)
	}

	s.logger.Info("Wrote store upload instructions to ", path)
	return path, nil
}
