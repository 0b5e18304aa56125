package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/release"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

const (
	gradleWrapper   = "gradlew"
	gradleBundleDir = "app/build/outputs/bundle/release"
	gradleLogName   = "gradle-build.log"
)

// GradleBuilder produces a release AAB through the project's Gradle wrapper.
type GradleBuilder struct {
	logger logger.Logger
}

// NewGradleBuilder creates a GradleBuilder
func NewGradleBuilder(logger logger.Logger) (release.Builder, error) {
	return &GradleBuilder{logger: logger}, nil
}

// Build runs `./gradlew bundleRelease` (with a preceding clean when asked),
// picks the newest bundle under the release output directory and copies it to
// the spec's output directory.
func (b *GradleBuilder) Build(ctx context.Context, spec release.BuildSpec) (*release.BuildResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	wrapper := filepath.Join(spec.ProjectDir, gradleWrapper)
	if _, err := os.Stat(wrapper); err != nil {
		return nil, fmt.Errorf("gradlew not found in project dir %s", spec.ProjectDir)
	}

	if err := os.MkdirAll(spec.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{"bundleRelease"}
	if spec.Clean {
		args = append([]string{"clean"}, args...)
	}

	logPath := filepath.Join(spec.OutputDir, gradleLogName)
	start := time.Now()

	b.logger.Info("Running Gradle bundleRelease in ", spec.ProjectDir)
	if err := runTool(ctx, spec.ProjectDir, logPath, wrapper, args...); err != nil {
		return nil, fmt.Errorf("gradle build failed: %w (full output in %s)", err, logPath)
	}

	bundle, err := newestArtifact(filepath.Join(spec.ProjectDir, gradleBundleDir), ".aab")
	if err != nil {
		return nil, err
	}

	artifact, err := copyArtifact(bundle, spec.OutputDir)
	if err != nil {
		return nil, err
	}

	b.logger.Info("Built Android bundle ", artifact)

	return &release.BuildResult{
		Platform: release.PlatformAndroid,
		Artifact: artifact,
		LogPath:  logPath,
		Duration: time.Since(start),
	}, nil
}
