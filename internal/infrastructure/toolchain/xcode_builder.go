package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/nabilgpt/samia-tarot-ops/internal/domain/release"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"
)

const (
	xcodeBinary        = "xcodebuild"
	xcodeLogName       = "xcodebuild.log"
	exportOptionsPlist = "ExportOptions.plist"
)

// XcodeBuilder archives and exports a release IPA through xcodebuild.
type XcodeBuilder struct {
	logger logger.Logger
	// bin is the xcodebuild binary; tests point it at a stub.
	bin string
}

// NewXcodeBuilder creates a XcodeBuilder
func NewXcodeBuilder(logger logger.Logger) (release.Builder, error) {
	return &XcodeBuilder{logger: logger, bin: xcodeBinary}, nil
}

// Build archives the scheme and exports the archive, copying the resulting
// IPA to the spec's output directory. When the project carries an
// ExportOptions.plist it is passed through to the export step.
func (b *XcodeBuilder) Build(ctx context.Context, spec release.BuildSpec) (*release.BuildResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	bin, err := exec.LookPath(b.bin)
	if err != nil {
		return nil, fmt.Errorf("xcodebuild not found on PATH")
	}

	if err := os.MkdirAll(spec.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	archivePath := filepath.Join(spec.OutputDir, spec.Scheme+".xcarchive")
	exportPath := filepath.Join(spec.OutputDir, "export")
	logPath := filepath.Join(spec.OutputDir, xcodeLogName)
	start := time.Now()

	archiveArgs := []string{"archive", "-scheme", spec.Scheme, "-configuration", "Release", "-archivePath", archivePath}
	if spec.Clean {
		archiveArgs = append([]string{"clean"}, archiveArgs...)
	}

	b.logger.Info("Archiving Xcode scheme ", spec.Scheme, " in ", spec.ProjectDir)
	if err := runTool(ctx, spec.ProjectDir, logPath, bin, archiveArgs...); err != nil {
		return nil, fmt.Errorf("xcode archive failed: %w (full output in %s)", err, logPath)
	}

	exportArgs := []string{"-exportArchive", "-archivePath", archivePath, "-exportPath", exportPath}
	if plist := filepath.Join(spec.ProjectDir, exportOptionsPlist); fileExists(plist) {
		exportArgs = append(exportArgs, "-exportOptionsPlist", plist)
	}

	if err := runTool(ctx, spec.ProjectDir, logPath, bin, exportArgs...); err != nil {
		return nil, fmt.Errorf("xcode export failed: %w (full output in %s)", err, logPath)
	}

	ipa, err := newestArtifact(exportPath, ".ipa")
	if err != nil {
		return nil, err
	}

	artifact, err := copyArtifact(ipa, spec.OutputDir)
	if err != nil {
		return nil, err
	}

	b.logger.Info("Built iOS archive ", artifact)

	return &release.BuildResult{
		Platform: release.PlatformIOS,
		Artifact: artifact,
		LogPath:  logPath,
		Duration: time.Since(start),
	}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
