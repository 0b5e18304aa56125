// Package toolchain wraps the mobile build toolchains behind the release
// Builder contract. Builders shell out to the project's own tooling, capture
// combined output to a log file and copy the finished artifact to the
// requested output directory.
package toolchain

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// runTool executes the binary in dir and appends combined output to the log
// file at logPath. The context cancels the process when it expires.
func runTool(ctx context.Context, dir, logPath, binary string, args ...string) error {
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open build log: %w", err)
	}
	defer logFile.Close()

	fmt.Fprintf(logFile, "$ %s %s\n", binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", filepath.Base(binary), args[0], err)
	}
	return nil
}

// newestArtifact returns the most recently modified file with the extension
// under dir.
func newestArtifact(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read artifact directory %s: %w", dir, err)
	}

	var newest string
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestMod {
			newest = entry.Name()
			newestMod = info.ModTime().UnixNano()
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no %s artifact found under %s", ext, dir)
	}
	return filepath.Join(dir, newest), nil
}

// copyArtifact copies the artifact into destDir and returns the new path.
func copyArtifact(artifact, destDir string) (string, error) {
	src, err := os.Open(artifact)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	defer src.Close()

	destPath := filepath.Join(destDir, filepath.Base(artifact))
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create artifact copy: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return "", fmt.Errorf("failed to copy artifact: %w", err)
	}
	return destPath, nil
}
