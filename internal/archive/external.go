// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"fmt"
	"os"
	"strings"

	"xapktool-cli/internal/procexec"
	"xapktool-cli/pkg/platform"
)

// External implements Archiver by spawning the platform archive utilities
// and waiting for them. A non-zero exit status is logged as a warning and
// treated as success; failing to start the tool is an error.
type External struct {
	GOOS   string
	Runner procexec.Runner
}

// ExtractAll implements Archiver.
func (e *External) ExtractAll(ctx context.Context, archivePath, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	name, args := e.extractCommand(archivePath, destDir)
	return procexec.Tolerate(e.Runner.Run(ctx, name, args...))
}

// ZipFlat implements Archiver.
func (e *External) ZipFlat(ctx context.Context, srcDir, destPath string, opts FlatOptions) error {
	files, err := flatFiles(srcDir, destPath, opts)
	if err != nil {
		return err
	}

	// zip updates an existing archive in place; start from scratch.
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace existing archive: %w", err)
	}

	// Neither tool writes an archive for an empty file list.
	if len(files) == 0 {
		return writeEmpty(destPath)
	}

	name, args := e.zipCommand(files, destPath)
	return procexec.Tolerate(e.Runner.Run(ctx, name, args...))
}

func (e *External) extractCommand(archivePath, destDir string) (string, []string) {
	extract, _ := platform.ArchiveTools(e.GOOS)
	if platform.IsWindows(e.GOOS) {
		script := fmt.Sprintf("Expand-Archive -LiteralPath %s -DestinationPath %s -Force",
			psQuote(archivePath), psQuote(destDir))
		return extract, powerShellArgs(script)
	}
	return extract, []string{"-o", "-q", archivePath, "-d", destDir}
}

func (e *External) zipCommand(files []string, destPath string) (string, []string) {
	_, create := platform.ArchiveTools(e.GOOS)
	if platform.IsWindows(e.GOOS) {
		quoted := make([]string, len(files))
		for i, f := range files {
			quoted[i] = psQuote(f)
		}
		script := fmt.Sprintf("Compress-Archive -LiteralPath %s -DestinationPath %s -Force",
			strings.Join(quoted, ","), psQuote(destPath))
		return create, powerShellArgs(script)
	}
	args := append([]string{"-j", "-q", destPath}, files...)
	return create, args
}

func powerShellArgs(script string) []string {
	return []string{"-NoProfile", "-NonInteractive", "-Command", script}
}

// psQuote renders s as a single-quoted PowerShell literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
