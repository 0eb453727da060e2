// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"xapktool-cli/internal/bundle"
	"xapktool-cli/internal/issue"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDecompileCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decompile <input.xapk> <output-dir>",
		Short: "Unpack a bundle into a directory (same as -d)",
		Long: `Unpack a bundle into a directory.

The bundle is extracted into <output-dir>, a marker file recording the source
and time is written at its root, and the top-level files of <output-dir> are
re-zipped next to the input as <name>_decompiled.zip.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.decompile(cmd, args[0], args[1])
		},
	}
}

func (a *App) decompile(cmd *cobra.Command, input, outputDir string) error {
	ctx := cmd.Context()

	svc, err := a.newService(ctx)
	if err != nil {
		return a.fail(cmd, err, issue.ConfigLoadFailedId)
	}

	result, err := svc.Decompile(ctx, input, outputDir)
	if result != nil && result.MarkerPath != "" {
		fmt.Fprintf(a.stdout, "%s created.\n", filepath.Base(result.MarkerPath))
	}
	if err != nil {
		return a.procedureError(cmd, err)
	}

	logArtifact("re-zipped decompiled bundle", result.Rezipped)
	if !result.Manifest.IsZero() {
		slog.Info("bundle manifest", "summary", result.Manifest.String())
	}
	fmt.Fprintln(a.stdout, "Decompile complete.")
	return nil
}

// procedureError prints precondition failures as plain messages (exit 0) and
// fails on anything else.
func (a *App) procedureError(cmd *cobra.Command, err error) error {
	if errors.Is(err, bundle.ErrBundleSuffix) {
		fmt.Fprintln(a.stdout, err.Error())
		return nil
	}
	return a.fail(cmd, err, classifyIssue(err))
}

// logArtifact reports the size of a file the procedure wrote.
func logArtifact(msg, path string) {
	info, err := os.Stat(path)
	if err != nil {
		slog.Debug("artifact not readable", "path", path, "error", err)
		return
	}
	slog.Info(msg, "path", path, "size", humanize.Bytes(uint64(info.Size())))
}
