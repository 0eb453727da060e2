// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"xapktool-cli/internal/issue"

	"github.com/spf13/cobra"
)

func newBuildCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build <input-dir> <output.xapk>",
		Short: "Pack a directory into a bundle (same as -b)",
		Long: `Pack a directory into a bundle.

Only the top-level files of <input-dir> are archived; subdirectories are
skipped. The marker file written by decompile is left out of the bundle and
deleted from <input-dir> afterwards.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.build(cmd, args[0], args[1])
		},
	}
}

func (a *App) build(cmd *cobra.Command, inputDir, output string) error {
	ctx := cmd.Context()

	svc, err := a.newService(ctx)
	if err != nil {
		return a.fail(cmd, err, issue.ConfigLoadFailedId)
	}

	result, err := svc.Build(ctx, inputDir, output)
	if err != nil {
		return a.procedureError(cmd, err)
	}

	logArtifact("built bundle", result.Output)
	for _, name := range result.RemovedMarkers {
		fmt.Fprintf(a.stdout, "%s deleted.\n", name)
	}
	fmt.Fprintln(a.stdout, "Build complete.")
	return nil
}
