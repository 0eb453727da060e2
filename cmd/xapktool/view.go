// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"xapktool-cli/internal/bundle"
	"xapktool-cli/internal/issue"
	"xapktool-cli/internal/procexec"

	"github.com/spf13/cobra"
)

func newViewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view <input.xapk>",
		Short: "Open a bundle's manifest.json in your editor (same as -v)",
		Long: `Open a bundle's manifest.json in your editor.

The bundle is extracted into a private temporary directory that is removed
once the editor exits. The editor is taken from editor.command in the config
file, then $VISUAL, then $EDITOR, then the platform default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.view(cmd, args[0])
		},
	}
}

func (a *App) view(cmd *cobra.Command, input string) error {
	ctx := cmd.Context()

	svc, err := a.newService(ctx)
	if err != nil {
		return a.fail(cmd, err, issue.ConfigLoadFailedId)
	}

	result, err := svc.View(ctx, input)
	if err != nil {
		return a.procedureError(cmd, err)
	}

	switch {
	case !result.ManifestFound:
		fmt.Fprintf(a.stdout, "%s not found.\n", bundle.ManifestName)
	case result.EditorErr != nil:
		var id issue.Id
		if errors.Is(result.EditorErr, procexec.ErrLaunch) {
			id = issue.EditorNotFoundId
		}
		a.warn(fmt.Errorf("failed to open %s: %w", bundle.ManifestName, result.EditorErr), id)
	case !result.Manifest.IsZero():
		slog.Info("bundle manifest", "summary", result.Manifest.String())
	}

	fmt.Fprintln(a.stdout, "View complete.")
	return nil
}
