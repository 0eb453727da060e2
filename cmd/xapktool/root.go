// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"xapktool-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

const (
	// usageText is printed when the positional form gets too few tokens.
	usageText = `Usage: xapktool -d <input.xapk> <output-dir>
or: xapktool -b <input-dir> <output.xapk>
or: xapktool -v <input.xapk>
`
	unknownCommandText = "Unknown command."

	positionalCommandName = "__positional"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(routeArgs(os.Args[1:]))

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(int(exitCodeOf(err)))
	}
}

// newRootCommand creates the root command with the global flags and every
// subcommand. The -d/-b/-v form runs through a hidden command that args
// reach via routeArgs.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xapktool",
		Short: "Decompile, rebuild and inspect .xapk bundles",
		Long: TitleStyle.Render("xapktool") + SubtitleStyle.Render(" - Decompile, rebuild and inspect .xapk bundles") + `

An .xapk bundle is a ZIP archive holding split APKs, OBB data and a
manifest.json. xapktool unpacks one into a directory, packs a directory
back into a bundle, and opens a bundle's manifest in your editor.

` + SubtitleStyle.Render("Examples:") + `
  xapktool -d app.xapk out/        Decompile app.xapk into out/
  xapktool -b out/ app.xapk        Build app.xapk from out/
  xapktool -v app.xapk             Open manifest.json in your editor
  xapktool decompile app.xapk out/ Same as -d
  xapktool config show             Show current configuration`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setVerbose(app.flags.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// A mode flag here was not the first token.
			if app.flags.decompile || app.flags.build || app.flags.view {
				fmt.Fprintln(app.stdout, unknownCommandText)
				return nil
			}
			return app.runPositional(cmd, args)
		},
	}

	bindModeFlags(rootCmd, app)

	pflags := rootCmd.PersistentFlags()
	pflags.StringVar(&app.flags.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/xapktool/config.cue)")
	pflags.BoolVar(&app.flags.verbose, "verbose", false, "enable verbose output")
	pflags.StringVar(&app.flags.archiver, "archiver", "", "archiver backend: native or external")
	pflags.StringVar(&app.flags.markerFormat, "marker-format", "", "marker format: xml, yaml, toml or json")

	// Unknown flags on the positional form are unknown commands; subcommands
	// keep cobra's usual error.
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if c.HasParent() && c.Name() != positionalCommandName {
			return err
		}
		fmt.Fprintln(app.stdout, unknownCommandText)
		return nil
	})

	rootCmd.AddCommand(
		newPositionalCommand(app),
		newDecompileCommand(app),
		newBuildCommand(app),
		newViewCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// newPositionalCommand creates the hidden command behind the -d/-b/-v form.
// It has no subcommands, so operands such as "build" or "view" stay paths.
func newPositionalCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          positionalCommandName,
		Hidden:       true,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPositional(cmd, args)
		},
	}
	bindModeFlags(cmd, app)
	return cmd
}

func bindModeFlags(cmd *cobra.Command, app *App) {
	flags := cmd.Flags()
	flags.BoolVarP(&app.flags.decompile, "decompile", "d", false, "decompile <input.xapk> <output-dir>")
	flags.BoolVarP(&app.flags.build, "build", "b", false, "build <input-dir> <output.xapk>")
	flags.BoolVarP(&app.flags.view, "view", "v", false, "view <input.xapk>")
}

// routeArgs sends argument lists whose first token is a mode flag to the
// positional command, ahead of cobra's subcommand lookup.
func routeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	switch args[0] {
	case "-d", "-b", "-v", "--decompile", "--build", "--view":
		return append([]string{positionalCommandName}, args...)
	}
	return args
}

// runPositional dispatches the -d/-b/-v form. Usage problems print a message
// and succeed.
func (a *App) runPositional(cmd *cobra.Command, args []string) error {
	var modes []string
	if a.flags.decompile {
		modes = append(modes, "-d")
	}
	if a.flags.build {
		modes = append(modes, "-b")
	}
	if a.flags.view {
		modes = append(modes, "-v")
	}
	tokens := len(modes) + len(args)

	switch len(modes) {
	case 0:
		if tokens < 3 {
			fmt.Fprint(a.stdout, usageText)
		} else {
			fmt.Fprintln(a.stdout, unknownCommandText)
		}
		return nil
	case 1:
	default:
		fmt.Fprintln(a.stdout, unknownCommandText)
		return nil
	}

	// -v takes a single operand, so "-v app.xapk" is complete at two tokens.
	// Operands beyond the required count are ignored.
	required := 3
	if modes[0] == "-v" {
		required = 2
	}
	if tokens < required {
		fmt.Fprint(a.stdout, usageText)
		return nil
	}

	switch modes[0] {
	case "-d":
		return a.decompile(cmd, args[0], args[1])
	case "-b":
		return a.build(cmd, args[0], args[1])
	default:
		return a.view(cmd, args[0])
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
