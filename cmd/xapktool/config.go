// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"xapktool-cli/internal/config"
	"xapktool-cli/internal/editor"
	"xapktool-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `xapktool config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage xapktool configuration",
		Long: `Manage xapktool configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/xapktool/config.cue (~/.config/xapktool/config.cue)
  - macOS: ~/Library/Application Support/xapktool/config.cue
  - Windows: %APPDATA%\xapktool\config.cue

Every key can be overridden with an XAPKTOOL_ environment variable, e.g.
XAPKTOOL_ARCHIVER_BACKEND=external or XAPKTOOL_EDITOR_COMMAND="code --wait".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.initConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfigPath(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadStrict(cmd.Context())
			if err != nil {
				return app.fail(cmd, err, issue.ConfigLoadFailedId)
			}

			fmt.Fprint(app.stdout, config.GenerateCUE(cfg.Config))
			return nil
		},
	})

	return cfgCmd
}

// loadStrict loads configuration without falling back to defaults, so config
// commands surface a broken file instead of hiding it.
func (a *App) loadStrict(ctx context.Context) (*config.Loaded, error) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configFile})
	if err != nil {
		return nil, err
	}
	if err := a.applyFlags(loaded.Config); err != nil {
		return nil, err
	}
	return loaded, nil
}

func (a *App) showConfig(cmd *cobra.Command) error {
	cfg, err := a.loadStrict(cmd.Context())
	if err != nil {
		return a.fail(cmd, err, issue.ConfigLoadFailedId)
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	w := a.stdout
	fmt.Fprintln(w, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfg.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfg.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	if len(cfg.EnvOverrides) > 0 {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Environment"), strings.Join(cfg.EnvOverrides, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("archiver"))
	fmt.Fprintf(w, "  backend: %s\n", valueStyle.Render(string(cfg.Archiver.Backend)))
	fmt.Fprintf(w, "  compression: %s\n", valueStyle.Render(string(cfg.Archiver.Compression)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("editor"))
	if cfg.Editor.Command != "" {
		fmt.Fprintf(w, "  command: %s\n", valueStyle.Render(cfg.Editor.Command))
	} else {
		resolved := editor.Resolve("", a.getenv, a.goos)
		fmt.Fprintf(w, "  command: %s\n", SubtitleStyle.Render("(not set, using "+resolved+")"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("marker"))
	fmt.Fprintf(w, "  format: %s\n", valueStyle.Render(string(cfg.Marker.Format)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func (a *App) initConfig(cmd *cobra.Command) error {
	cfgPath, created, err := config.CreateDefaultConfig("")
	if err != nil {
		return a.fail(cmd, fmt.Errorf("failed to create config: %w", err), 0)
	}

	if !created {
		fmt.Fprintf(a.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}
	fmt.Fprintf(a.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func (a *App) showConfigPath(cmd *cobra.Command) error {
	cfgPath, exists, err := config.FilePath(config.LoadOptions{ConfigFilePath: a.flags.configFile})
	if err != nil {
		return a.fail(cmd, err, 0)
	}

	fmt.Fprintf(a.stdout, "Config directory: %s\n", filepath.Dir(cfgPath))
	fmt.Fprintf(a.stdout, "Config file: %s\n", cfgPath)
	if !exists {
		fmt.Fprintln(a.stdout, SubtitleStyle.Render("(file does not exist; run 'xapktool config init')"))
	}
	return nil
}
