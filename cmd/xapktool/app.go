// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"xapktool-cli/internal/archive"
	"xapktool-cli/internal/bundle"
	"xapktool-cli/internal/config"
	"xapktool-cli/internal/editor"
	"xapktool-cli/internal/issue"
	"xapktool-cli/internal/marker"
	"xapktool-cli/internal/procexec"
	"xapktool-cli/pkg/types"

	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra handler receives an App reference and builds its
	// bundle.Service through it.
	App struct {
		Config ConfigProvider
		// ArchiveRunner spawns zip/unzip or PowerShell for the external backend.
		ArchiveRunner procexec.Runner
		// EditorRunner spawns the editor for view. It owns the terminal.
		EditorRunner procexec.Runner

		now    func() time.Time
		getenv func(string) string
		goos   string
		stdout io.Writer
		stderr io.Writer

		flags     globalFlags
		verbose   bool
		stylePath string
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply fakes to isolate
	// process spawning, time and the environment.
	Dependencies struct {
		Config        ConfigProvider
		ArchiveRunner procexec.Runner
		EditorRunner  procexec.Runner
		Clock         func() time.Time
		Getenv        func(string) string
		GOOS          string
		Stdin         io.Reader
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Loaded, error)
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		configFile   string
		verbose      bool
		archiver     string
		markerFormat string

		decompile bool
		build     bool
		view      bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.ArchiveRunner == nil {
		// Archive tools never read input; their chatter is diagnostics.
		deps.ArchiveRunner = procexec.NewExecRunner(nil, deps.Stderr, deps.Stderr)
	}
	if deps.EditorRunner == nil {
		// Ctrl-C inside the editor belongs to the editor, not to us.
		deps.EditorRunner = procexec.NewExecRunner(deps.Stdin, deps.Stdout, deps.Stderr, procexec.WithoutCancel())
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}
	if deps.GOOS == "" {
		deps.GOOS = runtime.GOOS
	}

	return &App{
		Config:        deps.Config,
		ArchiveRunner: deps.ArchiveRunner,
		EditorRunner:  deps.EditorRunner,
		now:           deps.Clock,
		getenv:        deps.Getenv,
		goos:          deps.GOOS,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
		stylePath:     string(config.ColorSchemeAuto),
	}, nil
}

// loadConfig reads the configuration. A broken file at the default location
// is reported as a warning and defaults are used; an explicit --config file
// must load.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configFile})
	if err == nil {
		slog.Debug("configuration loaded", "path", loaded.Path, "env", loaded.EnvOverrides)
		return loaded.Config, nil
	}
	if a.flags.configFile != "" {
		return nil, err
	}

	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
	return config.DefaultConfig(), nil
}

// applyFlags layers the --archiver and --marker-format overrides on cfg.
func (a *App) applyFlags(cfg *config.Config) error {
	if a.flags.archiver != "" {
		backend := config.ArchiverBackend(a.flags.archiver)
		if err := backend.Validate(); err != nil {
			return err
		}
		cfg.Archiver.Backend = backend
	}
	if a.flags.markerFormat != "" {
		format := config.MarkerFormat(a.flags.markerFormat)
		if err := format.Validate(); err != nil {
			return err
		}
		cfg.Marker.Format = format
	}
	return nil
}

// newService loads the effective configuration and builds the bundle.Service
// for one invocation.
func (a *App) newService(ctx context.Context) (*bundle.Service, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err = a.applyFlags(cfg); err != nil {
		return nil, err
	}

	if cfg.UI.Verbose && !a.verbose {
		a.setVerbose(true)
	}
	a.stylePath = cfg.UI.ColorScheme.GlamourStyle()

	arch, err := archive.New(archive.Options{
		Backend:     cfg.Archiver.Backend,
		Compression: cfg.Archiver.Compression,
		GOOS:        a.goos,
		Runner:      a.ArchiveRunner,
	})
	if err != nil {
		return nil, err
	}

	ed := &editor.Editor{
		Command: editor.Resolve(cfg.Editor.Command, a.getenv, a.goos),
		Runner:  a.EditorRunner,
	}
	slog.Debug("configuration resolved",
		"archiver", cfg.Archiver.Backend,
		"compression", cfg.Archiver.Compression,
		"marker", cfg.Marker.Format,
		"editor", ed.Command)

	return bundle.NewService(arch,
		bundle.WithOpener(ed),
		bundle.WithClock(a.now),
		bundle.WithMarkerFormat(marker.Format(cfg.Marker.Format)),
	), nil
}

// setVerbose switches debug logging on or off.
func (a *App) setVerbose(v bool) {
	a.verbose = v
	installLogger(newLogger(a.stderr, v))
}

// fail renders the issue card for err on stderr and returns the ExitError
// that makes the process exit 1. fang prints the error line itself; verbose
// mode adds the suggestions and the full error chain first.
func (a *App) fail(cmd *cobra.Command, err error, id issue.Id) error {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		svcErr = newServiceError(err, id, "")
	}
	renderServiceError(a.stderr, svcErr, a.stylePath)
	if a.verbose {
		fmt.Fprintln(a.stderr, formatErrorForDisplay(err, true))
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: types.ExitFailure, Err: svcErr}
}

// warn renders a non-fatal problem on stderr.
func (a *App) warn(err error, id issue.Id) {
	if id != 0 {
		renderServiceError(a.stderr, newServiceError(err, id, ""), a.stylePath)
	}
	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
}
