// SPDX-License-Identifier: MPL-2.0

package procexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

// ErrLaunch is the sentinel error wrapped by LaunchError.
var ErrLaunch = errors.New("failed to launch command")

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Runner runs a program to completion.
	Runner interface {
		Run(ctx context.Context, name string, args ...string) error
	}

	// ExecRunner runs programs with os/exec, wiring the configured streams
	// to the child. Nil streams are connected to the null device.
	ExecRunner struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer

		execCommand  ExecCommandFunc
		ignoreCancel bool
	}

	// ExecRunnerOption configures an ExecRunner.
	ExecRunnerOption func(*ExecRunner)

	// ExitStatusError reports a program that ran and exited non-zero.
	ExitStatusError struct {
		Name string
		Code int
	}

	// LaunchError reports a program that could not be started, typically
	// because it is not installed or not executable.
	LaunchError struct {
		Name string
		Err  error
	}
)

// WithExecCommand overrides how commands are constructed.
func WithExecCommand(fn ExecCommandFunc) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.execCommand = fn
	}
}

// WithoutCancel keeps children running when the caller's context is
// canceled. Interactive programs such as editors handle SIGINT themselves and
// must outlive it.
func WithoutCancel() ExecRunnerOption {
	return func(r *ExecRunner) {
		r.ignoreCancel = true
	}
}

// NewExecRunner creates an ExecRunner using the given streams.
func NewExecRunner(stdin io.Reader, stdout, stderr io.Writer, opts ...ExecRunnerOption) *ExecRunner {
	r := &ExecRunner{
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts name with args and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	execCommand := r.execCommand
	if execCommand == nil {
		execCommand = exec.CommandContext
	}
	if r.ignoreCancel {
		ctx = context.WithoutCancel(ctx)
	}

	cmd := execCommand(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	slog.Debug("running external command", "command", name, "args", args)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitStatusError{Name: name, Code: exitErr.ExitCode()}
	}

	return &LaunchError{Name: name, Err: err}
}

// Tolerate downgrades an ExitStatusError to a logged warning and returns nil.
// Any other error is returned unchanged.
func Tolerate(err error) error {
	var exitErr *ExitStatusError
	if !errors.As(err, &exitErr) {
		return err
	}
	slog.Warn(fmt.Sprintf("Command failed with exit code %d", exitErr.Code), "command", exitErr.Name)
	return nil
}

// IsNotFound reports whether err is a LaunchError caused by a missing program.
func IsNotFound(err error) bool {
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		return false
	}
	return errors.Is(launchErr.Err, exec.ErrNotFound)
}

// Error implements the error interface for ExitStatusError.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("%s: command failed with exit code %d", e.Name, e.Code)
}

// Error implements the error interface for LaunchError.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Name, e.Err)
}

// Unwrap returns ErrLaunch and the underlying cause.
func (e *LaunchError) Unwrap() []error {
	return []error{ErrLaunch, e.Err}
}
