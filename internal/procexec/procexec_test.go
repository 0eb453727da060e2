// SPDX-License-Identifier: MPL-2.0

package procexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// helperCommand returns an ExecCommandFunc that re-executes the test binary
// as TestHelperProcess, printing stdout and exiting with exitCode.
func helperCommand(stdout string, exitCode int) ExecCommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // TestHelperProcess is a test-only pattern
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", exitCode),
			fmt.Sprintf("GO_HELPER_STDOUT=%s", stdout),
		}
		return cmd
	}
}

// TestHelperProcess is invoked by helperCommand; it is not a real test.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if stdout := os.Getenv("GO_HELPER_STDOUT"); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}

	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode)
	}

	os.Exit(exitCode)
}

func TestExecRunner_Success(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	r := NewExecRunner(nil, &stdout, nil, WithExecCommand(helperCommand("hello", 0)))

	if err := r.Run(context.Background(), "unzip", "-o"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stdout.String() != "hello" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "hello")
	}
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	t.Parallel()

	r := NewExecRunner(nil, nil, nil, WithExecCommand(helperCommand("", 3)))

	err := r.Run(context.Background(), "zip", "-j")
	var exitErr *ExitStatusError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %v, want *ExitStatusError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
	if exitErr.Name != "zip" {
		t.Errorf("Name = %q, want zip", exitErr.Name)
	}
	if errors.Is(err, ErrLaunch) {
		t.Error("a non-zero exit must not be classified as a launch failure")
	}
}

func TestExecRunner_LaunchFailure(t *testing.T) {
	t.Parallel()

	r := NewExecRunner(nil, nil, nil)

	err := r.Run(context.Background(), "xapktool-definitely-not-installed")
	if !errors.Is(err, ErrLaunch) {
		t.Fatalf("Run() error = %v, want ErrLaunch", err)
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestExecRunner_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExecRunner(nil, nil, nil, WithExecCommand(helperCommand("", 0)))
	if err := r.Run(ctx, "unzip"); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestExecRunner_WithoutCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	r := NewExecRunner(nil, &stdout, nil, WithExecCommand(helperCommand("saved", 0)), WithoutCancel())
	if err := r.Run(ctx, "vi", "manifest.json"); err != nil {
		t.Fatalf("Run() error = %v, want the child to run to completion", err)
	}
	if stdout.String() != "saved" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "saved")
	}
}

func TestExecRunner_WithoutCancel_ExitStatus(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExecRunner(nil, nil, nil, WithExecCommand(helperCommand("", 130)), WithoutCancel())
	err := r.Run(ctx, "vi")
	var exitErr *ExitStatusError
	if !errors.As(err, &exitErr) || exitErr.Code != 130 {
		t.Fatalf("Run() error = %v, want ExitStatusError with code 130", err)
	}
	if errors.Is(err, context.Canceled) {
		t.Error("an editor exit after cancellation must not be reported as an interruption")
	}
}

func TestTolerate(t *testing.T) {
	// Not parallel: swaps the default slog logger.
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	if err := Tolerate(nil); err != nil {
		t.Errorf("Tolerate(nil) = %v", err)
	}

	if err := Tolerate(&ExitStatusError{Name: "unzip", Code: 9}); err != nil {
		t.Errorf("Tolerate(ExitStatusError) = %v, want nil", err)
	}
	if !strings.Contains(logs.String(), "Command failed with exit code 9") {
		t.Errorf("warning not logged, got: %q", logs.String())
	}

	launch := &LaunchError{Name: "zip", Err: exec.ErrNotFound}
	if err := Tolerate(launch); !errors.Is(err, ErrLaunch) {
		t.Errorf("Tolerate(LaunchError) = %v, want launch error unchanged", err)
	}

	wrapped := fmt.Errorf("extract: %w", &ExitStatusError{Name: "unzip", Code: 1})
	if err := Tolerate(wrapped); err != nil {
		t.Errorf("Tolerate(wrapped exit error) = %v, want nil", err)
	}
}

func TestIsNotFound_OtherErrors(t *testing.T) {
	t.Parallel()

	tests := []error{
		nil,
		errors.New("boom"),
		&ExitStatusError{Name: "zip", Code: 1},
		&LaunchError{Name: "zip", Err: os.ErrPermission},
	}
	for _, err := range tests {
		if IsNotFound(err) {
			t.Errorf("IsNotFound(%v) = true, want false", err)
		}
	}
}
