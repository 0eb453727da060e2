// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"xapktool-cli/internal/config"
	"xapktool-cli/internal/procexec"
	"xapktool-cli/internal/testutil"
)

type (
	invocation struct {
		name string
		args []string
	}

	// recordingRunner records invocations and returns err for each.
	recordingRunner struct {
		calls []invocation
		err   error
	}
)

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.calls = append(r.calls, invocation{name: name, args: args})
	return r.err
}

func TestExternal_ExtractAll_Unix(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	e := &External{GOOS: "linux", Runner: runner}

	dest := filepath.Join(t.TempDir(), "out")
	if err := e.ExtractAll(context.Background(), "in.zip", dest); err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(runner.calls))
	}
	got := runner.calls[0]
	if got.name != "unzip" {
		t.Errorf("name = %q, want unzip", got.name)
	}
	if want := []string{"-o", "-q", "in.zip", "-d", dest}; !slices.Equal(got.args, want) {
		t.Errorf("args = %v, want %v", got.args, want)
	}
	if !testutil.Exists(dest) {
		t.Error("destination directory should be created before spawning")
	}
}

func TestExternal_ExtractAll_Windows(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}
	e := &External{GOOS: "windows", Runner: runner}

	dest := filepath.Join(t.TempDir(), "it's here")
	if err := e.ExtractAll(context.Background(), `C:\in.zip`, dest); err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}

	got := runner.calls[0]
	if got.name != "powershell" {
		t.Errorf("name = %q, want powershell", got.name)
	}
	script := got.args[len(got.args)-1]
	if !strings.HasPrefix(script, "Expand-Archive -LiteralPath 'C:\\in.zip'") {
		t.Errorf("script = %q", script)
	}
	if !strings.Contains(script, "it''s here") {
		t.Errorf("single quotes must be doubled, script = %q", script)
	}
	if !strings.HasSuffix(script, "-Force") {
		t.Errorf("script should overwrite, got %q", script)
	}
}

func TestExternal_ZipFlat_Unix(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	testutil.MustWriteFile(t, filepath.Join(src, "b.apk"), "B")
	testutil.MustWriteFile(t, filepath.Join(src, "a.json"), "A")
	testutil.MustWriteFile(t, filepath.Join(src, "xapktool.xml"), "M")
	testutil.MustWriteFile(t, filepath.Join(src, "sub", "c.obb"), "C")

	dest := filepath.Join(tmp, "out.zip")
	testutil.MustWriteFile(t, dest, "stale archive")

	runner := &recordingRunner{}
	e := &External{GOOS: "darwin", Runner: runner}
	if err := e.ZipFlat(context.Background(), src, dest, FlatOptions{Exclude: []string{"xapktool.xml"}}); err != nil {
		t.Fatalf("ZipFlat() error = %v", err)
	}

	want := []string{"-j", "-q", dest, filepath.Join(src, "a.json"), filepath.Join(src, "b.apk")}
	if got := runner.calls[0].args; !slices.Equal(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
	if runner.calls[0].name != "zip" {
		t.Errorf("name = %q, want zip", runner.calls[0].name)
	}
	if testutil.Exists(dest) {
		t.Error("stale destination should be removed before zip runs")
	}
}

func TestExternal_ZipFlat_EmptyWritesNatively(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	testutil.MustMkdirAll(t, filepath.Join(src, "nested"), 0o755)

	runner := &recordingRunner{}
	e := &External{GOOS: "linux", Runner: runner}
	dest := filepath.Join(tmp, "out.zip")
	if err := e.ZipFlat(context.Background(), src, dest, FlatOptions{}); err != nil {
		t.Fatalf("ZipFlat() error = %v", err)
	}

	if len(runner.calls) != 0 {
		t.Errorf("no tool should run for an empty file list, got %v", runner.calls)
	}
	if got := testutil.ZipEntries(t, dest); len(got) != 0 {
		t.Errorf("entries = %v, want none", got)
	}
}

func TestExternal_NonZeroExitIsWarning(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{err: &procexec.ExitStatusError{Name: "unzip", Code: 9}}
	e := &External{GOOS: "linux", Runner: runner}

	if err := e.ExtractAll(context.Background(), "in.zip", t.TempDir()); err != nil {
		t.Errorf("ExtractAll() error = %v, want nil for a non-zero exit", err)
	}
}

func TestExternal_LaunchFailureIsError(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{err: &procexec.LaunchError{Name: "unzip", Err: exec.ErrNotFound}}
	e := &External{GOOS: "linux", Runner: runner}

	err := e.ExtractAll(context.Background(), "in.zip", t.TempDir())
	if !errors.Is(err, procexec.ErrLaunch) {
		t.Errorf("ExtractAll() error = %v, want ErrLaunch", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	runner := &recordingRunner{}

	tests := []struct {
		name     string
		opts     Options
		wantType string
		wantErr  error
	}{
		{"default", Options{}, "native", nil},
		{"native store", Options{Backend: config.ArchiverNative, Compression: config.CompressionStore}, "native", nil},
		{"external", Options{Backend: config.ArchiverExternal, Runner: runner}, "external", nil},
		{"unknown", Options{Backend: "7zip"}, "", ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := New(tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			switch v := a.(type) {
			case *Native:
				if tt.wantType != "native" {
					t.Errorf("got native, want %s", tt.wantType)
				}
				if v.Compression != tt.opts.Compression {
					t.Errorf("Compression = %q, want %q", v.Compression, tt.opts.Compression)
				}
			case *External:
				if tt.wantType != "external" {
					t.Errorf("got external, want %s", tt.wantType)
				}
				if v.GOOS == "" {
					t.Error("GOOS should default to runtime.GOOS")
				}
			}
		})
	}

	if _, err := New(Options{Backend: config.ArchiverExternal}); err == nil {
		t.Error("external backend without a runner should fail")
	}
}
