// SPDX-License-Identifier: MPL-2.0

package editor

import (
	"context"
	"errors"
	"slices"
	"testing"

	"xapktool-cli/internal/procexec"
)

type fakeRunner struct {
	name string
	args []string
	err  error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.name, f.args = name, args
	return f.err
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
		env        map[string]string
		goos       string
		want       string
	}{
		{"configured wins", "code --wait", map[string]string{"VISUAL": "emacs", "EDITOR": "nano"}, "linux", "code --wait"},
		{"visual before editor", "", map[string]string{"VISUAL": "emacs", "EDITOR": "nano"}, "linux", "emacs"},
		{"editor fallback", "", map[string]string{"EDITOR": "nano"}, "darwin", "nano"},
		{"unix default", "", nil, "linux", "vi"},
		{"windows default", "", nil, "windows", "notepad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			getenv := func(k string) string { return tt.env[k] }
			if got := Resolve(tt.configured, getenv, tt.goos); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpen_SplitsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command  string
		wantName string
		wantArgs []string
	}{
		{"vi", "vi", []string{"/tmp/m.json"}},
		{"code --wait", "code", []string{"--wait", "/tmp/m.json"}},
		{`"/opt/My Editor/bin/edit" -n`, "/opt/My Editor/bin/edit", []string{"-n", "/tmp/m.json"}},
		{`subl -w --title 'view manifest'`, "subl", []string{"-w", "--title", "view manifest", "/tmp/m.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			runner := &fakeRunner{}
			e := &Editor{Command: tt.command, Runner: runner}
			if err := e.Open(context.Background(), "/tmp/m.json"); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if runner.name != tt.wantName {
				t.Errorf("name = %q, want %q", runner.name, tt.wantName)
			}
			if !slices.Equal(runner.args, tt.wantArgs) {
				t.Errorf("args = %q, want %q", runner.args, tt.wantArgs)
			}
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	if err := (&Editor{Command: "   ", Runner: &fakeRunner{}}).Open(context.Background(), "x"); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("blank command error = %v, want ErrEmptyCommand", err)
	}

	if err := (&Editor{Command: `vi "unterminated`, Runner: &fakeRunner{}}).Open(context.Background(), "x"); err == nil {
		t.Error("unterminated quote should be rejected")
	}

	exitErr := &procexec.ExitStatusError{Name: "vi", Code: 1}
	err := (&Editor{Command: "vi", Runner: &fakeRunner{err: exitErr}}).Open(context.Background(), "x")
	if !errors.Is(err, exitErr) {
		t.Errorf("runner error should pass through unchanged, got %v", err)
	}
}
