// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"xapktool-cli/pkg/types"
)

func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	cause := errors.New("extract failed")
	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{name: "nil", err: nil, want: types.ExitSuccess},
		{name: "plain error", err: cause, want: types.ExitFailure},
		{name: "exit error", err: &ExitError{Code: types.ExitFailure, Err: cause}, want: types.ExitFailure},
		{name: "wrapped exit error", err: fmt.Errorf("run: %w", &ExitError{Code: 3}), want: 3},
		{name: "zero code still fails", err: &ExitError{Code: types.ExitSuccess, Err: cause}, want: types.ExitFailure},
		{name: "out of range code", err: &ExitError{Code: 300}, want: types.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeOf(tt.err); got != tt.want {
				t.Errorf("exitCodeOf(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &ExitError{Code: types.ExitFailure, Err: cause}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want the cause message", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ExitError does not unwrap to its cause")
	}
	if got, want := (&ExitError{Code: 2}).Error(), "xapktool: exit status 2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
