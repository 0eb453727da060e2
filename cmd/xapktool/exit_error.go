// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"xapktool-cli/pkg/types"
)

// ExitError carries a process exit status out of a RunE handler. By the time
// one is returned the failure has already been reported on stderr.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("xapktool: exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeOf maps the error returned by the command tree to a process exit
// status. Anything that is not an ExitError with a valid non-zero code exits
// with ExitFailure.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && !exitErr.Code.IsSuccess() && exitErr.Code.Validate() == nil {
		return exitErr.Code
	}
	return types.ExitFailure
}
