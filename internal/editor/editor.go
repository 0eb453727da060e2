// SPDX-License-Identifier: MPL-2.0

// Package editor resolves and launches the text editor used to show a
// bundle's manifest.
package editor

import (
	"context"
	"errors"
	"fmt"

	"xapktool-cli/internal/procexec"
	"xapktool-cli/pkg/platform"

	"mvdan.cc/sh/v3/shell"
)

// ErrEmptyCommand is returned when the editor command has no words.
var ErrEmptyCommand = errors.New("editor command is empty")

// Editor opens files with a shell-style command line, e.g. "code --wait".
type Editor struct {
	Command string
	Runner  procexec.Runner
}

// Resolve picks the editor command: the configured value, then $VISUAL, then
// $EDITOR, then the platform default.
func Resolve(configured string, getenv func(string) string, goos string) string {
	if configured != "" {
		return configured
	}
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := getenv(key); v != "" {
			return v
		}
	}
	return platform.DefaultEditor(goos)
}

// Open launches the editor on path and blocks until it exits. The error is
// returned unclassified; see procexec for telling a non-zero exit apart from
// a launch failure.
func (e *Editor) Open(ctx context.Context, path string) error {
	name, args, err := e.argv(path)
	if err != nil {
		return err
	}
	return e.Runner.Run(ctx, name, args...)
}

func (e *Editor) argv(path string) (string, []string, error) {
	fields, err := shell.Fields(e.Command, nil)
	if err != nil {
		return "", nil, fmt.Errorf("invalid editor command %q: %w", e.Command, err)
	}
	if len(fields) == 0 {
		return "", nil, ErrEmptyCommand
	}
	args := append(fields[1:len(fields):len(fields)], path)
	return fields[0], args, nil
}
