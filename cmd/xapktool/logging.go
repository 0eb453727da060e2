// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns the stderr logger behind slog. Debug records appear only
// in verbose mode.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "xapktool",
		Level:  level,
	})
}

// installLogger makes logger the slog default so internal packages, which
// log through slog, share the CLI's formatting.
func installLogger(logger *log.Logger) {
	slog.SetDefault(slog.New(logger))
}
