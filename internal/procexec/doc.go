// SPDX-License-Identifier: MPL-2.0

// Package procexec spawns external programs (archive utilities, editors) and
// blocks until they exit.
//
// Errors are classified so callers can tell a program that ran and returned a
// non-zero status (ExitStatusError) from one that could not be started at all
// (LaunchError). The first is usually downgraded to a warning with Tolerate;
// the second is always fatal.
package procexec
