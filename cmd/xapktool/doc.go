// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for xapktool.
//
// Two surfaces reach the same procedures: the classic positional form
// (xapktool -d|-b|-v ...) and named subcommands
// (xapktool decompile|build|view ...). Usage problems on the positional form
// print a message and exit 0; I/O failures exit 1.
package cmd
