// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes runtime.GOOS comparisons and the per-platform defaults for
// the external programs xapktool may launch: the text editor used by the view
// operation and the archive utilities used by the external archiver backend.
package platform
