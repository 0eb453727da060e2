// SPDX-License-Identifier: MPL-2.0

// Package archive provides the two ZIP primitives used to repackage bundles.
//
// ExtractAll reproduces every entry of an archive, nested directories
// included. ZipFlat is intentionally asymmetric: it packs only the immediate
// regular files of a directory, keyed by bare file name, and silently drops
// subdirectories. A decompile followed by a build therefore loses nested
// content; callers rely on that shape and it must not be "fixed" here.
//
// Two implementations exist: Native works in-process, External shells out to
// the platform archive utilities (unzip/zip, or PowerShell on Windows).
package archive
