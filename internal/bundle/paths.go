// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// Suffix identifies bundle files. The check is case-sensitive.
	Suffix = ".xapk"
	// ArchiveSuffix replaces Suffix for the intermediate copy.
	ArchiveSuffix = ".zip"
	// DecompiledSuffix replaces Suffix for the decompile re-zip.
	DecompiledSuffix = "_decompiled.zip"
	// ManifestName is the bundle manifest at the archive root.
	ManifestName = "manifest.json"
)

// ErrBundleSuffix is the sentinel error wrapped by SuffixError.
var ErrBundleSuffix = errors.New("input file must have .xapk extension")

// SuffixError is returned when an input path does not end in ".xapk".
// Nothing on disk has been touched when it is returned.
type SuffixError struct {
	Path string
}

// Error implements the error interface. The message is the one printed to
// the user, so it is capitalized and punctuated.
func (e *SuffixError) Error() string {
	return "Input file must have .xapk extension."
}

// Unwrap returns ErrBundleSuffix for errors.Is() compatibility.
func (e *SuffixError) Unwrap() error { return ErrBundleSuffix }

// HasSuffix reports whether path names a bundle file.
func HasSuffix(path string) bool {
	return strings.HasSuffix(path, Suffix)
}

// ArchivePath returns path with its trailing ".xapk" replaced by ".zip".
// Earlier occurrences of ".xapk" are left alone.
func ArchivePath(path string) string {
	return strings.TrimSuffix(path, Suffix) + ArchiveSuffix
}

// DecompiledPath returns path with its trailing ".xapk" replaced by
// "_decompiled.zip".
func DecompiledPath(path string) string {
	return strings.TrimSuffix(path, Suffix) + DecompiledSuffix
}

// BuildTempPath returns where Build writes the archive before renaming it to
// output: ".xapk" becomes ".zip", any other name gets ".zip" appended.
func BuildTempPath(output string) string {
	if HasSuffix(output) {
		return ArchivePath(output)
	}
	return output + ArchiveSuffix
}

func checkSuffix(path string) error {
	if !HasSuffix(path) {
		return &SuffixError{Path: path}
	}
	return nil
}

// copyFile copies src to dst, replacing dst.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}
