// SPDX-License-Identifier: MPL-2.0

package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"xapktool-cli/internal/config"
	"xapktool-cli/internal/procexec"
)

// copyBufferSize is the fixed streaming buffer used for every entry.
const copyBufferSize = 32 * 1024

var (
	// ErrUnsafeEntry is returned when an archive entry would be written
	// outside the extraction directory.
	ErrUnsafeEntry = errors.New("archive entry escapes destination")

	// ErrUnknownBackend is returned by New for an unrecognized backend.
	ErrUnknownBackend = errors.New("unknown archiver backend")
)

type (
	// Archiver extracts and creates ZIP archives.
	Archiver interface {
		// ExtractAll reproduces every entry of archivePath under destDir,
		// creating destDir if needed. Existing files are overwritten.
		ExtractAll(ctx context.Context, archivePath, destDir string) error
		// ZipFlat writes the immediate regular files of srcDir to destPath.
		ZipFlat(ctx context.Context, srcDir, destPath string, opts FlatOptions) error
	}

	// FlatOptions tunes ZipFlat.
	FlatOptions struct {
		// Exclude lists bare file names left out of the archive.
		Exclude []string
	}

	// Options selects and configures an Archiver.
	Options struct {
		Backend     config.ArchiverBackend
		Compression config.Compression
		// GOOS selects the external tool set; defaults to runtime.GOOS.
		GOOS string
		// Runner spawns external tools; required for the external backend.
		Runner procexec.Runner
	}

	// UnsafeEntryError reports an entry name rejected by the traversal guard.
	UnsafeEntryError struct {
		Name string
	}
)

// New returns the Archiver selected by opts.Backend. An empty backend selects
// the native implementation.
func New(opts Options) (Archiver, error) {
	switch opts.Backend {
	case config.ArchiverNative, "":
		return &Native{Compression: opts.Compression}, nil
	case config.ArchiverExternal:
		goos := opts.GOOS
		if goos == "" {
			goos = runtime.GOOS
		}
		if opts.Runner == nil {
			return nil, fmt.Errorf("external archiver requires a process runner")
		}
		return &External{GOOS: goos, Runner: opts.Runner}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// Error implements the error interface for UnsafeEntryError.
func (e *UnsafeEntryError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsafeEntry, e.Name)
}

// Unwrap returns ErrUnsafeEntry for errors.Is() compatibility.
func (e *UnsafeEntryError) Unwrap() error { return ErrUnsafeEntry }

// flatFiles lists the files ZipFlat packs: immediate entries of srcDir that
// resolve (following symlinks) to regular files, minus excluded names and the
// destination archive itself. Dangling symlinks are skipped. Results are
// sorted by name.
func flatFiles(srcDir, destPath string, opts FlatOptions) (files []string, err error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", srcDir, err)
	}

	absDest, err := filepath.Abs(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output path: %w", err)
	}

	for _, entry := range entries {
		if slices.Contains(opts.Exclude, entry.Name()) {
			continue
		}

		path := filepath.Join(srcDir, entry.Name())
		if absPath, absErr := filepath.Abs(path); absErr == nil && absPath == absDest {
			continue
		}

		info, statErr := os.Stat(path)
		if errors.Is(statErr, fs.ErrNotExist) {
			slog.Debug("skipping dangling symlink", "path", path)
			continue
		}
		if statErr != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, statErr)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, path)
	}

	return files, nil
}

// safeJoin resolves an archive entry name under destDir, rejecting names that
// would escape it.
func safeJoin(destDir, name string) (string, error) {
	if filepath.IsAbs(filepath.FromSlash(name)) {
		return "", &UnsafeEntryError{Name: name}
	}

	destPath := filepath.Join(destDir, filepath.FromSlash(name))

	relPath, err := filepath.Rel(destDir, destPath)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", &UnsafeEntryError{Name: name}
	}

	return destPath, nil
}
