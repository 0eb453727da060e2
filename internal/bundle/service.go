// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"xapktool-cli/internal/archive"
	"xapktool-cli/internal/issue"
	"xapktool-cli/internal/marker"
	"xapktool-cli/internal/procexec"
)

// viewExtractDir is the extraction directory name inside the view workspace.
const viewExtractDir = "output"

type (
	// Opener opens a file for the user and blocks until they are done.
	Opener interface {
		Open(ctx context.Context, path string) error
	}

	// Service runs the repackaging procedures. It holds no state between
	// calls.
	Service struct {
		archiver     archive.Archiver
		opener       Opener
		now          func() time.Time
		markerFormat marker.Format
		tempDir      string
	}

	// Option configures a Service.
	Option func(*Service)

	// DecompileResult describes a finished (or partially finished) decompile.
	DecompileResult struct {
		Input     string
		OutputDir string
		// Rezipped is the flat re-zip written next to Input.
		Rezipped string
		// MarkerPath is empty when the marker could not be written; MarkerErr
		// then holds the reason. A marker failure does not fail the decompile.
		MarkerPath string
		MarkerErr  error
		Manifest   ManifestSummary
	}

	// BuildResult describes a finished build.
	BuildResult struct {
		InputDir string
		Output   string
		// RemovedMarkers lists marker file names deleted from InputDir.
		RemovedMarkers []string
		// MarkerErr reports a marker that could not be deleted. It does not
		// fail the build.
		MarkerErr error
	}

	// ViewResult describes a finished view.
	ViewResult struct {
		Input         string
		ManifestFound bool
		// ManifestPath is the absolute path handed to the editor. It no
		// longer exists once View returns.
		ManifestPath string
		Manifest     ManifestSummary
		// EditorErr reports an editor that could not be launched. It does not
		// fail the view; cleanup still runs.
		EditorErr error
	}
)

// WithOpener sets the editor used by View.
func WithOpener(o Opener) Option {
	return func(s *Service) {
		s.opener = o
	}
}

// WithClock sets the time source used for marker timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithMarkerFormat sets the marker encoding written by Decompile.
func WithMarkerFormat(f marker.Format) Option {
	return func(s *Service) {
		s.markerFormat = f
	}
}

// WithTempDir sets the parent of View's workspace; empty means os.TempDir().
func WithTempDir(dir string) Option {
	return func(s *Service) {
		s.tempDir = dir
	}
}

// NewService creates a Service backed by a.
func NewService(a archive.Archiver, opts ...Option) *Service {
	s := &Service{
		archiver:     a,
		now:          time.Now,
		markerFormat: marker.FormatXML,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Decompile unpacks input into outputDir. The returned result is non-nil
// whenever the suffix check passed, and records how far the procedure got
// even when an error is returned. Nothing is rolled back on failure.
func (s *Service) Decompile(ctx context.Context, input, outputDir string) (*DecompileResult, error) {
	if err := checkSuffix(input); err != nil {
		return nil, err
	}

	result := &DecompileResult{Input: input, OutputDir: outputDir}

	zipPath := ArchivePath(input)
	if err := copyFile(input, zipPath); err != nil {
		return result, issue.NewErrorContext().
			WithOperation("copy bundle").
			WithResource(input).
			WithSuggestion("Check that the input file exists and is readable").
			WithSuggestion("Check that its directory is writable; a .zip copy is created next to it").
			Wrap(err).
			BuildError()
	}

	if err := s.archiver.ExtractAll(ctx, zipPath, outputDir); err != nil {
		return result, issue.NewErrorContext().
			WithOperation("extract bundle").
			WithResource(input).
			WithSuggestion("Check that the file is a valid .xapk (ZIP) archive").
			WithIssue(issue.MalformedBundleId).
			Wrap(err).
			BuildError()
	}

	if err := os.Remove(zipPath); err != nil {
		return result, issue.WrapWithContext(err, "remove intermediate archive", zipPath)
	}

	d := marker.New(input, outputDir, s.now())
	if path, err := marker.Write(outputDir, d, s.markerFormat); err != nil {
		result.MarkerErr = err
		slog.Warn("failed to write marker", "dir", outputDir, "error", err)
	} else {
		result.MarkerPath = path
	}

	rezipped := DecompiledPath(input)
	if err := s.archiver.ZipFlat(ctx, outputDir, rezipped, archive.FlatOptions{}); err != nil {
		return result, issue.NewErrorContext().
			WithOperation("re-zip decompiled bundle").
			WithResource(rezipped).
			WithSuggestion("Check that the directory of the input file is writable").
			Wrap(err).
			BuildError()
	}
	result.Rezipped = rezipped

	result.Manifest = s.summary(filepath.Join(outputDir, ManifestName))

	return result, nil
}

// Build packs the top-level files of inputDir into output. Marker files are
// left out of the archive and then deleted from inputDir.
func (s *Service) Build(ctx context.Context, inputDir, output string) (*BuildResult, error) {
	result := &BuildResult{InputDir: inputDir, Output: output}

	if d, format, err := marker.Read(inputDir); err == nil {
		slog.Debug("rebuilding decompiled bundle",
			"source", d.InputXAPK, "decompiled_at", d.Timestamp, "marker", format)
	}

	tmp := BuildTempPath(output)
	if err := s.archiver.ZipFlat(ctx, inputDir, tmp, archive.FlatOptions{Exclude: marker.FileNames()}); err != nil {
		_ = os.Remove(tmp) // Best-effort cleanup of a partial archive
		return result, issue.NewErrorContext().
			WithOperation("build bundle").
			WithResource(inputDir).
			WithSuggestion("Check that the input directory exists and is readable").
			WithSuggestion("Check that the output directory exists and is writable").
			Wrap(err).
			BuildError()
	}

	if err := os.Rename(tmp, output); err != nil {
		_ = os.Remove(tmp) // Best-effort cleanup
		return result, issue.NewErrorContext().
			WithOperation("move built bundle into place").
			WithResource(output).
			WithSuggestion("Check that the output path is not a directory and is writable").
			Wrap(err).
			BuildError()
	}

	removed, err := marker.Delete(inputDir)
	result.RemovedMarkers = removed
	if err != nil {
		result.MarkerErr = err
		slog.Warn("failed to delete marker", "dir", inputDir, "error", err)
	}

	return result, nil
}

// View extracts input into a private temporary directory and opens its
// manifest.json, if any, in the configured editor. The temporary directory is
// removed on every path.
func (s *Service) View(ctx context.Context, input string) (*ViewResult, error) {
	if err := checkSuffix(input); err != nil {
		return nil, err
	}

	result := &ViewResult{Input: input}

	workDir, err := os.MkdirTemp(s.tempDir, "xapktool-view-*")
	if err != nil {
		return result, issue.WrapWithContext(err, "create temporary directory", s.tempDir)
	}

	tmpArchive := filepath.Join(workDir, strings.TrimSuffix(filepath.Base(input), Suffix)+ArchiveSuffix)
	extractDir := filepath.Join(workDir, viewExtractDir)
	defer func() {
		if cleanupErr := cleanupView(workDir, tmpArchive, extractDir); cleanupErr != nil {
			slog.Warn("failed to clean up view workspace", "dir", workDir, "error", cleanupErr)
		}
	}()

	if err := copyFile(input, tmpArchive); err != nil {
		return result, issue.NewErrorContext().
			WithOperation("copy bundle").
			WithResource(input).
			WithSuggestion("Check that the input file exists and is readable").
			Wrap(err).
			BuildError()
	}

	if err := s.archiver.ExtractAll(ctx, tmpArchive, extractDir); err != nil {
		return result, issue.NewErrorContext().
			WithOperation("extract bundle").
			WithResource(input).
			WithSuggestion("Check that the file is a valid .xapk (ZIP) archive").
			WithIssue(issue.MalformedBundleId).
			Wrap(err).
			BuildError()
	}

	manifestPath, err := filepath.Abs(filepath.Join(extractDir, ManifestName))
	if err != nil {
		return result, fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	info, statErr := os.Stat(manifestPath)
	if statErr != nil || !info.Mode().IsRegular() {
		return result, nil
	}

	result.ManifestFound = true
	result.ManifestPath = manifestPath
	result.Manifest = s.summary(manifestPath)

	if s.opener == nil {
		result.EditorErr = errors.New("no editor configured")
		return result, nil
	}

	if err := procexec.Tolerate(s.opener.Open(ctx, manifestPath)); err != nil {
		result.EditorErr = err
		slog.Debug("editor launch failed", "error", err)
	}

	return result, nil
}

// cleanupView removes the temporary archive, then the extraction tree, then
// the workspace itself.
func cleanupView(workDir, tmpArchive, extractDir string) error {
	var errs []error
	if err := os.Remove(tmpArchive); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, err)
	}
	if err := os.RemoveAll(extractDir); err != nil {
		errs = append(errs, err)
	}
	if err := os.RemoveAll(workDir); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Service) summary(manifestPath string) ManifestSummary {
	m, err := ReadManifestSummary(manifestPath)
	if err != nil {
		slog.Debug("manifest summary unavailable", "path", manifestPath, "error", err)
		return ManifestSummary{}
	}
	return m
}
