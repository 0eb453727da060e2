// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"io"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

// WriteZip writes a ZIP archive at path. Keys are entry names; a key ending in
// "/" becomes a directory entry and its value is ignored. Entries are written
// in sorted order so fixtures are reproducible.
func WriteZip(t testing.TB, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip %s: %v", path, err)
	}
	zw := zip.NewWriter(f)

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s to zip: %v", name, err)
		}
		if strings.HasSuffix(name, "/") {
			continue
		}
		if _, err := io.WriteString(w, entries[name]); err != nil {
			t.Fatalf("failed to write %s to zip: %v", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finalize zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
}

// ZipEntries returns the sorted entry names of the archive at path.
func ZipEntries(t testing.TB, path string) []string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open zip %s: %v", path, err)
	}
	defer func() { _ = zr.Close() }()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	slices.Sort(names)
	return names
}

// ZipEntry returns the content of the named entry. The test fails if the
// entry is missing.
func ZipEntry(t testing.TB, path, name string) string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open zip %s: %v", path, err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open entry %s: %v", name, err)
		}
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("failed to read entry %s: %v", name, err)
		}
		return string(data)
	}

	t.Fatalf("entry %s not found in %s", name, path)
	return ""
}
