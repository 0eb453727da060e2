// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"testing"
)

func TestPathHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in         string
		archive    string
		decompiled string
		buildTemp  string
	}{
		{"sample.xapk", "sample.zip", "sample_decompiled.zip", "sample.zip"},
		{"dir/app.v2.xapk", "dir/app.v2.zip", "dir/app.v2_decompiled.zip", "dir/app.v2.zip"},
		{"a.xapk.backup.xapk", "a.xapk.backup.zip", "a.xapk.backup_decompiled.zip", "a.xapk.backup.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := ArchivePath(tt.in); got != tt.archive {
				t.Errorf("ArchivePath() = %q, want %q", got, tt.archive)
			}
			if got := DecompiledPath(tt.in); got != tt.decompiled {
				t.Errorf("DecompiledPath() = %q, want %q", got, tt.decompiled)
			}
			if got := BuildTempPath(tt.in); got != tt.buildTemp {
				t.Errorf("BuildTempPath() = %q, want %q", got, tt.buildTemp)
			}
		})
	}
}

func TestBuildTempPath_NonBundleName(t *testing.T) {
	t.Parallel()

	if got := BuildTempPath("rebuilt.apkm"); got != "rebuilt.apkm.zip" {
		t.Errorf("BuildTempPath() = %q, want suffix appended", got)
	}
}

func TestHasSuffix(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"app.xapk":      true,
		"app.XAPK":      false,
		"app.xapk.zip":  false,
		"app.zip":       false,
		".xapk":         true,
		"dir.xapk/file": false,
	}
	for in, want := range tests {
		if got := HasSuffix(in); got != want {
			t.Errorf("HasSuffix(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSuffixError(t *testing.T) {
	t.Parallel()

	err := checkSuffix("app.zip")
	if !errors.Is(err, ErrBundleSuffix) {
		t.Fatalf("checkSuffix() = %v, want ErrBundleSuffix", err)
	}
	if err.Error() != "Input file must have .xapk extension." {
		t.Errorf("message = %q", err.Error())
	}
	var se *SuffixError
	if !errors.As(err, &se) || se.Path != "app.zip" {
		t.Errorf("SuffixError.Path not recorded: %v", err)
	}
}
