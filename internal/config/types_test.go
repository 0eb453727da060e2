// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestEnumValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		validate func() error
		sentinel error
	}{
		{"backend native", ArchiverNative.Validate, nil},
		{"backend external", ArchiverExternal.Validate, nil},
		{"backend unknown", ArchiverBackend("7zip").Validate, ErrInvalidArchiverBackend},
		{"backend empty", ArchiverBackend("").Validate, ErrInvalidArchiverBackend},
		{"compression deflate", CompressionDeflate.Validate, nil},
		{"compression store", CompressionStore.Validate, nil},
		{"compression unknown", Compression("lzma").Validate, ErrInvalidCompression},
		{"marker xml", MarkerXML.Validate, nil},
		{"marker yaml", MarkerYAML.Validate, nil},
		{"marker toml", MarkerTOML.Validate, nil},
		{"marker json", MarkerJSON.Validate, nil},
		{"marker unknown", MarkerFormat("ini").Validate, ErrInvalidMarkerFormat},
		{"color auto", ColorSchemeAuto.Validate, nil},
		{"color unknown", ColorScheme("neon").Validate, ErrInvalidColorScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.validate()
			if tt.sentinel == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Validate() = %v, want wrapping %v", err, tt.sentinel)
			}
			var valueErr *InvalidValueError
			if !errors.As(err, &valueErr) {
				t.Fatalf("Validate() = %T, want *InvalidValueError", err)
			}
			if len(valueErr.Valid) == 0 {
				t.Error("InvalidValueError should list valid values")
			}
		})
	}
}

func TestConfigValidate_CollectsAllFields(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid, got %v", err)
	}

	cfg.Archiver.Backend = "bogus"
	cfg.Marker.Format = "bogus"

	err := cfg.Validate()
	var cfgErr *InvalidConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Validate() = %T, want *InvalidConfigError", err)
	}
	if len(cfgErr.FieldErrors) != 2 {
		t.Errorf("len(FieldErrors) = %d, want 2", len(cfgErr.FieldErrors))
	}
	if !errors.Is(err, ErrInvalidArchiverBackend) || !errors.Is(err, ErrInvalidMarkerFormat) {
		t.Errorf("aggregate error should match both field sentinels: %v", err)
	}
}

func TestColorScheme_GlamourStyle(t *testing.T) {
	t.Parallel()

	tests := map[ColorScheme]string{
		ColorSchemeAuto:  "auto",
		ColorSchemeDark:  "dark",
		ColorSchemeLight: "light",
	}
	for cs, want := range tests {
		if got := cs.GlamourStyle(); got != want {
			t.Errorf("%q.GlamourStyle() = %q, want %q", cs, got, want)
		}
	}
}
