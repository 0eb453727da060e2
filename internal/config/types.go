// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ArchiverNative extracts and writes archives in-process.
	ArchiverNative ArchiverBackend = "native"
	// ArchiverExternal shells out to the platform archive utilities.
	ArchiverExternal ArchiverBackend = "external"

	// CompressionDeflate compresses re-zipped entries.
	CompressionDeflate Compression = "deflate"
	// CompressionStore writes re-zipped entries uncompressed.
	CompressionStore Compression = "store"

	// MarkerXML writes xapktool.xml.
	MarkerXML MarkerFormat = "xml"
	// MarkerYAML writes xapktool.yaml.
	MarkerYAML MarkerFormat = "yaml"
	// MarkerTOML writes xapktool.toml.
	MarkerTOML MarkerFormat = "toml"
	// MarkerJSON writes xapktool.json.
	MarkerJSON MarkerFormat = "json"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidArchiverBackend is returned when an ArchiverBackend value is not recognized.
	ErrInvalidArchiverBackend = errors.New("invalid archiver backend")
	// ErrInvalidCompression is returned when a Compression value is not recognized.
	ErrInvalidCompression = errors.New("invalid compression")
	// ErrInvalidMarkerFormat is returned when a MarkerFormat value is not recognized.
	ErrInvalidMarkerFormat = errors.New("invalid marker format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ArchiverBackend selects the Extract-All / Zip-Flat implementation.
	ArchiverBackend string

	// Compression selects the method used for re-zipped entries.
	Compression string

	// MarkerFormat selects the encoding of the marker descriptor.
	// Defined locally to avoid coupling config to internal/marker;
	// the CLI casts to marker.Format at the boundary.
	MarkerFormat string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidValueError is returned when an enumerated config value is not
	// recognized. It wraps the per-field sentinel for errors.Is() compatibility.
	InvalidValueError struct {
		Key      string
		Value    string
		Valid    []string
		sentinel error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig and collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Archiver configures how bundles are extracted and re-zipped
		Archiver ArchiverConfig `json:"archiver" mapstructure:"archiver"`
		// Editor configures the editor opened by the view operation
		Editor EditorConfig `json:"editor" mapstructure:"editor"`
		// Marker configures the bookkeeping descriptor written on decompile
		Marker MarkerConfig `json:"marker" mapstructure:"marker"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ArchiverConfig configures the archiver backend.
	ArchiverConfig struct {
		Backend     ArchiverBackend `json:"backend" mapstructure:"backend"`
		Compression Compression     `json:"compression" mapstructure:"compression"`
	}

	// EditorConfig configures the view editor.
	EditorConfig struct {
		// Command is split shell-style; empty means $VISUAL, $EDITOR, then the
		// platform default.
		Command string `json:"command" mapstructure:"command"`
	}

	// MarkerConfig configures the marker descriptor.
	MarkerConfig struct {
		Format MarkerFormat `json:"format" mapstructure:"format"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Archiver: ArchiverConfig{
			Backend:     ArchiverNative,
			Compression: CompressionDeflate,
		},
		Marker: MarkerConfig{
			Format: MarkerXML,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate returns an InvalidConfigError listing every unrecognized value.
// Environment overrides bypass the CUE schema, so loaded configs are checked
// again here.
func (c Config) Validate() error {
	var errs []error
	if err := c.Archiver.Backend.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Archiver.Compression.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Marker.Format.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Validate returns an error if the backend is not native or external.
func (b ArchiverBackend) Validate() error {
	switch b {
	case ArchiverNative, ArchiverExternal:
		return nil
	default:
		return newInvalidValue("archiver.backend", string(b), ErrInvalidArchiverBackend,
			ArchiverNative, ArchiverExternal)
	}
}

// Validate returns an error if the compression is not deflate or store.
func (c Compression) Validate() error {
	switch c {
	case CompressionDeflate, CompressionStore:
		return nil
	default:
		return newInvalidValue("archiver.compression", string(c), ErrInvalidCompression,
			CompressionDeflate, CompressionStore)
	}
}

// Validate returns an error if the marker format is unknown.
func (f MarkerFormat) Validate() error {
	switch f {
	case MarkerXML, MarkerYAML, MarkerTOML, MarkerJSON:
		return nil
	default:
		return newInvalidValue("marker.format", string(f), ErrInvalidMarkerFormat,
			MarkerXML, MarkerYAML, MarkerTOML, MarkerJSON)
	}
}

// Validate returns an error if the color scheme is unknown.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return newInvalidValue("ui.color_scheme", string(cs), ErrInvalidColorScheme,
			ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight)
	}
}

// GlamourStyle maps the color scheme to a glamour style name.
func (cs ColorScheme) GlamourStyle() string {
	switch cs {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

func newInvalidValue[T ~string](key, value string, sentinel error, valid ...T) *InvalidValueError {
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = string(v)
	}
	return &InvalidValueError{Key: key, Value: value, Valid: names, sentinel: sentinel}
}

// Error implements the error interface for InvalidValueError.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: invalid value %q (valid: %v)", e.Key, e.Value, e.Valid)
}

// Unwrap returns the per-field sentinel for errors.Is() compatibility.
func (e *InvalidValueError) Unwrap() error { return e.sentinel }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig and every field error, so errors.Is matches
// both the aggregate and the per-field sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
