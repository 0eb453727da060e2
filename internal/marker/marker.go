// SPDX-License-Identifier: MPL-2.0

package marker

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatXML is the default marker encoding.
	FormatXML Format = "xml"
	// FormatYAML encodes the marker as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML encodes the marker as TOML.
	FormatTOML Format = "toml"
	// FormatJSON encodes the marker as indented JSON.
	FormatJSON Format = "json"

	// BaseName is the marker file name without extension.
	BaseName = "xapktool"

	// ToolName is recorded in every descriptor.
	ToolName = "XAPKTool"
	// ToolVersion is recorded in every descriptor.
	ToolVersion = "1.0"
	// Description is recorded in every descriptor.
	Description = "This file was created by XAPKTool during the decompiling process"

	// TimestampLayout is second resolution, local time, no zone offset.
	TimestampLayout = "2006-01-02T15:04:05"
)

// ErrUnknownFormat is returned for a Format outside the supported set.
var ErrUnknownFormat = errors.New("unknown marker format")

// formats lists every supported format in lookup order.
var formats = []Format{FormatXML, FormatYAML, FormatTOML, FormatJSON}

type (
	// Format selects the marker encoding and file extension.
	Format string

	// Descriptor is the marker content. Field order is fixed in every encoding.
	Descriptor struct {
		XMLName     xml.Name `xml:"xapkToolInfo" json:"-" yaml:"-" toml:"-"`
		ToolName    string   `xml:"toolName" json:"toolName" yaml:"toolName" toml:"toolName"`
		Version     string   `xml:"version" json:"version" yaml:"version" toml:"version"`
		Description string   `xml:"description" json:"description" yaml:"description" toml:"description"`
		InputXAPK   string   `xml:"inputXAPK" json:"inputXAPK" yaml:"inputXAPK" toml:"inputXAPK"`
		OutputDir   string   `xml:"outputDir" json:"outputDir" yaml:"outputDir" toml:"outputDir"`
		Timestamp   string   `xml:"timestamp" json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	}
)

// New builds a descriptor for a decompile of input into outputDir at now.
// Paths are recorded exactly as given.
func New(input, outputDir string, now time.Time) Descriptor {
	return Descriptor{
		ToolName:    ToolName,
		Version:     ToolVersion,
		Description: Description,
		InputXAPK:   input,
		OutputDir:   outputDir,
		Timestamp:   now.Local().Format(TimestampLayout),
	}
}

// Formats returns every supported format.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// FileNames returns the marker file name of every supported format.
func FileNames() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.FileName()
	}
	return names
}

// Validate returns ErrUnknownFormat if f is not supported.
func (f Format) Validate() error {
	for _, known := range formats {
		if f == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// FileName returns the marker file name for f, e.g. "xapktool.xml".
func (f Format) FileName() string {
	return BaseName + "." + string(f)
}

// Write encodes d in format f at the root of dir, overwriting any previous
// marker, and removes markers of the other formats. An empty format means
// FormatXML. It returns the path written.
func Write(dir string, d Descriptor, f Format) (string, error) {
	if f == "" {
		f = FormatXML
	}
	if err := f.Validate(); err != nil {
		return "", err
	}

	data, err := Encode(d, f)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, f.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write marker: %w", err)
	}

	for _, other := range formats {
		if other == f {
			continue
		}
		if err := os.Remove(filepath.Join(dir, other.FileName())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return path, fmt.Errorf("failed to remove stale marker: %w", err)
		}
	}

	return path, nil
}

// Delete removes every marker file at the root of dir. A missing marker is
// not an error. It returns the names of the files removed.
func Delete(dir string) ([]string, error) {
	var (
		removed []string
		errs    []error
	)
	for _, name := range FileNames() {
		err := os.Remove(filepath.Join(dir, name))
		switch {
		case err == nil:
			removed = append(removed, name)
		case errors.Is(err, os.ErrNotExist):
		default:
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", name, err))
		}
	}
	return removed, errors.Join(errs...)
}

// Read decodes the marker at the root of dir, whichever format it uses.
// It returns os.ErrNotExist (wrapped) when no marker is present.
func Read(dir string) (Descriptor, Format, error) {
	for _, f := range formats {
		data, err := os.ReadFile(filepath.Join(dir, f.FileName()))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Descriptor{}, "", fmt.Errorf("failed to read marker: %w", err)
		}
		d, err := Decode(data, f)
		return d, f, err
	}
	return Descriptor{}, "", fmt.Errorf("no marker in %s: %w", dir, os.ErrNotExist)
}

// Encode renders d in format f.
func Encode(d Descriptor, f Format) ([]byte, error) {
	var (
		buf bytes.Buffer
		err error
	)

	switch f {
	case FormatXML:
		buf.WriteString(xml.Header)
		enc := xml.NewEncoder(&buf)
		enc.Indent("", "    ")
		if err = enc.Encode(d); err == nil {
			buf.WriteByte('\n')
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(d); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(&buf).Encode(d)
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "    ")
		err = enc.Encode(d)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to encode %s marker: %w", f, err)
	}
	return buf.Bytes(), nil
}

// Decode parses a marker encoded in format f.
func Decode(data []byte, f Format) (Descriptor, error) {
	var (
		d   Descriptor
		err error
	)

	switch f {
	case FormatXML:
		err = xml.Unmarshal(data, &d)
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	case FormatTOML:
		err = toml.Unmarshal(data, &d)
	case FormatJSON:
		err = json.Unmarshal(data, &d)
	default:
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}

	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to decode %s marker: %w", f, err)
	}
	return d, nil
}
