// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"strings"
)

// settingKeys are the dotted keys every source may set, in schema order.
var settingKeys = []string{
	"archiver.backend",
	"archiver.compression",
	"editor.command",
	"marker.format",
	"ui.color_scheme",
	"ui.verbose",
}

type (
	// LoadOptions selects where configuration is read from.
	LoadOptions struct {
		// ConfigFilePath names a config file that must exist.
		ConfigFilePath string
		// ConfigDirPath replaces the platform config directory.
		ConfigDirPath string
	}

	// Loaded is an effective configuration plus where its values came from.
	Loaded struct {
		*Config

		// Path is the config file that was read, or "" when only defaults
		// and environment overrides apply.
		Path string
		// EnvOverrides lists the XAPKTOOL_ variables that hold a value, such as
		// XAPKTOOL_MARKER_FORMAT.
		EnvOverrides []string
	}

	// Provider loads configuration.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Loaded, error)
	}

	fileProvider struct {
		getenv func(string) string
	}
)

// NewProvider returns a Provider backed by the config file and the process
// environment.
func NewProvider() Provider {
	return &fileProvider{getenv: os.Getenv}
}

func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Loaded, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Loaded{Config: cfg, Path: path, EnvOverrides: envOverrides(p.getenv)}, nil
}

// EnvName returns the environment variable that overrides key, e.g.
// "marker.format" becomes XAPKTOOL_MARKER_FORMAT.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// envOverrides reports the override variables that hold a value. Empty
// variables are ignored, as they are when loading.
func envOverrides(getenv func(string) string) []string {
	var names []string
	for _, key := range settingKeys {
		name := EnvName(key)
		if getenv(name) != "" {
			names = append(names, name)
		}
	}
	return names
}
