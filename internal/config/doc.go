// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/xapktool/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/xapktool/config.cue on macOS,
// %APPDATA%\xapktool\config.cue on Windows), or from a file passed with --config.
// Every key can be overridden through an XAPKTOOL_-prefixed environment variable with
// dots replaced by underscores (e.g. XAPKTOOL_EDITOR_COMMAND).
//
// Files are validated against the embedded #Config schema (config_schema.cue);
// values are validated again after environment overrides are applied.
package config
