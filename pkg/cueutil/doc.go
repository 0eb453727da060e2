// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Configuration files are validated against an embedded schema definition
// before being handed to Viper. The package performs that flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate (non-concrete, since every field is optional) and decode
//
// Errors carry the file path and a JSON-path style field location, e.g.
// "config.cue: archiver.backend: conflicting values".
package cueutil
