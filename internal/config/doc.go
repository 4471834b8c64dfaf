// SPDX-License-Identifier: MPL-2.0

// Package config handles cmdtrie configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/cmdtrie/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/cmdtrie/config.cue on macOS, %APPDATA%\cmdtrie\config.cue
// on Windows), falling back to ./config.cue. Every setting can be overridden with a
// CMDTRIE_ environment variable, where nesting dots become underscores
// (CMDTRIE_SERVER_PORT=2222).
//
// The file is validated against the embedded config_schema.cue before it is merged.
package config
