// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Decode compiles the schema, compiles the user document, unifies it with the
// schema definition named by the caller (for example "#File"), validates the
// result and decodes it into a Go value. Validation failures are reported with
// JSON-path prefixes such as "sets[0].commands[1].name".
package cueutil
