// SPDX-License-Identifier: MPL-2.0

// Package cmdfile defines declaration files: named sets of multi-word
// commands such as "get device bundles", each with its positional arguments,
// flags and an optional virtual-shell script.
//
// Files are written in CUE (validated against the embedded cmdfile_schema.cue)
// or in TOML with the same field names:
//
//	sets: [{
//		name: "Devices"
//		commands: [
//			{name: "get device", args: [{name: "id", required: true}]},
//			{name: "get device bundles", args: [{name: "id", required: true}]},
//		]
//	}]
package cmdfile
