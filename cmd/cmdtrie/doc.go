// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for cmdtrie.
//
// This package implements the Cobra command hierarchy for the cmdtrie CLI. The
// declared command tree loaded from declaration files is mounted under `run`;
// the remaining subcommands inspect, validate and serve that tree.
package cmd
