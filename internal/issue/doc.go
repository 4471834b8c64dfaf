// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for the cmdtrie CLI.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions. Issue is a catalog entry with Markdown guidance rendered by
// glamour when a command fails.
package issue
