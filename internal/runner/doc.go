// SPDX-License-Identifier: MPL-2.0

// Package runner executes resolved invocations in the mvdan/sh virtual shell.
//
// Scripts see their positional arguments as $1..$n and every declared
// argument and flag as an environment variable:
//
//	CMDTRIE_COMMAND      full command path ("get thingy attributes")
//	CMDTRIE_SET          declaring set
//	CMDTRIE_ARG_<NAME>   argument value, variadic values joined by spaces
//	CMDTRIE_FLAG_<NAME>  flag value in string form
//
// Names are upper-cased with '-' replaced by '_'.
package runner
