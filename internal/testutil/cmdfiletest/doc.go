// SPDX-License-Identifier: MPL-2.0

// Package cmdfiletest provides test helpers for building cmdfile sets and commands.
//
// # Usage
//
//	import "cmdtrie-cli/internal/testutil/cmdfiletest"
//
//	set := cmdfiletest.NewTestSet("Demo",
//	    cmdfiletest.NewTestCommand("hello", cmdfiletest.WithScript("echo hello")),
//	)
package cmdfiletest
