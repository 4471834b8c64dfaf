// SPDX-License-Identifier: MPL-2.0

// Package sshserver serves the declared command tree over SSH using the Wish library.
//
// Each session's command words are resolved by a dispatch.Dispatcher and run by a
// dispatch.Executor with the session as stdout and stderr. Only password
// authentication with a token issued by the operator (GenerateToken) is accepted;
// public keys are always rejected.
package sshserver
