// SPDX-License-Identifier: MPL-2.0

// Package dispatch merges declaration sets into one command trie and derives
// two things from it with post-order aggregation: a token resolver that maps
// command line words to an Invocation, and a cobra command tree.
//
// Both are built bottom-up. Every node receives the already-built routes or
// commands of its children and attaches them to its own, so the whole tree is
// assembled without the caller walking it.
package dispatch
