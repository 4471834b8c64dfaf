// SPDX-License-Identifier: MPL-2.0

// Package trie provides a generic trie keyed by space-delimited path segments
// such as "get device bundles", together with a post-order aggregation
// traversal that folds every subtree into a caller-defined value.
//
// Nodes are created lazily by Insert. Intermediate nodes created on the way to a
// deeper key carry no value and only route to their descendants; Lookup,
// Children and ChildValues treat them as absent while ChildKeys still lists
// them:
//
//	t := trie.New[string]()
//	t.Insert("get device", "get device")
//	t.Insert("get device bundles", "get device bundles")
//
//	t.Lookup("get")         // "", false (structural node)
//	t.ChildKeys("")         // "get"
//	t.Lookup("get device")  // "get device", true
//
// AggregateDepthFirst and AggregateDepthFirstRoot visit children before their
// parent, so each visit receives the already-built aggregates of its subtree.
// Sibling order follows Go map iteration and is therefore unspecified.
//
// A Trie is not safe for concurrent mutation. Callers sharing one across
// goroutines must impose their own read/write locking.
package trie
