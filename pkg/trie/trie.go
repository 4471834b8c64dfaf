// SPDX-License-Identifier: MPL-2.0

package trie

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

type (
	// Trie maps space-delimited keys to values of type V.
	// The zero value is an empty trie ready to use.
	Trie[V any] struct {
		root node[V]
	}

	// node owns its children exclusively; there are no back references.
	node[V any] struct {
		children map[string]*node[V]
		value    V
		hasValue bool
	}
)

// New returns an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{}
}

// Insert stores val under key, creating intermediate nodes as needed.
// If key already held a value, that value is returned with replaced set to true.
//
// Segments must not contain the delimiter; this is not validated.
func (t *Trie[V]) Insert(key string, val V) (prev V, replaced bool) {
	n := &t.root
	for seg := range Segments(key) {
		child, ok := n.children[seg]
		if !ok {
			if n.children == nil {
				n.children = make(map[string]*node[V])
			}
			child = &node[V]{}
			n.children[seg] = child
		}
		n = child
	}

	prev, replaced = n.value, n.hasValue
	n.value, n.hasValue = val, true
	return prev, replaced
}

// Lookup returns the value stored under key.
// A missing path and a path that exists only structurally both report false.
func (t *Trie[V]) Lookup(key string) (val V, ok bool) {
	n := t.find(key)
	if n == nil || !n.hasValue {
		return val, false
	}
	return n.value, true
}

// Children returns the immediate children of prefix that carry a value,
// as (segment, value) pairs in unspecified order.
// It reports false if prefix does not exist.
func (t *Trie[V]) Children(prefix string) (iter.Seq2[string, V], bool) {
	n := t.find(prefix)
	if n == nil {
		return nil, false
	}
	return func(yield func(string, V) bool) {
		for seg, child := range n.children {
			if !child.hasValue {
				continue
			}
			if !yield(seg, child.value) {
				return
			}
		}
	}, true
}

// ChildValues is like Children but yields only the values.
func (t *Trie[V]) ChildValues(prefix string) (iter.Seq[V], bool) {
	children, ok := t.Children(prefix)
	if !ok {
		return nil, false
	}
	return func(yield func(V) bool) {
		for _, v := range children {
			if !yield(v) {
				return
			}
		}
	}, true
}

// ChildKeys returns every immediate child segment of prefix in unspecified
// order, including structural children that carry no value.
// It reports false if prefix does not exist.
func (t *Trie[V]) ChildKeys(prefix string) (iter.Seq[string], bool) {
	n := t.find(prefix)
	if n == nil {
		return nil, false
	}
	return maps.Keys(n.children), true
}

// RootValue returns the value stored under the empty key.
func (t *Trie[V]) RootValue() (val V, ok bool) {
	return t.root.value, t.root.hasValue
}

// Delete clears the value stored under key and removes every node on the
// path that is left without a value and without children. The root is never
// removed.
//
// Delete panics if the path to key does not exist. Callers that are not sure
// should check with Lookup first.
func (t *Trie[V]) Delete(key string) {
	// stack of the traversed path in order to
	// purge dangling nodes after deletion
	type step struct {
		parent *node[V]
		seg    string
	}
	path := make([]step, 0, SegmentCount(key))

	n := &t.root
	for seg := range Segments(key) {
		child, ok := n.children[seg]
		if !ok {
			panic(fmt.Sprintf("trie: delete of missing key %q", key))
		}
		path = append(path, step{parent: n, seg: seg})
		n = child
	}

	var zero V
	n.value, n.hasValue = zero, false

	// go up while the current node is dead weight
	for i := len(path) - 1; i >= 0; i-- {
		if n.hasValue || len(n.children) > 0 {
			break
		}
		parent := path[i].parent
		delete(parent.children, path[i].seg)
		n = parent
	}
}

// Len returns the number of keys holding a value, including the root.
func (t *Trie[V]) Len() int {
	return t.root.countRec()
}

// All returns every key holding a value together with that value, parents
// before children and siblings in ascending segment order.
func (t *Trie[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		t.root.allRec("", yield)
	}
}

// Extend inserts every pair of seq, later pairs overwriting earlier ones.
func (t *Trie[V]) Extend(seq iter.Seq2[string, V]) {
	for key, val := range seq {
		t.Insert(key, val)
	}
}

// Clone returns a copy of the trie structure.
// Values are copied by assignment.
func (t *Trie[V]) Clone() *Trie[V] {
	if t == nil {
		return nil
	}
	return &Trie[V]{root: *t.root.cloneRec()}
}

// find walks key from the root and returns the node it names, or nil.
func (t *Trie[V]) find(key string) *node[V] {
	n := &t.root
	for seg := range Segments(key) {
		child, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

func (n *node[V]) countRec() int {
	count := 0
	if n.hasValue {
		count++
	}
	for _, child := range n.children {
		count += child.countRec()
	}
	return count
}

// allRec, rec-descent in sorted order, returns false when yield stopped.
func (n *node[V]) allRec(path string, yield func(string, V) bool) bool {
	if n.hasValue && !yield(path, n.value) {
		return false
	}
	for _, seg := range slices.Sorted(maps.Keys(n.children)) {
		if !n.children[seg].allRec(childPath(path, seg), yield) {
			return false
		}
	}
	return true
}

func (n *node[V]) cloneRec() *node[V] {
	c := &node[V]{value: n.value, hasValue: n.hasValue}
	if len(n.children) == 0 {
		return c
	}
	c.children = make(map[string]*node[V], len(n.children))
	for seg, child := range n.children {
		c.children[seg] = child.cloneRec()
	}
	return c
}
