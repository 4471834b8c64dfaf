// SPDX-License-Identifier: MPL-2.0

package trie

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// String returns a hierarchical tree diagram of the trie,
// just a wrapper for [Trie.Fprint].
// If Fprint returns an error, String panics.
func (t *Trie[V]) String() string {
	w := new(strings.Builder)
	if err := t.Fprint(w); err != nil {
		panic(err)
	}
	return w.String()
}

// Fprint writes a hierarchical tree diagram of the trie to w.
// Siblings are sorted by segment, structural nodes are printed without a value.
//
//	▼
//	├─ auth (auth)
//	└─ get
//	   └─ device (get device)
//	      └─ bundles (get device bundles)
func (t *Trie[V]) Fprint(w io.Writer) error {
	if t == nil {
		return nil
	}

	root := "▼"
	if t.root.hasValue {
		root = fmt.Sprintf("▼ (%v)", t.root.value)
	}
	if _, err := fmt.Fprintln(w, root); err != nil {
		return err
	}

	return t.root.fprintRec(w, "")
}

// fprintRec, rec-descent with sorted children.
func (n *node[V]) fprintRec(w io.Writer, pad string) error {
	segs := slices.Sorted(maps.Keys(n.children))

	// symbols used in tree
	glyphe := "├─ "
	spacer := "│  "

	for i, seg := range segs {
		// ... treat last kid special
		if i == len(segs)-1 {
			glyphe = "└─ "
			spacer = "   "
		}

		child := n.children[seg]
		line := pad + glyphe + seg
		if child.hasValue {
			line += fmt.Sprintf(" (%v)", child.value)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		if err := child.fprintRec(w, pad+spacer); err != nil {
			return err
		}
	}

	return nil
}
