// SPDX-License-Identifier: MPL-2.0

package trie_test

import (
	"fmt"
	"slices"
	"strings"

	"cmdtrie-cli/pkg/trie"
)

func ExampleTrie_Lookup() {
	t := trie.New[string]()
	t.Insert("auth", "auth")
	t.Insert("get device bundles", "get device bundles")
	t.Insert("get device", "get device")

	keys, _ := t.ChildKeys("")
	fmt.Println(slices.Sorted(keys))

	val, ok := t.Lookup("get device")
	fmt.Println(val, ok)

	_, ok = t.Lookup("get")
	fmt.Println(ok)

	// Output:
	// [auth get]
	// get device true
	// false
}

func ExampleAggregateDepthFirstRoot() {
	t := trie.New[int]()
	t.Insert("get device", 1)
	t.Insert("get device bundles", 2)

	// describe every node with its subtree, bottom-up
	describe := trie.AggregatorFunc[int, string](func(v *int, path string, children []string) string {
		slices.Sort(children)
		name, _, ok := trie.SplitLast(path)
		if !ok {
			name = "root"
		}
		if v != nil {
			name = fmt.Sprintf("%s:%d", name, *v)
		}
		if len(children) > 0 {
			name += "(" + strings.Join(children, " ") + ")"
		}
		return name
	})

	fmt.Println(trie.AggregateDepthFirstRoot(t, describe))

	// Output:
	// root(get(device:1(bundles:2)))
}

func ExampleTrie_Fprint() {
	t := trie.New[int]()
	t.Insert("a", 1)
	t.Insert("a b", 2)
	t.Insert("c d", 3)

	fmt.Print(t)

	// Output:
	// ▼
	// ├─ a (1)
	// │  └─ b (2)
	// └─ c
	//    └─ d (3)
}
