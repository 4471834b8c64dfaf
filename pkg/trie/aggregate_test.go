// SPDX-License-Identifier: MPL-2.0

package trie

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"testing"
)

// visit is one recorded Aggregator call.
type visit struct {
	path     string
	hasValue bool
	children int
}

func TestAggregateDepthFirstRoot_Empty(t *testing.T) {
	t.Parallel()

	tr := New[int]()
	calls := 0
	got := AggregateDepthFirstRoot(tr, AggregatorFunc[int, string](func(v *int, path string, children []string) string {
		calls++
		if v != nil {
			t.Errorf("root value = %v, want nil", *v)
		}
		if path != "" {
			t.Errorf("root path = %q, want empty", path)
		}
		if len(children) != 0 {
			t.Errorf("root children = %q, want none", children)
		}
		return "root"
	}))

	if got != "root" || calls != 1 {
		t.Errorf("got %q after %d calls, want root after 1", got, calls)
	}
	if top := AggregateDepthFirst(tr, AggregatorFunc[int, string](func(*int, string, []string) string {
		t.Error("no node should be visited in an empty trie")
		return ""
	})); len(top) != 0 {
		t.Errorf("AggregateDepthFirst on empty trie = %q", top)
	}
}

func TestAggregateDepthFirst_PostOrder(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	tr.Insert("auth", "auth")
	tr.Insert("get device bundles", "get device bundles")
	tr.Insert("get device", "get device")
	tr.Insert("get thing", "get thing")

	var visits []visit
	seen := make(map[string]bool)
	top := AggregateDepthFirst(tr, AggregatorFunc[string, string](func(v *string, path string, children []string) string {
		// every child must have been visited before its parent
		for _, child := range children {
			if !seen[child] {
				t.Errorf("parent %q visited before child %q", path, child)
			}
		}
		if v != nil && *v != path {
			t.Errorf("value %q passed with path %q", *v, path)
		}
		seen[path] = true
		visits = append(visits, visit{path: path, hasValue: v != nil, children: len(children)})
		return path
	}))

	sort.Strings(top)
	if !slices.Equal(top, []string{"auth", "get"}) {
		t.Errorf("top-level aggregates = %q, want [auth get]", top)
	}

	want := map[string]visit{
		"auth":               {"auth", true, 0},
		"get":                {"get", false, 2},
		"get device":         {"get device", true, 1},
		"get device bundles": {"get device bundles", true, 0},
		"get thing":          {"get thing", true, 0},
	}
	if len(visits) != len(want) {
		t.Fatalf("visited %d nodes, want %d: %v", len(visits), len(want), visits)
	}
	for _, v := range visits {
		if want[v.path] != v {
			t.Errorf("visit %+v, want %+v", v, want[v.path])
		}
	}
}

func TestAggregateDepthFirstRoot_BuildsWhole(t *testing.T) {
	t.Parallel()

	tr := New[int]()
	tr.Insert("", 100)
	tr.Insert("a", 1)
	tr.Insert("a b", 2)
	tr.Insert("c d", 4)

	// sum of all values below and at each node, independent of sibling order
	sum := AggregateDepthFirstRoot(tr, AggregatorFunc[int, int](func(v *int, _ string, children []int) int {
		total := 0
		if v != nil {
			total = *v
		}
		for _, c := range children {
			total += c
		}
		return total
	}))
	if sum != 107 {
		t.Errorf("sum = %d, want 107", sum)
	}
}

func TestAggregateDepthFirstRoot_Nested(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	tr.Insert("get device bundles", "x")
	tr.Insert("get device", "y")
	tr.Insert("auth", "z")

	// name-keyed rendering so sibling order does not matter
	render := AggregatorFunc[string, string](func(v *string, path string, children []string) string {
		sort.Strings(children)
		name, _, _ := SplitLast(path)
		if v != nil {
			name += "=" + *v
		}
		if len(children) == 0 {
			return name
		}
		return fmt.Sprintf("%s{%s}", name, strings.Join(children, ","))
	})

	got := AggregateDepthFirstRoot(tr, render)
	want := "{auth=z,get{device=y{bundles=x}}}"
	if got != want {
		t.Errorf("nested = %q, want %q", got, want)
	}
}

func TestAggregate_MutatesValues(t *testing.T) {
	t.Parallel()

	tr := New[int]()
	tr.Insert("a", 1)
	tr.Insert("a b", 2)

	AggregateDepthFirst(tr, AggregatorFunc[int, struct{}](func(v *int, _ string, _ []struct{}) struct{} {
		if v != nil {
			*v *= 10
		}
		return struct{}{}
	}))

	if val, _ := tr.Lookup("a"); val != 10 {
		t.Errorf("Lookup(a) = %d, want 10", val)
	}
	if val, _ := tr.Lookup("a b"); val != 20 {
		t.Errorf("Lookup(a b) = %d, want 20", val)
	}
}

// countingAggregator implements Aggregator directly instead of via AggregatorFunc.
type countingAggregator struct {
	visits int
}

func (c *countingAggregator) Visit(_ *int, _ string, children []int) int {
	c.visits++
	n := 1
	for _, child := range children {
		n += child
	}
	return n
}

func TestAggregate_VisitsEveryNodeOnce(t *testing.T) {
	t.Parallel()

	tr := New[int]()
	for _, key := range []string{"a b c", "a b d", "a e", "f"} {
		tr.Insert(key, 0)
	}

	agg := &countingAggregator{}
	nodes := AggregateDepthFirstRoot[int, int](tr, agg)

	// a, a b, a b c, a b d, a e, f, plus the root
	if nodes != 7 || agg.visits != 7 {
		t.Errorf("nodes = %d, visits = %d, want 7 and 7", nodes, agg.visits)
	}
}
