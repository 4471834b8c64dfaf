// SPDX-License-Identifier: MPL-2.0

package trie

type (
	// Aggregator combines the value of one node with the aggregates already
	// computed for its children.
	//
	// value points into the node and is nil for structural nodes. path is the
	// full key of the node, "" for the root. children holds one aggregate per
	// immediate child in unspecified order, so implementations should not
	// depend on it.
	Aggregator[V, Agg any] interface {
		Visit(value *V, path string, children []Agg) Agg
	}

	// AggregatorFunc adapts an ordinary function to the Aggregator interface.
	AggregatorFunc[V, Agg any] func(value *V, path string, children []Agg) Agg
)

// Visit calls f(value, path, children).
func (f AggregatorFunc[V, Agg]) Visit(value *V, path string, children []Agg) Agg {
	return f(value, path, children)
}

// AggregateDepthFirst folds the trie bottom-up and returns one aggregate per
// immediate child of the root. Every node below the root is visited exactly
// once, after all of its children.
func AggregateDepthFirst[V, Agg any](t *Trie[V], agg Aggregator[V, Agg]) []Agg {
	return aggregateRec(&t.root, "", agg)
}

// AggregateDepthFirstRoot runs AggregateDepthFirst and then visits the root
// itself with the root value, the empty path and all top-level aggregates,
// yielding a single aggregate for the whole trie.
//
// On an empty trie this is agg.Visit(nil, "", nil).
func AggregateDepthFirstRoot[V, Agg any](t *Trie[V], agg Aggregator[V, Agg]) Agg {
	top := AggregateDepthFirst(t, agg)
	return agg.Visit(t.root.valuePtr(), "", top)
}

func aggregateRec[V, Agg any](n *node[V], path string, agg Aggregator[V, Agg]) []Agg {
	if len(n.children) == 0 {
		return nil
	}
	results := make([]Agg, 0, len(n.children))
	for seg, child := range n.children {
		full := childPath(path, seg)
		memo := aggregateRec(child, full, agg)
		results = append(results, agg.Visit(child.valuePtr(), full, memo))
	}
	return results
}

func (n *node[V]) valuePtr() *V {
	if !n.hasValue {
		return nil
	}
	return &n.value
}
