// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/pflag"

	"cmdtrie-cli/pkg/trie"
)

type (
	resolveFunc func(tokens []string) (*Invocation, error)

	// route is the resolve aggregate of one node.
	route struct {
		segment string
		resolve resolveFunc
	}
)

// Resolve maps command line tokens to an invocation.
//
// At every node the next token descends into the child it names. Otherwise a
// node with a command parses the remaining tokens as its flags and arguments,
// and a node without one fails with a *ResolveError.
//
// A "--help" token among a command's flags yields an error wrapping
// pflag.ErrHelp.
func (d *Dispatcher) Resolve(tokens []string) (*Invocation, error) {
	return d.root.resolve(tokens)
}

func resolveVisit(value *Entry, path string, children []route) route {
	segment, _, _ := trie.SplitLast(path)

	next := make(map[string]resolveFunc, len(children))
	for _, child := range children {
		next[child.segment] = child.resolve
	}

	var entry *Entry
	if value != nil {
		e := *value
		entry = &e
	}

	return route{
		segment: segment,
		resolve: func(tokens []string) (*Invocation, error) {
			if len(tokens) > 0 {
				if child, ok := next[tokens[0]]; ok {
					return child(tokens[1:])
				}
			}
			if entry != nil {
				return parseTokens(*entry, path, tokens)
			}

			err := &ResolveError{Path: path, Available: slices.Sorted(maps.Keys(next)), Err: ErrMissingSubcommand}
			if len(tokens) > 0 {
				err.Token = tokens[0]
				err.Err = ErrInvalidSubcommand
			}
			return nil, err
		},
	}
}

func parseTokens(entry Entry, path string, tokens []string) (*Invocation, error) {
	fs := pflag.NewFlagSet(path, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	defineFlags(fs, entry.Command)

	if err := fs.Parse(tokens); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrInvalidArguments, err)
	}
	return bind(entry, path, fs, fs.Args())
}
