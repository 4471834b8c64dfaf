// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"io"
	"iter"
	"slices"

	"github.com/charmbracelet/log"

	"cmdtrie-cli/internal/registry"
	"cmdtrie-cli/pkg/cmdfile"
	"cmdtrie-cli/pkg/trie"
)

type (
	// Entry is the trie payload: one declared command and the set it came from.
	Entry struct {
		Set     *cmdfile.Set
		Command *cmdfile.Command
	}

	// Executor runs a resolved invocation.
	Executor interface {
		Execute(ctx context.Context, inv *Invocation, stdout, stderr io.Writer) error
	}

	// Dispatcher is immutable after New and safe for concurrent use.
	Dispatcher struct {
		trie   *trie.Trie[Entry]
		sets   []string
		logger *log.Logger
		root   route
	}

	// Option configures a Dispatcher.
	Option func(*Dispatcher)
)

// String renders the entry as "Set.Variant".
func (e Entry) String() string {
	return e.Set.Name + "." + e.Command.VariantName()
}

// WithLogger sets the logger used for debug output while building.
func WithLogger(logger *log.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New mounts the named sets of reg into one command trie. With no names, every
// registered set is mounted in registration order.
//
// A name missing from reg yields an *UnknownSetError and a command path
// declared twice yields a *DuplicateCommandError.
func New(reg *registry.Registry, setNames []string, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{trie: trie.New[Entry]()}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}

	if len(setNames) == 0 {
		setNames = reg.Names()
	}

	for _, name := range setNames {
		set, ok := reg.Lookup(name)
		if !ok {
			return nil, &UnknownSetError{Name: name}
		}
		if err := d.mount(set); err != nil {
			return nil, err
		}
		d.sets = append(d.sets, name)
	}

	d.root = trie.AggregateDepthFirstRoot(d.trie, trie.AggregatorFunc[Entry, route](resolveVisit))
	d.logger.Debug("dispatcher ready", "sets", d.sets, "commands", d.trie.Len())
	return d, nil
}

func (d *Dispatcher) mount(set *cmdfile.Set) error {
	for i := range set.Commands {
		cmd := &set.Commands[i]
		prev, replaced := d.trie.Insert(cmd.Name, Entry{Set: set, Command: cmd})
		if replaced {
			return &DuplicateCommandError{Path: cmd.Name, Set: set.Name, Existing: prev.Set.Name}
		}
		d.logger.Debug("mounted command", "set", set.Name, "command", cmd.Name)
	}
	return nil
}

// Check mounts the named sets like New but does not stop at the first
// problem: it returns one *UnknownSetError per missing set and one
// *DuplicateCommandError per colliding command path.
func Check(reg *registry.Registry, setNames []string) []error {
	if len(setNames) == 0 {
		setNames = reg.Names()
	}

	var errs []error
	t := trie.New[Entry]()
	for _, name := range setNames {
		set, ok := reg.Lookup(name)
		if !ok {
			errs = append(errs, &UnknownSetError{Name: name})
			continue
		}
		for i := range set.Commands {
			cmd := &set.Commands[i]
			if prev, found := t.Lookup(cmd.Name); found {
				errs = append(errs, &DuplicateCommandError{Path: cmd.Name, Set: set.Name, Existing: prev.Set.Name})
				continue
			}
			t.Insert(cmd.Name, Entry{Set: set, Command: cmd})
		}
	}
	return errs
}

// Lookup returns the entry declared under the full command path.
// Paths that only group other commands report false.
func (d *Dispatcher) Lookup(path string) (Entry, bool) {
	return d.trie.Lookup(path)
}

// HasSubcommand reports whether name is a top-level command word.
func (d *Dispatcher) HasSubcommand(name string) bool {
	keys, _ := d.trie.ChildKeys("")
	for key := range keys {
		if key == name {
			return true
		}
	}
	return false
}

// Subcommands returns the command words that may follow path, sorted.
// It reports false when path is not a node of the trie.
func (d *Dispatcher) Subcommands(path string) ([]string, bool) {
	keys, ok := d.trie.ChildKeys(path)
	if !ok {
		return nil, false
	}
	return slices.Sorted(keys), true
}

// Entries yields every declared command path with its entry, parents first
// and siblings sorted.
func (d *Dispatcher) Entries() iter.Seq2[string, Entry] {
	return d.trie.All()
}

// Sets returns the mounted set names in mount order.
func (d *Dispatcher) Sets() []string {
	return slices.Clone(d.sets)
}

// Len returns the number of declared commands.
func (d *Dispatcher) Len() int {
	return d.trie.Len()
}

// Fprint writes the command tree diagram to w.
func (d *Dispatcher) Fprint(w io.Writer) error {
	return d.trie.Fprint(w)
}
