// SPDX-License-Identifier: MPL-2.0

// Package registry holds every declaration set loaded by the process, keyed
// by set name.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"cmdtrie-cli/pkg/cmdfile"
)

var (
	// ErrDuplicateSet is returned when a second set registers under a taken name.
	ErrDuplicateSet = errors.New("duplicate set name")
	// ErrSealed is returned by Register after Seal.
	ErrSealed = errors.New("registry is sealed")
)

// DuplicateSetError reports the two files declaring the same set name.
type DuplicateSetError struct {
	Name     string
	Existing string
	Source   string
}

func (e *DuplicateSetError) Error() string {
	return fmt.Sprintf("set %q declared in %s is already declared in %s", e.Name, e.Source, e.Existing)
}

func (e *DuplicateSetError) Unwrap() error { return ErrDuplicateSet }

// Registry is safe for concurrent use. Writers register during startup and
// then Seal; readers look sets up for the rest of the process lifetime.
type Registry struct {
	mu     sync.RWMutex
	sets   map[string]*cmdfile.Set
	order  []string
	sealed bool
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{sets: make(map[string]*cmdfile.Set)}
}

// Register adds a set under its name.
func (r *Registry) Register(set *cmdfile.Set) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("register set %q: %w", set.Name, ErrSealed)
	}
	if existing, ok := r.sets[set.Name]; ok {
		return &DuplicateSetError{Name: set.Name, Existing: existing.Source, Source: set.Source}
	}
	r.sets[set.Name] = set
	r.order = append(r.order, set.Name)
	return nil
}

// RegisterFile registers every set of f. Sets before the failing one stay
// registered.
func (r *Registry) RegisterFile(f *cmdfile.File) error {
	for i := range f.Sets {
		if err := r.Register(&f.Sets[i]); err != nil {
			return err
		}
	}
	return nil
}

// Seal stops further registrations.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Lookup returns the set registered under name.
func (r *Registry) Lookup(name string) (*cmdfile.Set, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[name]
	return set, ok
}

// Names returns the registered set names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of registered sets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sets)
}
