// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmdtrie-cli/pkg/cmdfile"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Register(&cmdfile.Set{Name: "Thingies", Source: "a.cue"}))
	require.NoError(t, r.Register(&cmdfile.Set{Name: "Other", Source: "b.cue"}))

	set, ok := r.Lookup("Thingies")
	require.True(t, ok)
	assert.Equal(t, "a.cue", set.Source)

	_, ok = r.Lookup("Missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"Thingies", "Other"}, r.Names())
	assert.Equal(t, 2, r.Len())
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Register(&cmdfile.Set{Name: "Thingies", Source: "a.cue"}))

	err := r.Register(&cmdfile.Set{Name: "Thingies", Source: "b.toml"})
	require.ErrorIs(t, err, ErrDuplicateSet)

	var dup *DuplicateSetError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a.cue", dup.Existing)
	assert.Equal(t, "b.toml", dup.Source)

	set, _ := r.Lookup("Thingies")
	assert.Equal(t, "a.cue", set.Source, "first registration wins")
}

func TestRegisterFile(t *testing.T) {
	t.Parallel()

	r := New()
	f := &cmdfile.File{Sets: []cmdfile.Set{{Name: "A"}, {Name: "B"}, {Name: "A"}}}

	require.ErrorIs(t, r.RegisterFile(f), ErrDuplicateSet)
	assert.Equal(t, []string{"A", "B"}, r.Names())
}

func TestSeal(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.Register(&cmdfile.Set{Name: "A"}))
	r.Seal()
	assert.True(t, r.Sealed())
	assert.ErrorIs(t, r.Register(&cmdfile.Set{Name: "B"}), ErrSealed)

	_, ok := r.Lookup("A")
	assert.True(t, ok, "lookups keep working after Seal")
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := New()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Register(&cmdfile.Set{Name: fmt.Sprintf("set-%02d", i)})
		}()
		go func() {
			defer wg.Done()
			_ = r.Names()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, r.Len())
}
