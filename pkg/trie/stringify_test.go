// SPDX-License-Identifier: MPL-2.0

package trie

import (
	"errors"
	"testing"
)

func TestString(t *testing.T) {
	t.Parallel()

	tr := New[string]()
	tr.Insert("get device bundles", "gdb")
	tr.Insert("auth", "a")
	tr.Insert("get device", "gd")
	tr.Insert("get thing", "gt")

	want := `▼
├─ auth (a)
└─ get
   ├─ device (gd)
   │  └─ bundles (gdb)
   └─ thing (gt)
`
	if got := tr.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestString_RootValue(t *testing.T) {
	t.Parallel()

	tr := New[int]()
	tr.Insert("", 7)

	if got, want := tr.String(), "▼ (7)\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestFprint_WriteError(t *testing.T) {
	t.Parallel()

	tr := New[int]()
	tr.Insert("a", 1)
	if err := tr.Fprint(failWriter{}); err == nil {
		t.Error("Fprint should return the writer error")
	}
}
