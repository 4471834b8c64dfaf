// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name:  string & !=""
	count: int & >=0 | *1
	tags?: [...string]
}
`

type testDoc struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	doc, err := Decode[testDoc](testSchema, []byte(`name: "x", tags: ["a"]`), "#Doc", WithFilename("doc.cue"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if doc.Name != "x" || doc.Count != 1 || len(doc.Tags) != 1 {
		t.Errorf("Decode() = %+v", doc)
	}
}

func TestDecode_ValidationError(t *testing.T) {
	t.Parallel()

	_, err := Decode[testDoc](testSchema, []byte(`name: "x", count: -1`), "#Doc", WithFilename("doc.cue"))
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.HasPrefix(err.Error(), "doc.cue: ") {
		t.Errorf("error %q should start with the file name", err)
	}
	if !strings.Contains(err.Error(), "count") {
		t.Errorf("error %q should name the field", err)
	}
}

func TestDecode_SyntaxError(t *testing.T) {
	t.Parallel()

	if _, err := Decode[testDoc](testSchema, []byte(`name: {`), "#Doc"); err == nil {
		t.Fatal("expected a syntax error")
	}
}

func TestDecode_FileTooLarge(t *testing.T) {
	t.Parallel()

	_, err := Decode[testDoc](testSchema, []byte(`name: "abcdef"`), "#Doc", WithMaxFileSize(4))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("Decode() error = %v, want size error", err)
	}
}

func TestDecode_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := Decode[testDoc](testSchema, []byte(`name: "x"`), "#Missing")
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("Decode() error = %v, want internal error", err)
	}
}

func TestJSONPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"sets"}, "sets"},
		{[]string{"sets", "0", "commands", "2", "name"}, "sets[0].commands[2].name"},
		{[]string{"ui", "verbose"}, "ui.verbose"},
	}
	for _, tt := range tests {
		if got := JSONPath(tt.path); got != tt.want {
			t.Errorf("JSONPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFormatError_NonCUE(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	err := FormatError(base, "f.cue")
	if !errors.Is(err, base) {
		t.Errorf("FormatError should wrap plain errors, got %v", err)
	}
	if FormatError(nil, "f.cue") != nil {
		t.Error("FormatError(nil) should be nil")
	}
}
