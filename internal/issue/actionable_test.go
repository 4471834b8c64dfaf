// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load declaration file"},
			expected: "failed to load declaration file",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load declaration file", Resource: "./cmdtrie.cue"},
			expected: "failed to load declaration file: ./cmdtrie.cue",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "dispatch command",
				Resource:  "get thingy",
				Cause:     errors.New("missing subcommand"),
			},
			expected: "failed to dispatch command: get thingy: missing subcommand",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	cause := errors.New("specific error")
	wrapped := WrapWithContext(fmt.Errorf("outer: %w", cause), "register set", "Thingies")

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if WrapWithContext(nil, "x", "y") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("select sets").
		WithSuggestions("Run 'cmdtrie list'", "Check the sets list in your config").
		Wrap(fmt.Errorf("set %q: %w", "Nope", errors.New("unknown set"))).
		Build()

	short := err.Format(false)
	for _, want := range []string{"failed to select sets", "• Run 'cmdtrie list'", "• Check the sets list"} {
		if !strings.Contains(short, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, short)
		}
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "1. set \"Nope\": unknown set") || !strings.Contains(verbose, "2. unknown set") {
		t.Errorf("Format(true) chain incomplete:\n%s", verbose)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want nil", err)
	}

	err := NewErrorContext().
		WithOperation("load declaration file").
		WithIssue(DeclarationParseErrorId).
		WithSuggestion("Run 'cmdtrie validate'").
		Build()
	if err.CatalogIssue() == nil || err.CatalogIssue().Id() != DeclarationParseErrorId {
		t.Errorf("CatalogIssue() = %v", err.CatalogIssue())
	}
	if len(err.Suggestions) != 1 {
		t.Errorf("Suggestions = %v", err.Suggestions)
	}

	if (&ActionableError{Operation: "x"}).CatalogIssue() != nil {
		t.Error("CatalogIssue() without id should be nil")
	}
}
