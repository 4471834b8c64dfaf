// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownSet is returned when a selected set is not in the registry.
	ErrUnknownSet = errors.New("unknown set")
	// ErrDuplicateCommand is returned when two entries share a command path.
	ErrDuplicateCommand = errors.New("duplicate command")
	// ErrMissingSubcommand is returned when the tokens stop at a node that
	// only groups other commands.
	ErrMissingSubcommand = errors.New("missing subcommand")
	// ErrInvalidSubcommand is returned when a token names no child of a node
	// that only groups other commands.
	ErrInvalidSubcommand = errors.New("invalid subcommand")
	// ErrInvalidArguments is returned when positional arguments or flags do
	// not match the declaration.
	ErrInvalidArguments = errors.New("invalid arguments")
)

type (
	// UnknownSetError names the set that could not be found.
	UnknownSetError struct {
		Name string
	}

	// DuplicateCommandError names the command path declared twice and the
	// sets that declared it.
	DuplicateCommandError struct {
		Path     string
		Set      string
		Existing string
	}

	// ResolveError reports where resolution stopped. Err is
	// ErrMissingSubcommand or ErrInvalidSubcommand.
	ResolveError struct {
		// Path of the node where resolution stopped, "" for the root.
		Path string
		// Token that did not match any child (empty for ErrMissingSubcommand).
		Token string
		// Available lists the child segments of Path in sorted order.
		Available []string
		Err       error
	}
)

func (e *UnknownSetError) Error() string {
	return fmt.Sprintf("unknown set %q, are you sure it has been defined?", e.Name)
}

func (e *UnknownSetError) Unwrap() error { return ErrUnknownSet }

func (e *DuplicateCommandError) Error() string {
	if e.Set == e.Existing {
		return fmt.Sprintf("command %q is declared twice in set %q; all command variants must be unique", e.Path, e.Set)
	}
	return fmt.Sprintf("command %q of set %q is already declared by set %q; all command variants must be unique", e.Path, e.Set, e.Existing)
}

func (e *DuplicateCommandError) Unwrap() error { return ErrDuplicateCommand }

func (e *ResolveError) Error() string {
	var msg strings.Builder
	switch {
	case errors.Is(e.Err, ErrInvalidSubcommand):
		fmt.Fprintf(&msg, "unrecognized subcommand %q", e.Token)
	case e.Path == "":
		msg.WriteString("a subcommand is required")
	default:
		fmt.Fprintf(&msg, "%q requires a subcommand", e.Path)
	}
	if e.Path != "" && errors.Is(e.Err, ErrInvalidSubcommand) {
		fmt.Fprintf(&msg, " for %q", e.Path)
	}
	if len(e.Available) > 0 {
		msg.WriteString(" (available: ")
		msg.WriteString(strings.Join(e.Available, ", "))
		msg.WriteString(")")
	}
	return msg.String()
}

func (e *ResolveError) Unwrap() error { return e.Err }
