// SPDX-License-Identifier: MPL-2.0

package cmdfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoSets is returned for a file without any set.
	ErrNoSets = errors.New("declaration file has no sets")
	// ErrInvalidSetName is returned for an empty set name.
	ErrInvalidSetName = errors.New("invalid set name")
	// ErrInvalidCommandName is the sentinel wrapped by InvalidCommandNameError.
	ErrInvalidCommandName = errors.New("invalid command name")
	// ErrDuplicateCommandName is returned when a set declares the same name twice.
	ErrDuplicateCommandName = errors.New("duplicate command name")
	// ErrInvalidArgument is returned for inconsistent positional arguments.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidFlag is returned for inconsistent flags.
	ErrInvalidFlag = errors.New("invalid flag")
)

// InvalidCommandNameError reports a command name that cannot be split into
// single-space separated, non-empty ASCII segments.
type InvalidCommandNameError struct {
	Set    string
	Name   string
	Reason string
}

func (e *InvalidCommandNameError) Error() string {
	return fmt.Sprintf("set %q: command %q: %s", e.Set, e.Name, e.Reason)
}

// Unwrap returns ErrInvalidCommandName.
func (e *InvalidCommandNameError) Unwrap() error { return ErrInvalidCommandName }

// Validate checks the invariants the CUE schema cannot express and that the
// TOML decoder does not check at all.
func (f *File) Validate() error {
	if len(f.Sets) == 0 {
		return ErrNoSets
	}
	var errs []error
	for i := range f.Sets {
		if err := f.Sets[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks the set name and every command of the set.
func (s *Set) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidSetName
	}

	var errs []error
	seen := make(map[string]bool, len(s.Commands))
	for i := range s.Commands {
		cmd := &s.Commands[i]
		if err := validateCommandName(s.Name, cmd.Name); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[cmd.Name] {
			errs = append(errs, fmt.Errorf("set %q: %w: %q", s.Name, ErrDuplicateCommandName, cmd.Name))
			continue
		}
		seen[cmd.Name] = true

		if err := cmd.validateArgs(); err != nil {
			errs = append(errs, fmt.Errorf("set %q: command %q: %w", s.Name, cmd.Name, err))
		}
		if err := cmd.validateFlags(); err != nil {
			errs = append(errs, fmt.Errorf("set %q: command %q: %w", s.Name, cmd.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateCommandName(set, name string) error {
	if name == "" {
		return &InvalidCommandNameError{Set: set, Name: name, Reason: "name is empty"}
	}
	for _, seg := range strings.Split(name, " ") {
		if seg == "" {
			return &InvalidCommandNameError{Set: set, Name: name, Reason: "segments must be separated by exactly one space"}
		}
		for _, r := range seg {
			if r > 0x7f || r <= ' ' {
				return &InvalidCommandNameError{Set: set, Name: name, Reason: fmt.Sprintf("segment %q contains %q", seg, r)}
			}
		}
	}
	return nil
}

func (c *Command) validateArgs() error {
	seen := make(map[string]bool, len(c.Args))
	optional := false
	for i, arg := range c.Args {
		switch {
		case arg.Name == "":
			return fmt.Errorf("%w: args[%d] has no name", ErrInvalidArgument, i)
		case seen[arg.Name]:
			return fmt.Errorf("%w: duplicate argument %q", ErrInvalidArgument, arg.Name)
		case arg.Variadic && i != len(c.Args)-1:
			return fmt.Errorf("%w: variadic argument %q must be last", ErrInvalidArgument, arg.Name)
		case arg.Required && optional:
			return fmt.Errorf("%w: required argument %q follows an optional one", ErrInvalidArgument, arg.Name)
		case arg.Required && arg.Default != "":
			return fmt.Errorf("%w: required argument %q cannot have a default", ErrInvalidArgument, arg.Name)
		}
		seen[arg.Name] = true
		if !arg.Required {
			optional = true
		}
	}
	return nil
}

func (c *Command) validateFlags() error {
	names := make(map[string]bool, len(c.Flags))
	shorts := make(map[string]bool, len(c.Flags))
	for i, flag := range c.Flags {
		switch {
		case flag.Name == "":
			return fmt.Errorf("%w: flags[%d] has no name", ErrInvalidFlag, i)
		case names[flag.Name]:
			return fmt.Errorf("%w: duplicate flag %q", ErrInvalidFlag, flag.Name)
		case flag.Short != "" && shorts[flag.Short]:
			return fmt.Errorf("%w: duplicate short flag %q", ErrInvalidFlag, flag.Short)
		case len(flag.Short) > 1:
			return fmt.Errorf("%w: short flag %q must be one character", ErrInvalidFlag, flag.Short)
		case !flag.Type.IsValid():
			return fmt.Errorf("%w: flag %q has unknown type %q", ErrInvalidFlag, flag.Name, flag.Type)
		}
		if err := checkFlagDefault(&flag); err != nil {
			return err
		}
		if flag.Name == "help" || flag.Short == "h" {
			return fmt.Errorf("%w: flag %q collides with the built-in help flag", ErrInvalidFlag, flag.Name)
		}
		names[flag.Name] = true
		if flag.Short != "" {
			shorts[flag.Short] = true
		}
	}
	return nil
}

func checkFlagDefault(flag *Flag) error {
	if flag.Default == "" {
		return nil
	}
	var err error
	switch flag.GetType() {
	case FlagTypeBool:
		_, err = strconv.ParseBool(flag.Default)
	case FlagTypeInt:
		_, err = strconv.Atoi(flag.Default)
	}
	if err != nil {
		return fmt.Errorf("%w: default %q of flag %q is not a valid %s", ErrInvalidFlag, flag.Default, flag.Name, flag.GetType())
	}
	return nil
}
