// SPDX-License-Identifier: MPL-2.0

package cmdfile

import (
	"fmt"
	"strings"
)

const (
	// FlagTypeString is the default flag type.
	FlagTypeString FlagType = "string"
	// FlagTypeBool is for boolean switches.
	FlagTypeBool FlagType = "bool"
	// FlagTypeInt is for integer flags.
	FlagTypeInt FlagType = "int"
)

type (
	// FlagType is the value type of a flag.
	FlagType string

	// File is one parsed declaration file.
	File struct {
		Sets []Set `json:"sets" toml:"sets"`
		// Path is the file the declarations were read from.
		Path string `json:"-" toml:"-"`
	}

	// Set is a named group of command declarations. Set names are unique
	// across everything registered in one process.
	Set struct {
		Name        string    `json:"name" toml:"name"`
		Description string    `json:"description,omitempty" toml:"description,omitempty"`
		Commands    []Command `json:"commands" toml:"commands"`
		// Source is the path of the file that declared the set.
		Source string `json:"-" toml:"-"`
	}

	// Command is one declaration. Name is its full multi-word path, with
	// segments separated by single spaces (e.g. "get thingy attributes").
	Command struct {
		Name        string     `json:"name" toml:"name"`
		Description string     `json:"description,omitempty" toml:"description,omitempty"`
		Args        []Argument `json:"args,omitempty" toml:"args,omitempty"`
		Flags       []Flag     `json:"flags,omitempty" toml:"flags,omitempty"`
		Script      string     `json:"script,omitempty" toml:"script,omitempty"`
	}

	// Argument is a positional argument of a command.
	Argument struct {
		Name        string `json:"name" toml:"name"`
		Description string `json:"description,omitempty" toml:"description,omitempty"`
		Required    bool   `json:"required,omitempty" toml:"required,omitempty"`
		Variadic    bool   `json:"variadic,omitempty" toml:"variadic,omitempty"`
		Default     string `json:"default,omitempty" toml:"default,omitempty"`
	}

	// Flag is a named option of a command.
	Flag struct {
		Name        string   `json:"name" toml:"name"`
		Short       string   `json:"short,omitempty" toml:"short,omitempty"`
		Description string   `json:"description,omitempty" toml:"description,omitempty"`
		Type        FlagType `json:"type,omitempty" toml:"type,omitempty"`
		Default     string   `json:"default,omitempty" toml:"default,omitempty"`
		Required    bool     `json:"required,omitempty" toml:"required,omitempty"`
	}
)

// IsValid reports whether t is a known flag type. The empty type is valid
// and means FlagTypeString.
func (t FlagType) IsValid() bool {
	switch t {
	case "", FlagTypeString, FlagTypeBool, FlagTypeInt:
		return true
	default:
		return false
	}
}

// GetType returns the effective type of the flag.
func (f *Flag) GetType() FlagType {
	if f.Type == "" {
		return FlagTypeString
	}
	return f.Type
}

// ModuleName returns the snake_case form of the set name ("DeviceCommands" -> "device_commands").
func (s *Set) ModuleName() string {
	return ModuleName(s.Name)
}

// Lookup returns the command declared under name.
func (s *Set) Lookup(name string) (*Command, bool) {
	for i := range s.Commands {
		if s.Commands[i].Name == name {
			return &s.Commands[i], true
		}
	}
	return nil, false
}

// VariantName returns the PascalCase identifier of the command
// ("get thingy attributes" -> "GetThingyAttributes").
func (c *Command) VariantName() string {
	return VariantName(c.Name)
}

// Usage builds the usage line for the last segment of the command,
// e.g. "attributes <id> [extra]...".
func (c *Command) Usage(segment string) string {
	parts := []string{segment}
	for _, arg := range c.Args {
		var s string
		if arg.Required {
			s = fmt.Sprintf("<%s>", arg.Name)
		} else {
			s = fmt.Sprintf("[%s]", arg.Name)
		}
		if arg.Variadic {
			s += "..."
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// MinArgs returns the number of required positional arguments.
func (c *Command) MinArgs() int {
	n := 0
	for _, arg := range c.Args {
		if arg.Required {
			n++
		}
	}
	return n
}

// MaxArgs returns the maximum number of positional arguments, or -1 when the
// last argument is variadic.
func (c *Command) MaxArgs() int {
	if len(c.Args) > 0 && c.Args[len(c.Args)-1].Variadic {
		return -1
	}
	return len(c.Args)
}

// Commands returns every command of every set in the file.
func (f *File) Commands() []*Command {
	var cmds []*Command
	for i := range f.Sets {
		for j := range f.Sets[i].Commands {
			cmds = append(cmds, &f.Sets[i].Commands[j])
		}
	}
	return cmds
}
