// SPDX-License-Identifier: MPL-2.0

package cmdfiletest

import (
	"cmdtrie-cli/pkg/cmdfile"
)

type (
	// CommandOption configures a test command.
	// Apply options to customize beyond the minimal defaults.
	CommandOption func(*cmdfile.Command)

	// FlagOption configures a test command flag.
	FlagOption func(*cmdfile.Flag)

	// ArgOption configures a test command argument.
	ArgOption func(*cmdfile.Argument)
)

// NewTestSet creates a set named name holding cmds, with Source set to
// "<name>.cue".
func NewTestSet(name string, cmds ...*cmdfile.Command) *cmdfile.Set {
	set := &cmdfile.Set{Name: name, Source: name + ".cue"}
	for _, cmd := range cmds {
		set.Commands = append(set.Commands, *cmd)
	}
	return set
}

// NewTestCommand creates a test command with the given multi-word name.
// By default the command has no script, flags or arguments.
//
// Usage:
//
//	cmd := cmdfiletest.NewTestCommand("get thingy")
//	cmd := cmdfiletest.NewTestCommand("get thingy",
//	    cmdfiletest.WithScript("echo $1"),
//	    cmdfiletest.WithArg("id", cmdfiletest.ArgRequired()),
//	)
func NewTestCommand(name string, opts ...CommandOption) *cmdfile.Command {
	cmd := &cmdfile.Command{Name: name}
	for _, opt := range opts {
		opt(cmd)
	}
	return cmd
}

// WithScript sets the command script.
func WithScript(script string) CommandOption {
	return func(c *cmdfile.Command) {
		c.Script = script
	}
}

// WithDescription sets the command description.
func WithDescription(desc string) CommandOption {
	return func(c *cmdfile.Command) {
		c.Description = desc
	}
}

// WithArg appends a positional argument.
func WithArg(name string, opts ...ArgOption) CommandOption {
	return func(c *cmdfile.Command) {
		arg := cmdfile.Argument{Name: name}
		for _, opt := range opts {
			opt(&arg)
		}
		c.Args = append(c.Args, arg)
	}
}

// WithFlag appends a flag. The type defaults to string.
func WithFlag(name string, opts ...FlagOption) CommandOption {
	return func(c *cmdfile.Command) {
		flag := cmdfile.Flag{Name: name, Type: cmdfile.FlagTypeString}
		for _, opt := range opts {
			opt(&flag)
		}
		c.Flags = append(c.Flags, flag)
	}
}

// ArgRequired marks the argument as required.
func ArgRequired() ArgOption {
	return func(a *cmdfile.Argument) {
		a.Required = true
	}
}

// ArgVariadic marks the argument as collecting the remaining words.
func ArgVariadic() ArgOption {
	return func(a *cmdfile.Argument) {
		a.Variadic = true
	}
}

// ArgDefault sets the argument's default value.
func ArgDefault(value string) ArgOption {
	return func(a *cmdfile.Argument) {
		a.Default = value
	}
}

// FlagType sets the flag's value type.
func FlagType(t cmdfile.FlagType) FlagOption {
	return func(f *cmdfile.Flag) {
		f.Type = t
	}
}

// FlagShort sets the single-letter alias.
func FlagShort(short string) FlagOption {
	return func(f *cmdfile.Flag) {
		f.Short = short
	}
}

// FlagDefault sets the flag's default value.
func FlagDefault(value string) FlagOption {
	return func(f *cmdfile.Flag) {
		f.Default = value
	}
}

// FlagRequired marks the flag as required.
func FlagRequired() FlagOption {
	return func(f *cmdfile.Flag) {
		f.Required = true
	}
}
