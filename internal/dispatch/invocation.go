// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"cmdtrie-cli/pkg/cmdfile"
)

// Invocation is a command resolved from the command line together with its
// bound arguments and flags.
type Invocation struct {
	// Set is the name of the declaring set.
	Set string
	// Variant is the PascalCase identifier of the command.
	Variant string
	// Path is the full command path ("get thingy attributes").
	Path    string
	Command *cmdfile.Command
	// Positional holds the raw positional arguments.
	Positional []string
	// Args maps every declared argument to its value. Variadic values are
	// joined with single spaces; missing optional arguments get their default.
	Args map[string]string
	// Flags maps every declared flag to its value in string form.
	Flags map[string]string
}

// String renders the invocation on one line, arguments and flags sorted.
func (inv *Invocation) String() string {
	var b strings.Builder
	b.WriteString(inv.Set)
	b.WriteByte('.')
	b.WriteString(inv.Variant)
	for _, arg := range inv.Command.Args {
		fmt.Fprintf(&b, " %s=%q", arg.Name, inv.Args[arg.Name])
	}
	names := make([]string, 0, len(inv.Flags))
	for name := range inv.Flags {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&b, " --%s=%s", name, inv.Flags[name])
	}
	return b.String()
}

// defineFlags registers the declared flags of cmd on fs. Defaults were
// checked when the declaration file was validated.
func defineFlags(fs *pflag.FlagSet, cmd *cmdfile.Command) {
	for _, flag := range cmd.Flags {
		switch flag.GetType() {
		case cmdfile.FlagTypeBool:
			def, _ := strconv.ParseBool(flag.Default)
			fs.BoolP(flag.Name, flag.Short, def, flag.Description)
		case cmdfile.FlagTypeInt:
			def, _ := strconv.Atoi(flag.Default)
			fs.IntP(flag.Name, flag.Short, def, flag.Description)
		default:
			fs.StringP(flag.Name, flag.Short, flag.Default, flag.Description)
		}
	}
}

// bind checks positional against the declaration and collects the flag
// values from the already parsed fs.
func bind(entry Entry, path string, fs *pflag.FlagSet, positional []string) (*Invocation, error) {
	cmd := entry.Command

	if n := len(positional); n < cmd.MinArgs() {
		return nil, fmt.Errorf("%s: %w: requires at least %d argument(s), got %d", path, ErrInvalidArguments, cmd.MinArgs(), n)
	} else if limit := cmd.MaxArgs(); limit >= 0 && n > limit {
		return nil, fmt.Errorf("%s: %w: accepts at most %d argument(s), got %d", path, ErrInvalidArguments, limit, n)
	}

	inv := &Invocation{
		Set:        entry.Set.Name,
		Variant:    cmd.VariantName(),
		Path:       path,
		Command:    cmd,
		Positional: slices.Clone(positional),
		Args:       make(map[string]string, len(cmd.Args)),
		Flags:      make(map[string]string, len(cmd.Flags)),
	}

	for i, arg := range cmd.Args {
		switch {
		case arg.Variadic && i < len(positional):
			inv.Args[arg.Name] = strings.Join(positional[i:], " ")
		case i < len(positional):
			inv.Args[arg.Name] = positional[i]
		default:
			inv.Args[arg.Name] = arg.Default
		}
	}

	for _, flag := range cmd.Flags {
		f := fs.Lookup(flag.Name)
		if f == nil {
			continue
		}
		if flag.Required && !f.Changed {
			return nil, fmt.Errorf("%s: %w: required flag --%s not set", path, ErrInvalidArguments, flag.Name)
		}
		inv.Flags[flag.Name] = f.Value.String()
	}
	return inv, nil
}
