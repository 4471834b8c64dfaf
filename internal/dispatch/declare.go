// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"cmdtrie-cli/pkg/cmdfile"
	"cmdtrie-cli/pkg/trie"
)

const (
	// AnnotationPath holds the full command path of a declared cobra command.
	AnnotationPath = "cmdtrie.path"
	// AnnotationSet holds the declaring set of a runnable cobra command.
	AnnotationSet = "cmdtrie.set"
)

// Declare builds one cobra command per top-level command word, with the
// whole subtree attached. Runnable commands hand their invocation to exec.
//
// The returned commands are new on every call and may be attached to any
// parent.
func (d *Dispatcher) Declare(exec Executor) []*cobra.Command {
	cmds := trie.AggregateDepthFirst(d.trie, trie.AggregatorFunc[Entry, *cobra.Command](
		func(value *Entry, path string, children []*cobra.Command) *cobra.Command {
			return d.declareVisit(value, path, children, exec)
		},
	))
	slices.SortFunc(cmds, func(a, b *cobra.Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return cmds
}

func (d *Dispatcher) declareVisit(value *Entry, path string, children []*cobra.Command, exec Executor) *cobra.Command {
	segment, _, _ := trie.SplitLast(path)

	cmd := &cobra.Command{
		Use:         segment,
		Annotations: map[string]string{AnnotationPath: path},
	}
	cmd.AddCommand(children...)

	if value == nil {
		available := make([]string, 0, len(children))
		for _, child := range children {
			available = append(available, child.Name())
		}
		slices.Sort(available)

		cmd.Short = fmt.Sprintf("Commands under '%s'", path)
		cmd.Args = func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &ResolveError{Path: path, Token: args[0], Available: available, Err: ErrInvalidSubcommand}
			}
			return nil
		}
		cmd.RunE = func(*cobra.Command, []string) error {
			return &ResolveError{Path: path, Available: available, Err: ErrMissingSubcommand}
		}
		return cmd
	}

	entry := *value
	decl := entry.Command

	cmd.Use = decl.Usage(segment)
	cmd.Short = decl.Description
	cmd.Long = fmt.Sprintf("Run '%s' (%s) from set %s", path, decl.VariantName(), entry.Set.Name)
	cmd.Annotations[AnnotationSet] = entry.Set.Name
	cmd.Args = argsValidator(decl)

	defineFlags(cmd.Flags(), decl)
	for _, flag := range decl.Flags {
		if flag.Required {
			_ = cmd.MarkFlagRequired(flag.Name)
		}
	}

	cmd.RunE = func(c *cobra.Command, args []string) error {
		inv, err := bind(entry, path, c.Flags(), args)
		if err != nil {
			return err
		}
		d.logger.Debug("running command", "set", inv.Set, "path", inv.Path, "variant", inv.Variant)
		return exec.Execute(c.Context(), inv, c.OutOrStdout(), c.ErrOrStderr())
	}
	return cmd
}

func argsValidator(decl *cmdfile.Command) cobra.PositionalArgs {
	if decl.MaxArgs() < 0 {
		return cobra.MinimumNArgs(decl.MinArgs())
	}
	return cobra.RangeArgs(decl.MinArgs(), decl.MaxArgs())
}
