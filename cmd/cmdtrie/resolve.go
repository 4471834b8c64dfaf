// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"cmdtrie-cli/internal/dispatch"
)

// newResolveCommand creates the `cmdtrie resolve` command. It walks the same
// trie as `run` but only reports the invocation.
func newResolveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <words...>",
		Short: "Show which command and values a word sequence selects",
		Long: `Show which command and values a word sequence selects, without running it.

Every word after 'resolve' is passed through unchanged, flags included.

Examples:
  cmdtrie resolve get thingy attributes 42 color --all`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Dispatcher()
			if err != nil {
				return err
			}
			inv, err := d.Resolve(args)
			if err != nil {
				return err
			}
			printInvocation(cmd, inv)
			return nil
		},
	}
}

func printInvocation(cmd *cobra.Command, inv *dispatch.Invocation) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("command"), inv.Path)
	fmt.Fprintf(w, "%s: %s.%s\n", CmdStyle.Render("variant"), inv.Set, inv.Variant)
	if len(inv.Positional) > 0 {
		fmt.Fprintf(w, "%s: %q\n", CmdStyle.Render("positional"), inv.Positional)
	}
	printValues(cmd, "args", inv.Args)
	printValues(cmd, "flags", inv.Flags)
}

func printValues(cmd *cobra.Command, title string, values map[string]string) {
	if len(values) == 0 {
		return
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render(title))
	for _, name := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(w, "  %s = %s\n", name, SuccessStyle.Render(fmt.Sprintf("%q", values[name])))
	}
}
