// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newTreeCommand creates the `cmdtrie tree` command.
func newTreeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the command trie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Dispatcher()
			if err != nil {
				return err
			}
			return d.Fprint(cmd.OutOrStdout())
		},
	}
}

// newListCommand creates the `cmdtrie list` command.
func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List declared commands with the set that declares them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Dispatcher()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, TitleStyle.Render("Available Commands"))
			fmt.Fprintf(w, "%s %v\n\n", SubtitleStyle.Render("sets:"), d.Sets())
			for path, entry := range d.Entries() {
				line := "  " + CmdStyle.Render(entry.Command.Usage(path))
				if entry.Command.Description != "" {
					line += " - " + entry.Command.Description
				}
				fmt.Fprintf(w, "%s %s\n", line, setStyle.Render("("+entry.String()+")"))
			}
			return nil
		},
	}
}
