// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"cmdtrie-cli/internal/dispatch"
)

// newRunCommand creates the `cmdtrie run` command with the declared command
// tree mounted below it.
func newRunCommand(app *App) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <words...>",
		Short: "Run a declared command",
		Long: `Run a declared command.

The words after 'run' select a command by its declared name, followed by
its arguments and flags. Use 'cmdtrie tree' to see every declared command.

Examples:
  cmdtrie run list thingy 42
  cmdtrie run get thingy attributes 42 color size --format json`,
	}

	d, err := app.Dispatcher()
	if err != nil {
		runCmd.DisableFlagParsing = true
		runCmd.RunE = func(*cobra.Command, []string) error {
			return err
		}
		return runCmd
	}

	top, _ := d.Subcommands("")
	runCmd.Args = func(_ *cobra.Command, args []string) error {
		if len(args) > 0 {
			return &dispatch.ResolveError{Token: args[0], Available: top, Err: dispatch.ErrInvalidSubcommand}
		}
		return nil
	}
	runCmd.RunE = func(*cobra.Command, []string) error {
		return &dispatch.ResolveError{Available: top, Err: dispatch.ErrMissingSubcommand}
	}
	runCmd.AddCommand(d.Declare(app.Executor())...)

	return runCmd
}
