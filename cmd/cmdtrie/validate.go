// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cmdtrie-cli/internal/dispatch"
	"cmdtrie-cli/internal/registry"
	"cmdtrie-cli/internal/runner"
	"cmdtrie-cli/pkg/cmdfile"
)

var errValidationFailed = errors.New("validation failed")

// newValidateCommand creates the `cmdtrie validate` command.
// Without arguments, it validates the files the current invocation would load.
func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate declaration files",
		Long: `Validate declaration files.

Each file is parsed and checked, every script is parsed by the shell, and
the sets are mounted together to detect duplicate command names across
files. All problems are reported at once.

Examples:
  cmdtrie validate                      Validate the files normally loaded
  cmdtrie validate ops.cue extra.toml   Validate specific files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				files = app.files
			}
			if len(files) == 0 {
				_, err := app.Dispatcher()
				return err
			}
			if problems := validateFiles(cmd.OutOrStdout(), files, app.selectedSets(), app.Verbose()); problems > 0 {
				return &ExitError{Code: exitFailure, Err: fmt.Errorf("%w: %d problem(s)", errValidationFailed, problems)}
			}
			return nil
		},
	}
}

// validateFiles reports every problem in files to w and returns how many it found.
func validateFiles(w io.Writer, files, sets []string, verbose bool) int {
	fmt.Fprintln(w, TitleStyle.Render("Declaration Validation"))
	fmt.Fprintln(w)

	problems := 0
	report := func(err error) {
		problems++
		fmt.Fprintf(w, "  %s %s\n", ErrorStyle.Render("✗"), formatErrorForDisplay(err, verbose))
	}

	reg := registry.New()
	for _, path := range files {
		f, err := cmdfile.Parse(path)
		if err != nil {
			fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("✗"), path)
			report(declarationError(path, err))
			continue
		}

		before := problems
		for _, c := range f.Commands() {
			if c.Script == "" {
				continue
			}
			if err := runner.Validate(path+": "+c.Name, c.Script); err != nil {
				report(err)
			}
		}
		for i := range f.Sets {
			if err := reg.Register(&f.Sets[i]); err != nil {
				report(registrationError(err))
			}
		}

		if problems == before {
			fmt.Fprintf(w, "%s %s %s\n", SuccessStyle.Render("✓"), path,
				SubtitleStyle.Render(fmt.Sprintf("(%d set(s), %d command(s))", len(f.Sets), len(f.Commands()))))
		}
	}
	reg.Seal()

	if reg.Len() > 0 {
		for _, err := range dispatch.Check(reg, sets) {
			report(dispatcherError(err))
		}
	}

	fmt.Fprintln(w)
	if problems == 0 {
		fmt.Fprintln(w, SuccessStyle.Render("All declarations are valid"))
	} else {
		fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("%d problem(s) found", problems)))
	}
	return problems
}
