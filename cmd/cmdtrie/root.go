// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cmdtrie-cli/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// globalFlags are the root flags that decide which command tree gets built.
// They are read before cobra runs, so they must precede the subcommand.
type globalFlags struct {
	configPath string
	files      []string
	sets       []string
	verbose    bool
}

// register defines the global flags on fs. help only keeps pflag from
// treating -h as an error during the early parse.
func (g *globalFlags) register(fs *pflag.FlagSet, help *bool) {
	fs.StringVar(&g.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/cmdtrie/config.cue)")
	fs.StringArrayVarP(&g.files, "file", "f", nil, "declaration file to load (repeatable, .cue or .toml)")
	fs.StringArrayVar(&g.sets, "set", nil, "mount only this declaration set (repeatable)")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	if help != nil {
		fs.BoolVarP(help, "help", "h", false, "")
	}
}

// parseGlobalFlags reads the global flags that precede the first subcommand.
// Unknown flags are skipped; cobra reports them later.
func parseGlobalFlags(args []string) globalFlags {
	var (
		flags globalFlags
		help  bool
	)
	fs := pflag.NewFlagSet("cmdtrie", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SetInterspersed(false)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	flags.register(fs, &help)
	_ = fs.Parse(args) // Errors resurface when cobra parses the same flags
	return flags
}

// newRootCommand builds the full command tree around app.
func newRootCommand(app *App) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "cmdtrie",
		Short: "Run multi-word commands declared in CUE or TOML files",
		Long: TitleStyle.Render("cmdtrie") + SubtitleStyle.Render(" - Run multi-word commands declared in CUE or TOML files") + `

cmdtrie loads named sets of command declarations such as "get thingy
attributes", arranges them in a trie keyed by command words and derives
a command tree from it. Scripts run in an embedded POSIX shell.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Declare commands in cmdtrie.cue (or pass -f <file>)
  2. Inspect them with: cmdtrie tree
  3. Run them with:     cmdtrie run <words...>

` + SubtitleStyle.Render("Examples:") + `
  cmdtrie tree                           Show the command trie
  cmdtrie run get thingy 42              Run 'get thingy' with id 42
  cmdtrie resolve get thingy 42          Show what 'get thingy 42' resolves to
  cmdtrie -f ops.toml --set Ops list     List only the Ops set from ops.toml
  cmdtrie config show                    Show current configuration`,
		SilenceUsage:     true,
		TraverseChildren: true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// The values were already applied by parseGlobalFlags; cobra only has to
	// accept and document them.
	flags.register(rootCmd.Flags(), nil)

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newTreeCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newServeCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree for the current process and runs it.
// This is called by main.main().
func Execute() {
	ctx := context.Background()
	args := os.Args[1:]

	app := NewApp(Dependencies{})
	app.Load(ctx, parseGlobalFlags(args))

	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)

	if err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		app.explain(err)
		os.Exit(exitCode(err))
	}
}

// explain renders the catalog entry of an actionable error in verbose mode.
func (a *App) explain(err error) {
	if !a.Verbose() {
		return
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	iss := ae.CatalogIssue()
	if iss == nil {
		return
	}
	rendered, renderErr := iss.Render(a.cfg.UI.ColorScheme.GlamourStyle())
	if renderErr != nil {
		a.logger.Debug("failed to render issue", "id", iss.Id(), "error", renderErr)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
