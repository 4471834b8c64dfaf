// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cmdtrie-cli/internal/config"
	"cmdtrie-cli/internal/issue"
)

// newConfigCommand creates the `cmdtrie config` command tree.
// Subcommands that read configuration use the App's config.Provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cmdtrie configuration",
		Long: `Manage cmdtrie configuration.

Configuration is stored in:
  - Linux: ~/.config/cmdtrie/config.cue
  - macOS: ~/Library/Application Support/cmdtrie/config.cue
  - Windows: %APPDATA%\cmdtrie\config.cue

Every value can be overridden with a CMDTRIE_ environment variable,
for example CMDTRIE_UI_VERBOSE=true or CMDTRIE_SERVER_PORT=2200.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath(app.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configPath}
}

func showConfig(ctx context.Context, app *App, w io.Writer) error {
	opts := app.loadOptions()
	cfg, err := app.Config.Load(ctx, opts)
	if err != nil {
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render(app.cfg.UI.ColorScheme.GlamourStyle()); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	cfgPath, pathErr := config.ConfigFilePath(opts)
	if _, statErr := os.Stat(cfgPath); pathErr == nil && statErr == nil {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	printList(w, "files", cfg.Files)
	printList(w, "sets", cfg.Sets)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("runner"))
	workdir := cfg.Runner.WorkDir
	if workdir == "" {
		workdir = "(current directory)"
	}
	fmt.Fprintf(w, "  workdir: %s\n", valueStyle.Render(workdir))
	fmt.Fprintf(w, "  inherit_env: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Runner.InheritEnv)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("server"))
	fmt.Fprintf(w, "  host: %s\n", valueStyle.Render(cfg.Server.Host))
	fmt.Fprintf(w, "  port: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.Server.Port)))
	fmt.Fprintf(w, "  token_ttl: %s\n", valueStyle.Render(cfg.Server.TokenTTL.String()))

	return nil
}

func printList(w io.Writer, name string, items []string) {
	fmt.Fprintf(w, "%s:\n", CmdStyle.Render(name))
	if len(items) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", SuccessStyle.Render(item))
	}
}

func initConfig(app *App, w io.Writer) error {
	path, err := config.CreateDefaultConfig(app.loadOptions())
	if errors.Is(err, config.ErrConfigExists) {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
