// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"cmdtrie-cli/internal/config"
	"cmdtrie-cli/internal/dispatch"
	"cmdtrie-cli/internal/issue"
	"cmdtrie-cli/internal/registry"
	"cmdtrie-cli/internal/runner"
	"cmdtrie-cli/pkg/cmdfile"
)

// defaultDeclarationFiles are looked up in the working directory when
// neither the config nor --file names any declaration file.
var defaultDeclarationFiles = []string{"cmdtrie.cue", "cmdtrie.toml"}

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra command handler receives an App reference.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer

		flags      globalFlags
		logger     *log.Logger
		cfg        *config.Config
		files      []string
		registry   *registry.Registry
		dispatcher *dispatch.Dispatcher
		// loadErr is why the declared command tree is unavailable.
		loadErr error
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates the application container with defaults applied.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		logger: newLogger(deps.Stderr, false),
		cfg:    config.DefaultConfig(),
	}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "cmdtrie"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// Load reads the configuration and every declaration file, then builds the
// dispatcher. A configuration error is reported as a warning and defaults are
// used; a declaration error leaves the command tree empty and is returned by
// Dispatcher.
func (a *App) Load(ctx context.Context, flags globalFlags) {
	a.flags = flags

	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, flags.verbose))
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg
	a.logger = newLogger(a.stderr, flags.verbose || cfg.UI.Verbose)

	a.files = a.declarationFiles()
	a.registry, a.dispatcher, a.loadErr = a.build(a.files)
}

// Verbose reports whether verbose output was requested by flag or config.
func (a *App) Verbose() bool {
	return a.flags.verbose || a.cfg.UI.Verbose
}

// Dispatcher returns the built command tree, or the error that prevented
// building it.
func (a *App) Dispatcher() (*dispatch.Dispatcher, error) {
	if a.loadErr != nil {
		return nil, a.loadErr
	}
	if a.dispatcher == nil {
		return nil, issue.NewErrorContext().
			WithOperation("load commands").
			WithIssue(issue.DeclarationFileNotFoundId).
			WithSuggestion("Create cmdtrie.cue in the current directory").
			WithSuggestion("Pass a declaration file with --file").
			Wrap(errNoDeclarationFiles).
			BuildError()
	}
	return a.dispatcher, nil
}

// Executor returns the script runner configured from the runner config.
func (a *App) Executor() dispatch.Executor {
	return &runner.Virtual{
		WorkDir:    a.cfg.Runner.WorkDir,
		InheritEnv: a.cfg.Runner.InheritEnv,
		Stdin:      os.Stdin,
		Logger:     a.logger,
	}
}

var errNoDeclarationFiles = errors.New("no declaration files found")

// declarationFiles merges the configured files with --file values. With
// neither, the default file names in the working directory are used.
func (a *App) declarationFiles() []string {
	files := make([]string, 0, len(a.cfg.Files)+len(a.flags.files))
	files = append(files, a.cfg.Files...)
	files = append(files, a.flags.files...)
	if len(files) > 0 {
		return files
	}
	for _, name := range defaultDeclarationFiles {
		if _, err := os.Stat(name); err == nil {
			files = append(files, name)
		}
	}
	return files
}

// selectedSets returns the --set values, falling back to the config.
func (a *App) selectedSets() []string {
	if len(a.flags.sets) > 0 {
		return a.flags.sets
	}
	return a.cfg.Sets
}

// build parses files into a sealed registry and mounts the selected sets.
// No files yields a nil dispatcher and no error.
func (a *App) build(files []string) (*registry.Registry, *dispatch.Dispatcher, error) {
	reg := registry.New()
	if len(files) == 0 {
		reg.Seal()
		return reg, nil, nil
	}

	for _, path := range files {
		f, err := cmdfile.Parse(path)
		if err != nil {
			return nil, nil, declarationError(path, err)
		}
		a.logger.Debug("parsed declaration file", "path", path, "sets", len(f.Sets))
		if err := reg.RegisterFile(f); err != nil {
			return nil, nil, registrationError(err)
		}
	}
	reg.Seal()

	d, err := dispatch.New(reg, a.selectedSets(), dispatch.WithLogger(a.logger))
	if err != nil {
		return nil, nil, dispatcherError(err)
	}
	return reg, d, nil
}

func declarationError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return issue.NewErrorContext().
			WithOperation("read declaration file").
			WithResource(path).
			WithIssue(issue.DeclarationFileNotFoundId).
			WithSuggestion("Check the path passed with --file or listed under 'files' in the config").
			Wrap(err).
			BuildError()
	}
	return issue.NewErrorContext().
		WithOperation("parse declaration file").
		WithResource(path).
		WithIssue(issue.DeclarationParseErrorId).
		WithSuggestions(
			"Run 'cmdtrie validate "+path+"' to see every problem in the file",
			"Command names are words separated by single spaces",
		).
		Wrap(err).
		BuildError()
}

func registrationError(err error) error {
	var dup *registry.DuplicateSetError
	if errors.As(err, &dup) {
		return issue.NewErrorContext().
			WithOperation("register declaration set").
			WithResource(dup.Name).
			WithIssue(issue.DuplicateSetId).
			WithSuggestion("Rename one of the sets; set names must be globally unique").
			Wrap(err).
			BuildError()
	}
	return fmt.Errorf("failed to register declarations: %w", err)
}

func dispatcherError(err error) error {
	var unknown *dispatch.UnknownSetError
	if errors.As(err, &unknown) {
		return issue.NewErrorContext().
			WithOperation("mount declaration sets").
			WithResource(unknown.Name).
			WithIssue(issue.UnknownSetId).
			WithSuggestion("Run 'cmdtrie list' without --set to see the loaded sets").
			Wrap(err).
			BuildError()
	}
	var dup *dispatch.DuplicateCommandError
	if errors.As(err, &dup) {
		return issue.NewErrorContext().
			WithOperation("mount declaration sets").
			WithResource(dup.Path).
			WithIssue(issue.DuplicateCommandId).
			WithSuggestion("Rename the command in one of the sets").
			WithSuggestion("Mount fewer sets with --set").
			Wrap(err).
			BuildError()
	}
	return fmt.Errorf("failed to build command tree: %w", err)
}
