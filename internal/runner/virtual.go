// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"cmdtrie-cli/internal/dispatch"
)

// ErrScriptSyntax is returned when a command script does not parse.
var ErrScriptSyntax = errors.New("script syntax error")

type (
	// Virtual runs command scripts in-process with the mvdan/sh interpreter.
	// The zero value runs in the current directory without inheriting the
	// host environment.
	Virtual struct {
		// WorkDir is the script working directory; empty means the current one.
		WorkDir string
		// InheritEnv passes the host environment to scripts. Otherwise only
		// PATH and HOME are kept.
		InheritEnv bool
		// Stdin feeds the script; nil reads nothing.
		Stdin  io.Reader
		Logger *log.Logger
	}

	// ExitError reports a script that finished with a non-zero status.
	ExitError struct {
		Path string
		Code int
	}
)

var _ dispatch.Executor = (*Virtual)(nil)

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Path, e.Code)
}

// ExitCode returns the script's exit status.
func (e *ExitError) ExitCode() int { return e.Code }

// Validate parses script without running it. path names the script in
// error positions.
func Validate(path, script string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), path); err != nil {
		return fmt.Errorf("%w: %w", ErrScriptSyntax, err)
	}
	return nil
}

// Execute runs the script of inv. A command without a script prints the
// invocation summary instead.
func (v *Virtual) Execute(ctx context.Context, inv *dispatch.Invocation, stdout, stderr io.Writer) error {
	script := inv.Command.Script
	if strings.TrimSpace(script) == "" {
		_, err := fmt.Fprintln(stdout, inv.String())
		return err
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), inv.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScriptSyntax, err)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(buildEnv(inv, hostEnv(), v.InheritEnv)...)),
		interp.StdIO(v.Stdin, stdout, stderr),
	}
	if v.WorkDir != "" {
		opts = append(opts, interp.Dir(v.WorkDir))
	}
	// "--" ends option parsing so arguments like "-v" stay positional
	if len(inv.Positional) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, inv.Positional...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	v.logger().Debug("running script", "command", inv.Path, "set", inv.Set, "args", len(inv.Positional))

	if err := runner.Run(ctx, prog); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("command %q interrupted: %w", inv.Path, ctxErr)
		}
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ExitError{Path: inv.Path, Code: int(status)}
		}
		return fmt.Errorf("script execution failed: %w", err)
	}
	return nil
}

func (v *Virtual) logger() *log.Logger {
	if v.Logger == nil {
		return log.New(io.Discard)
	}
	return v.Logger
}
