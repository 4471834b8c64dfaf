// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"cmdtrie-cli/internal/config"
	"cmdtrie-cli/internal/dispatch"
	"cmdtrie-cli/internal/issue"
	"cmdtrie-cli/internal/testutil"
)

const thingiesCUE = `
sets: [{
	name: "Thingies"
	commands: [
		{name: "list thingy", description: "list them", args: [{name: "id", required: true}], script: "echo \"list $1\""},
		{name: "get thingy", args: [{name: "id", required: true}], script: "echo \"thingy $1\""},
		{
			name: "get thingy attributes"
			args: [{name: "id", required: true}, {name: "keys", variadic: true}]
			flags: [{name: "format", short: "f", default: "text"}, {name: "all", type: "bool"}]
			script: "echo \"$CMDTRIE_FLAG_FORMAT $CMDTRIE_ARG_KEYS\""
		},
		{name: "fail", script: "exit 4"},
	]
}]
`

const otherTOML = `
[[sets]]
name = "Other"

[[sets.commands]]
name = "list other"
`

type stubConfig struct {
	cfg *config.Config
	err error
}

func (s stubConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cfg == nil {
		return config.DefaultConfig(), nil
	}
	return s.cfg, nil
}

type cliResult struct {
	app    *App
	stdout string
	stderr string
	err    error
}

// runCLI loads and executes the command tree the way Execute does, without fang.
func runCLI(t *testing.T, provider config.Provider, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{Config: provider, Stdout: &stdout, Stderr: &stderr})
	app.Load(context.Background(), parseGlobalFlags(args))

	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SilenceErrors = true
	err := rootCmd.ExecuteContext(context.Background())

	return cliResult{app: app, stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeThingies(t *testing.T) string {
	t.Helper()
	return testutil.MustWriteFile(t, t.TempDir(), "thingies.cue", thingiesCUE)
}

func TestParseGlobalFlags(t *testing.T) {
	t.Parallel()

	flags := parseGlobalFlags([]string{
		"-f", "a.cue", "--file=b.toml", "--set", "Thingies", "-v", "--config", "c.cue",
		"run", "get", "thingy", "attributes", "-f", "json",
	})

	if got := strings.Join(flags.files, ","); got != "a.cue,b.toml" {
		t.Errorf("files = %q, want a.cue,b.toml", got)
	}
	if len(flags.sets) != 1 || flags.sets[0] != "Thingies" {
		t.Errorf("sets = %v, want [Thingies]", flags.sets)
	}
	if !flags.verbose {
		t.Error("verbose should be set")
	}
	if flags.configPath != "c.cue" {
		t.Errorf("configPath = %q, want c.cue", flags.configPath)
	}
}

func TestParseGlobalFlags_IgnoresUnknownAndHelp(t *testing.T) {
	t.Parallel()

	flags := parseGlobalFlags([]string{"--version", "-h", "tree"})
	if len(flags.files) != 0 || flags.verbose {
		t.Errorf("flags = %+v, want zero value", flags)
	}
}

func TestRun_Leaf(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfig{}, "-f", writeThingies(t), "run", "get", "thingy", "42")
	if res.err != nil {
		t.Fatalf("run failed: %v (stderr %q)", res.err, res.stderr)
	}
	if res.stdout != "thingy 42\n" {
		t.Errorf("stdout = %q, want %q", res.stdout, "thingy 42\n")
	}
}

func TestRun_FlagsAndVariadic(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfig{}, "-f", writeThingies(t),
		"run", "get", "thingy", "attributes", "42", "color", "size", "-f", "json")
	if res.err != nil {
		t.Fatalf("run failed: %v (stderr %q)", res.err, res.stderr)
	}
	if res.stdout != "json color size\n" {
		t.Errorf("stdout = %q, want %q", res.stdout, "json color size\n")
	}
}

func TestRun_ResolveErrors(t *testing.T) {
	t.Parallel()

	path := writeThingies(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no words", []string{"run"}, dispatch.ErrMissingSubcommand},
		{"unknown word", []string{"run", "nope"}, dispatch.ErrInvalidSubcommand},
		{"structural node", []string{"run", "get"}, dispatch.ErrMissingSubcommand},
		{"unknown below structural node", []string{"run", "get", "nope"}, dispatch.ErrInvalidSubcommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, stubConfig{}, append([]string{"-f", path}, tt.args...)...)
			if !errors.Is(res.err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", res.err, tt.wantErr)
			}
			if code := exitCode(res.err); code != exitUsage {
				t.Errorf("exitCode = %d, want %d", code, exitUsage)
			}
		})
	}
}

func TestRun_ScriptExitStatus(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfig{}, "-f", writeThingies(t), "run", "fail")
	if res.err == nil {
		t.Fatal("expected an error from a failing script")
	}
	if code := exitCode(res.err); code != 4 {
		t.Errorf("exitCode = %d, want 4", code)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfig{}, "-f", writeThingies(t),
		"resolve", "get", "thingy", "attributes", "42", "color", "--all")
	if res.err != nil {
		t.Fatalf("resolve failed: %v", res.err)
	}

	for _, want := range []string{
		"command: get thingy attributes",
		"variant: Thingies.GetThingyAttributes",
		`id = "42"`,
		`keys = "color"`,
		`all = "true"`,
		`format = "text"`,
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestTreeAndList(t *testing.T) {
	t.Parallel()

	path := writeThingies(t)
	other := testutil.MustWriteFile(t, t.TempDir(), "other.toml", otherTOML)

	tree := runCLI(t, stubConfig{}, "-f", path, "-f", other, "tree")
	if tree.err != nil {
		t.Fatalf("tree failed: %v", tree.err)
	}
	for _, want := range []string{"list", "thingy", "attributes", "other"} {
		if !strings.Contains(tree.stdout, want) {
			t.Errorf("tree output missing %q:\n%s", want, tree.stdout)
		}
	}

	list := runCLI(t, stubConfig{}, "-f", path, "-f", other, "--set", "Other", "list")
	if list.err != nil {
		t.Fatalf("list failed: %v", list.err)
	}
	if !strings.Contains(list.stdout, "(Other.ListOther)") {
		t.Errorf("list output missing Other.ListOther:\n%s", list.stdout)
	}
	if strings.Contains(list.stdout, "Thingies.") {
		t.Errorf("list output should only show the Other set:\n%s", list.stdout)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	path := writeThingies(t)
	dir := t.TempDir()
	dupSet := testutil.MustWriteFile(t, dir, "dup.cue", thingiesCUE)
	dupCmd := testutil.MustWriteFile(t, dir, "dupcmd.cue", `sets: [{name: "Again", commands: [{name: "get thingy"}]}]`)
	broken := testutil.MustWriteFile(t, dir, "broken.cue", `sets: [{name: "X", commands: [{name: "two  spaces"}]}]`)

	tests := []struct {
		name  string
		args  []string
		issue issue.Id
	}{
		{"missing file", []string{"-f", dir + "/missing.cue"}, issue.DeclarationFileNotFoundId},
		{"parse error", []string{"-f", broken}, issue.DeclarationParseErrorId},
		{"duplicate set", []string{"-f", path, "-f", dupSet}, issue.DuplicateSetId},
		{"duplicate command", []string{"-f", path, "-f", dupCmd}, issue.DuplicateCommandId},
		{"unknown set", []string{"-f", path, "--set", "Nope"}, issue.UnknownSetId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := runCLI(t, stubConfig{}, append(tt.args, "tree")...)
			var ae *issue.ActionableError
			if !errors.As(res.err, &ae) {
				t.Fatalf("err = %v (%T), want *issue.ActionableError", res.err, res.err)
			}
			if ae.Issue != tt.issue {
				t.Errorf("Issue = %d, want %d", ae.Issue, tt.issue)
			}
		})
	}
}

func TestLoadErrors_MissingFileUnwraps(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfig{}, "-f", t.TempDir()+"/missing.toml", "run", "anything")
	if !errors.Is(res.err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist in chain", res.err)
	}
}

func TestNoDeclarationFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	res := runCLI(t, stubConfig{}, "tree")
	if !errors.Is(res.err, errNoDeclarationFiles) {
		t.Fatalf("err = %v, want errNoDeclarationFiles", res.err)
	}
}

func TestDefaultDeclarationFile(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "cmdtrie.cue", thingiesCUE)
	t.Chdir(dir)

	res := runCLI(t, stubConfig{}, "run", "list", "thingy", "7")
	if res.err != nil {
		t.Fatalf("run failed: %v", res.err)
	}
	if res.stdout != "list 7\n" {
		t.Errorf("stdout = %q, want %q", res.stdout, "list 7\n")
	}
}

func TestConfigFilesAndSets(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Files = []string{writeThingies(t)}
	cfg.Sets = []string{"Thingies"}

	res := runCLI(t, stubConfig{cfg: cfg}, "run", "get", "thingy", "1")
	if res.err != nil {
		t.Fatalf("run failed: %v", res.err)
	}
	if res.stdout != "thingy 1\n" {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestConfigLoadFailureFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	res := runCLI(t, stubConfig{err: errors.New("boom")}, "-f", writeThingies(t), "run", "get", "thingy", "9")
	if res.err != nil {
		t.Fatalf("run failed: %v", res.err)
	}
	if !strings.Contains(res.stderr, "Warning: ") || !strings.Contains(res.stderr, "boom") {
		t.Errorf("stderr = %q, want config warning", res.stderr)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain", errors.New("x"), exitFailure},
		{"exit error", &ExitError{Code: 7}, 7},
		{"resolve error", &dispatch.ResolveError{Err: dispatch.ErrMissingSubcommand}, exitUsage},
		{"invalid arguments", dispatch.ErrInvalidArguments, exitUsage},
	}

	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("%s: exitCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
