// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"cmdtrie-cli/internal/dispatch"
	"cmdtrie-cli/pkg/cmdfile"
)

func invocation(script string, positional ...string) *dispatch.Invocation {
	cmd := &cmdfile.Command{
		Name:   "get thingy attributes",
		Script: script,
		Args:   []cmdfile.Argument{{Name: "id", Required: true}, {Name: "extra-keys", Variadic: true}},
		Flags:  []cmdfile.Flag{{Name: "dry-run", Type: cmdfile.FlagTypeBool}},
	}
	args := map[string]string{"id": "", "extra-keys": ""}
	if len(positional) > 0 {
		args["id"] = positional[0]
		args["extra-keys"] = strings.Join(positional[1:], " ")
	}
	return &dispatch.Invocation{
		Set:        "Thingies",
		Variant:    "GetThingyAttributes",
		Path:       cmd.Name,
		Command:    cmd,
		Positional: positional,
		Args:       args,
		Flags:      map[string]string{"dry-run": "false"},
	}
}

func TestVirtual_Execute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		script     string
		positional []string
		want       string
	}{
		{
			name:       "positional params",
			script:     `echo "$1|$2|$#"`,
			positional: []string{"42", "-v"},
			want:       "42|-v|2\n",
		},
		{
			name:       "argument env",
			script:     `echo "$CMDTRIE_ARG_ID $CMDTRIE_ARG_EXTRA_KEYS"`,
			positional: []string{"42", "a", "b"},
			want:       "42 a b\n",
		},
		{
			name:   "flag and command env",
			script: `echo "$CMDTRIE_COMMAND/$CMDTRIE_SET/$CMDTRIE_FLAG_DRY_RUN"`,
			want:   "get thingy attributes/Thingies/false\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			err := (&Virtual{}).Execute(context.Background(), invocation(tt.script, tt.positional...), &stdout, &stderr)
			if err != nil {
				t.Fatalf("Execute() error = %v (stderr %q)", err, stderr.String())
			}
			if stdout.String() != tt.want {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.want)
			}
		})
	}
}

func TestVirtual_ExitStatus(t *testing.T) {
	t.Parallel()

	err := (&Virtual{}).Execute(context.Background(), invocation("exit 3"), &bytes.Buffer{}, &bytes.Buffer{})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Execute() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 || exitErr.Path != "get thingy attributes" {
		t.Errorf("ExitError = %+v", exitErr)
	}
}

func TestVirtual_SyntaxError(t *testing.T) {
	t.Parallel()

	err := (&Virtual{}).Execute(context.Background(), invocation("if then fi"), &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, ErrScriptSyntax) {
		t.Errorf("Execute() error = %v, want ErrScriptSyntax", err)
	}
	if err := Validate("x", "echo ok"); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestVirtual_NoScript(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	if err := (&Virtual{}).Execute(context.Background(), invocation("", "7"), &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "Thingies.GetThingyAttributes id=\"7\"") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestVirtual_WorkDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "marker"), []byte("here\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	v := &Virtual{WorkDir: dir}
	if err := v.Execute(context.Background(), invocation(`read -r line < marker; echo "$line"`), &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout.String() != "here\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "here\n")
	}
}

func TestBuildEnv(t *testing.T) {
	t.Parallel()

	host := []string{"PATH=/bin", "HOME=/home/u", "SECRET=1", "CMDTRIE_ARG_ID=leak", "broken"}
	inv := invocation("", "42")

	env := buildEnv(inv, host, false)
	for _, want := range []string{"PATH=/bin", "HOME=/home/u", "CMDTRIE_ARG_ID=42", "CMDTRIE_FLAG_DRY_RUN=false", "CMDTRIE_SET=Thingies"} {
		if !slices.Contains(env, want) {
			t.Errorf("env missing %q: %v", want, env)
		}
	}
	if slices.Contains(env, "SECRET=1") || slices.Contains(env, "CMDTRIE_ARG_ID=leak") {
		t.Errorf("env leaked host variables: %v", env)
	}
	if !slices.IsSorted(env) {
		t.Errorf("env not sorted: %v", env)
	}

	if !slices.Contains(buildEnv(inv, host, true), "SECRET=1") {
		t.Error("InheritEnv should keep host variables")
	}
}

func TestEnvName(t *testing.T) {
	t.Parallel()

	if got := EnvName("FLAG", "dry-run"); got != "CMDTRIE_FLAG_DRY_RUN" {
		t.Errorf("EnvName() = %q", got)
	}
}
