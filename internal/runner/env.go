// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"os"
	"slices"
	"strings"

	"cmdtrie-cli/internal/dispatch"
)

const envPrefix = "CMDTRIE_"

// EnvName returns the variable name for a declared argument or flag.
func EnvName(kind, name string) string {
	return envPrefix + kind + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// buildEnv returns the script environment as sorted KEY=VALUE pairs.
// Host variables with the CMDTRIE_ prefix never leak into a script.
func buildEnv(inv *dispatch.Invocation, host []string, inherit bool) []string {
	env := make(map[string]string)
	for _, kv := range host {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.HasPrefix(key, envPrefix) {
			continue
		}
		if inherit || key == "PATH" || key == "HOME" {
			env[key] = value
		}
	}

	env[envPrefix+"COMMAND"] = inv.Path
	env[envPrefix+"SET"] = inv.Set
	for name, value := range inv.Args {
		env[EnvName("ARG", name)] = value
	}
	for name, value := range inv.Flags {
		env[EnvName("FLAG", name)] = value
	}

	pairs := make([]string, 0, len(env))
	for key, value := range env {
		pairs = append(pairs, key+"="+value)
	}
	slices.Sort(pairs)
	return pairs
}

func hostEnv() []string {
	return os.Environ()
}
