// SPDX-License-Identifier: MPL-2.0

package cmdfile

import "testing"

func TestVariantName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"get thingy attributes": "GetThingyAttributes",
		"list thingy":           "ListThingy",
		"auth":                  "Auth",
		"get-device bundles":    "GetDeviceBundles",
		"set_up db":             "SetUpDb",
		"":                      "",
	}
	for in, want := range tests {
		if got := VariantName(in); got != want {
			t.Errorf("VariantName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestModuleName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Thingies":       "thingies",
		"DeviceCommands": "device_commands",
		"Sub Commands":   "sub_commands",
		"HTTP2":          "http2",
		"apiV2Calls":     "api_v2_calls",
	}
	for in, want := range tests {
		if got := ModuleName(in); got != want {
			t.Errorf("ModuleName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCommandUsage(t *testing.T) {
	t.Parallel()

	cmd := Command{
		Name: "get thingy attributes",
		Args: []Argument{{Name: "id", Required: true}, {Name: "key"}, {Name: "rest", Variadic: true}},
	}
	if got, want := cmd.Usage("attributes"), "attributes <id> [key] [rest]..."; got != want {
		t.Errorf("Usage() = %q, want %q", got, want)
	}
	if cmd.MinArgs() != 1 || cmd.MaxArgs() != -1 {
		t.Errorf("MinArgs() = %d, MaxArgs() = %d", cmd.MinArgs(), cmd.MaxArgs())
	}

	plain := Command{Name: "auth"}
	if plain.Usage("auth") != "auth" || plain.MaxArgs() != 0 {
		t.Errorf("plain usage = %q, max %d", plain.Usage("auth"), plain.MaxArgs())
	}
}
