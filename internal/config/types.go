// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidServerConfig is returned for an unusable server section.
	ErrInvalidServerConfig = errors.New("invalid server config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidConfigError collects every field error of one Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the root configuration.
	Config struct {
		// Files lists declaration files loaded on every run.
		Files []string `json:"files" mapstructure:"files"`
		// Sets selects the sets to mount; empty mounts all of them.
		Sets   []string     `json:"sets" mapstructure:"sets"`
		UI     UIConfig     `json:"ui" mapstructure:"ui"`
		Runner RunnerConfig `json:"runner" mapstructure:"runner"`
		Server ServerConfig `json:"server" mapstructure:"server"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}

	// RunnerConfig configures script execution.
	RunnerConfig struct {
		// WorkDir is the script working directory; empty means the current one.
		WorkDir    string `json:"workdir" mapstructure:"workdir"`
		InheritEnv bool   `json:"inherit_env" mapstructure:"inherit_env"`
	}

	// ServerConfig configures `cmdtrie serve`.
	ServerConfig struct {
		Host string `json:"host" mapstructure:"host"`
		// Port 0 picks a free port.
		Port int `json:"port" mapstructure:"port"`
		// TokenTTL is how long a generated access token stays valid.
		TokenTTL time.Duration `json:"token_ttl" mapstructure:"token_ttl"`
	}
)

// IsValid returns whether the ColorScheme is a recognized value.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidColorScheme, c)}
	}
}

// GlamourStyle maps the scheme to a glamour style name.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is and the field errors for errors.As.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks the constraints the CUE schema cannot see, which matters
// for values that came from environment variables.
func (c *Config) Validate() error {
	var errs []error
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: port %d out of range", ErrInvalidServerConfig, c.Server.Port))
	}
	if c.Server.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: token_ttl must be positive", ErrInvalidServerConfig))
	}
	for i, f := range c.Files {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, fmt.Errorf("%w: files[%d] is empty", ErrInvalidConfig, i))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Files: []string{},
		Sets:  []string{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Runner: RunnerConfig{
			InheritEnv: true,
		},
		Server: ServerConfig{
			Host:     "127.0.0.1",
			Port:     2222,
			TokenTTL: 15 * time.Minute,
		},
	}
}
