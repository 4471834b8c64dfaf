// SPDX-License-Identifier: MPL-2.0

package cmdfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"cmdtrie-cli/pkg/cueutil"
)

//go:embed cmdfile_schema.cue
var cmdfileSchema string

// ErrUnsupportedFormat is returned for files that are neither .cue nor .toml.
var ErrUnsupportedFormat = errors.New("unsupported declaration file format")

// Parse reads and parses the declaration file at path.
// The decoder is chosen by file extension.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses declaration file content. path selects the format and
// is used in error messages.
func ParseBytes(data []byte, path string) (*File, error) {
	var (
		f   *File
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		f, err = cueutil.Decode[File](cmdfileSchema, data, "#File", cueutil.WithFilename(path))
	case ".toml":
		f, err = parseTOML(data, path)
	default:
		return nil, fmt.Errorf("%s: %w %q (expected .cue or .toml)", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	f.Path = path
	for i := range f.Sets {
		f.Sets[i].Source = path
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func parseTOML(data []byte, path string) (*File, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %s", path, row, col, derr.Error())
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("%s: unknown fields:\n%s", path, serr.String())
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}
