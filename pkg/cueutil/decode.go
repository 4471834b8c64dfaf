// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Decode validates data against the definition at schemaPath inside schema
// and decodes the unified value into a new T.
func Decode[T any](schema string, data []byte, schemaPath string, opts ...Option) (*T, error) {
	unified, filename, err := Unify(schema, data, schemaPath, opts...)
	if err != nil {
		return nil, err
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}
	return &result, nil
}

// Unify performs the compile, unify and validate steps of Decode and returns
// the validated value for callers that decode into something other than a
// struct (for example a map merged into viper).
func Unify(schema string, data []byte, schemaPath string, opts ...Option) (cue.Value, string, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	filename := options.filename

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return cue.Value{}, filename, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, filename, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return cue.Value{}, filename, FormatError(userValue.Err(), filename)
	}

	def := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if def.Err() != nil {
		return cue.Value{}, filename, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, def.Err())
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return cue.Value{}, filename, FormatError(err, filename)
	}

	return unified, filename, nil
}

// CheckFileSize reports an error when data exceeds maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}
