// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"

	"github.com/z5labs/confload/internal/try"

	"gopkg.in/yaml.v3"
)

// InvalidYamlError occurs if a document contains invalid YAML.
type InvalidYamlError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidYamlError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidYamlError) Unwrap() error {
	return e.cause
}

// DecodeYaml decodes a YAML mapping into a Map. Nested mappings decode
// as Map too. An empty document decodes to an empty Map.
func DecodeYaml(b []byte) (Map, error) {
	m := make(Map)
	err := yaml.Unmarshal(b, &m)
	if err != nil {
		return nil, InvalidYamlError{cause: err}
	}
	return m, nil
}

// ReadYaml reads all of r and decodes it with DecodeYaml. If r is
// an io.Closer it will be closed.
func ReadYaml(r io.Reader) (m Map, err error) {
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeYaml(b)
}
