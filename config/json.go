// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/z5labs/confload/internal/try"
)

// InvalidJsonError occurs if a document contains invalid JSON.
type InvalidJsonError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidJsonError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidJsonError) Unwrap() error {
	return e.cause
}

// DecodeJson decodes a JSON object into a Map. Numbers decode as float64.
func DecodeJson(b []byte) (Map, error) {
	m := make(Map)
	err := json.Unmarshal(b, &m)
	if err != nil {
		return nil, InvalidJsonError{cause: err}
	}
	return m, nil
}

// ReadJson reads all of r and decodes it with DecodeJson. If r is
// an io.Closer it will be closed.
func ReadJson(r io.Reader) (m Map, err error) {
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeJson(b)
}
