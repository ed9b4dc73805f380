// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// InvalidFormatError occurs if viper fails to parse a document in the given format.
type InvalidFormatError struct {
	Format string
	cause  error
}

// Error implements the error interface.
func (e InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Format, e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidFormatError) Unwrap() error {
	return e.cause
}

// ViperDecoder returns a Decoder for any format viper understands,
// e.g. "toml", "hcl", "ini" or "properties".
//
// Viper treats keys case-insensitively so every mapping key in the
// decoded document is lowercased.
func ViperDecoder(format string) Decoder {
	return DecoderFunc(func(b []byte) (Map, error) {
		v := viper.New()
		v.SetConfigType(format)
		err := v.ReadConfig(bytes.NewReader(b))
		if err != nil {
			return nil, InvalidFormatError{Format: format, cause: err}
		}
		return Map(v.AllSettings()), nil
	})
}
