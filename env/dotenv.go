// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package env

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/z5labs/confload/internal/try"

	"github.com/spf13/afero"
	"github.com/subosito/gotenv"
)

// FileName is the conventional name of a dotenv file.
const FileName = ".env"

// InvalidDotenvError occurs if a dotenv file contains a malformed line.
type InvalidDotenvError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e InvalidDotenvError) Error() string {
	return fmt.Sprintf("invalid dotenv file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidDotenvError) Unwrap() error {
	return e.Cause
}

// Dotenv returns a Source reading KEY=value lines from the file at path.
// A file which does not exist supplies no pairs.
func Dotenv(fsys afero.Fs, path string) Source {
	return SourceFunc(func() (pairs map[string]string, err error) {
		f, err := fsys.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		defer try.Close(&err, f)

		e, err := gotenv.StrictParse(f)
		if err != nil {
			return nil, InvalidDotenvError{Path: path, Cause: err}
		}
		return e, nil
	})
}
