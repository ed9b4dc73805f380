// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"bytes"
	"fmt"
	"reflect"
	"text/template"
)

// TextTemplateParseError occurs when a config document fails to be parsed
// as a text/template.
type TextTemplateParseError struct {
	Cause error
}

// Error implements the error interface.
func (e TextTemplateParseError) Error() string {
	return fmt.Sprintf("failed to parse config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TextTemplateParseError) Unwrap() error {
	return e.Cause
}

// TextTemplateExecError occurs when a template fails to execute. Most
// likely cause is using template functions returning an error or panicing.
type TextTemplateExecError struct {
	Cause error
}

// Error implements the error interface.
func (e TextTemplateExecError) Error() string {
	return fmt.Sprintf("failed to exec config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TextTemplateExecError) Unwrap() error {
	return e.Cause
}

type textTemplate struct {
	leftDelim  string
	rightDelim string
	funcs      template.FuncMap
}

func (tt textTemplate) render(name string, b []byte) ([]byte, error) {
	tmpl, err := template.New(name).
		Delims(tt.leftDelim, tt.rightDelim).
		Funcs(tt.funcs).
		Parse(string(b))
	if err != nil {
		return nil, TextTemplateParseError{Cause: err}
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct{}{})
	if err != nil {
		return nil, TextTemplateExecError{Cause: err}
	}
	return buf.Bytes(), nil
}

// defaultValue returns def if v is either nil or the zero value for its type.
func defaultValue(def, v any) any {
	if v == nil {
		return def
	}
	if reflect.ValueOf(v).IsZero() {
		return def
	}
	return v
}
