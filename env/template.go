// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package env

import "text/template"

// FuncMap exposes the Store to config templates:
//
//	{{ env "NAME" }}            value or empty string
//	{{ env "NAME" "fallback" }} value or fallback
//	{{ required "NAME" }}       value or a MissingRequiredVarError
func (s *Store) FuncMap() template.FuncMap {
	return template.FuncMap{
		"env": func(name string, def ...string) string {
			var d string
			if len(def) > 0 {
				d = def[0]
			}
			return s.Get(name, d)
		},
		"required": s.Require,
	}
}
