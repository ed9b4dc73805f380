// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"reflect"
)

// Merge folds docs, left to right, into a new Map.
//
// When both the accumulated value and the incoming value at a key are
// mappings they are merged recursively. When both are sequences the
// incoming entries are appended after the accumulated ones, duplicates
// included. In every other case the incoming value replaces the
// accumulated one. Keys missing from an incoming document are left as
// they are.
//
// Merge never mutates docs and the returned Map shares no mappings or
// sequences with them. Nil documents are skipped.
func Merge(docs ...Map) Map {
	out := make(Map)
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		mergeInto(out, doc)
	}
	return out
}

// dst only ever holds values produced by cloneValue, so it is safe
// to modify its nested mappings in place.
func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		cur, ok := dst[k]
		if !ok {
			dst[k] = cloneValue(v)
			continue
		}

		if cm, ok := asMap(cur); ok {
			if sm, ok := asMap(v); ok {
				mergeInto(cm, sm)
				continue
			}
		}
		if isSlice(cur) && isSlice(v) {
			dst[k] = concat(cur, v)
			continue
		}
		dst[k] = cloneValue(v)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case Map:
		return x, true
	case map[string]any:
		return x, true
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = v
		}
		return m, true
	default:
		return nil, false
	}
}

func isSlice(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Slice
}

// concat returns acc ++ inc. Sequences of the same type keep that type,
// mixed sequences become []any.
func concat(acc, inc any) any {
	av := reflect.ValueOf(acc)
	iv := reflect.ValueOf(cloneValue(inc))
	if av.Type() == iv.Type() {
		out := reflect.MakeSlice(av.Type(), 0, av.Len()+iv.Len())
		out = reflect.AppendSlice(out, av)
		out = reflect.AppendSlice(out, iv)
		return out.Interface()
	}

	out := make([]any, 0, av.Len()+iv.Len())
	for i := range av.Len() {
		out = append(out, av.Index(i).Interface())
	}
	for i := range iv.Len() {
		out = append(out, iv.Index(i).Interface())
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case Map:
		m := make(Map, len(x))
		for k, v := range x {
			m[k] = cloneValue(v)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = cloneValue(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = cloneValue(v)
		}
		return m
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return v
	}
	if rv.IsNil() {
		return v
	}

	// A clone may change type, e.g. map[any]any becomes map[string]any,
	// in which case the sequence can only be kept as []any.
	elemType := rv.Type().Elem()
	clones := make([]any, rv.Len())
	typed := true
	for i := range rv.Len() {
		c := cloneValue(rv.Index(i).Interface())
		clones[i] = c
		if c != nil && !reflect.TypeOf(c).AssignableTo(elemType) {
			typed = false
		}
	}
	if !typed {
		return clones
	}

	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	for i, c := range clones {
		if c == nil {
			continue
		}
		out.Index(i).Set(reflect.ValueOf(c))
	}
	return out.Interface()
}
