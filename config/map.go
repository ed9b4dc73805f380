// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"

	"github.com/z5labs/confload/config/key"
)

// Map is a config document: a tree of mappings, sequences and scalars.
// Nested mappings may be either Map or map[string]any.
type Map map[string]any

// Store represents a general key value structure.
type Store interface {
	Set(key.Keyer, any) error
}

// UnknownKeyerError occurs when a key.Keyer implementation other than
// key.Name or key.Chain is used to address a document.
type UnknownKeyerError struct {
	Keyer key.Keyer
}

// Error implements the error interface.
func (e UnknownKeyerError) Error() string {
	return fmt.Sprintf("unknown key.Keyer used to address config document: %s", e.Keyer.Key())
}

// EmptyKeyChainError occurs when a value is set with an empty key.Chain.
type EmptyKeyChainError struct {
	Value any
}

// Error implements the error interface.
func (e EmptyKeyChainError) Error() string {
	return fmt.Sprintf("attempted to set value to an empty key chain: %v", e.Value)
}

// UnexpectedKeyValueTypeError represents the situation when a key chain
// tries to descend through a value that is not a mapping.
type UnexpectedKeyValueTypeError struct {
	Key          string
	ExpectedType string
}

// Error implements the error interface.
func (e UnexpectedKeyValueTypeError) Error() string {
	return fmt.Sprintf("expected key value to be a %s: %s", e.ExpectedType, e.Key)
}

// Set implements the Store interface. Intermediate mappings along a
// key.Chain are created as needed.
func (m Map) Set(k key.Keyer, v any) error {
	return set(m, k, v)
}

func set(m map[string]any, k key.Keyer, v any) error {
	switch x := k.(type) {
	case key.Name:
		m[string(x)] = v
	case key.Chain:
		return setKeyChain(m, x, v)
	default:
		return UnknownKeyerError{Keyer: k}
	}
	return nil
}

func setKeyChain(m map[string]any, chain key.Chain, v any) error {
	if len(chain) == 0 {
		return EmptyKeyChainError{Value: v}
	}

	root := chain[0]
	if len(chain) == 1 {
		return set(m, root, v)
	}

	old, ok := m[root.Key()]
	if !ok {
		old = make(map[string]any)
		m[root.Key()] = old
	}

	var sub map[string]any
	switch x := old.(type) {
	case Map:
		sub = x
	case map[string]any:
		sub = x
	default:
		return UnexpectedKeyValueTypeError{
			Key:          root.Key(),
			ExpectedType: "map[string]any",
		}
	}
	return set(sub, chain[1:], v)
}

// Lookup returns the value addressed by k, descending through nested
// mappings for a key.Chain.
func (m Map) Lookup(k key.Keyer) (any, bool) {
	switch x := k.(type) {
	case key.Name:
		v, ok := m[string(x)]
		return v, ok
	case key.Chain:
		if len(x) == 0 {
			return nil, false
		}
		var cur any = map[string]any(m)
		for _, name := range x {
			sub, ok := asMap(cur)
			if !ok {
				return nil, false
			}
			cur, ok = sub[name.Key()]
			if !ok {
				return nil, false
			}
		}
		return cur, true
	default:
		return nil, false
	}
}

// Clone returns a deep copy of m. Nested mappings and sequences keep
// their concrete types.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	return cloneValue(m).(Map)
}
