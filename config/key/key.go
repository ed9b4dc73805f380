// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides types for addressing values nested inside a config document.
package key

import (
	"strings"
)

// Keyer is a common interface all document key types must implement.
type Keyer interface {
	Key() string
}

// Chain represents a path through nested mappings.
type Chain []Keyer

// Key implements the [Keyer] interface.
func (k Chain) Key() string {
	ss := make([]string, len(k))
	for i := range len(k) {
		ss[i] = k[i].Key()
	}
	return strings.Join(ss, ".")
}

// Name represents a single mapping key.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// Parse splits a dotted path like "components.db.dsn" into a [Chain].
// Empty segments are dropped so "a..b" and "a.b" address the same value.
func Parse(path string) Chain {
	var chain Chain
	for _, s := range strings.Split(path, ".") {
		if s == "" {
			continue
		}
		chain = append(chain, Name(s))
	}
	return chain
}
