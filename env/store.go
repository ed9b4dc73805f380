// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package env

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

// MissingRequiredVarError occurs when a required variable is not
// present in any layer.
type MissingRequiredVarError struct {
	Name string
}

// Error implements the error interface.
func (e MissingRequiredVarError) Error() string {
	return fmt.Sprintf("environment variable '%s' is not set", e.Name)
}

// InvalidBoolError occurs when a variable used as a flag holds a value
// which can not be interpreted as a boolean.
type InvalidBoolError struct {
	Name  string
	Value string
	Cause error
}

// Error implements the error interface.
func (e InvalidBoolError) Error() string {
	return fmt.Sprintf("environment variable '%s' is not a valid boolean: %q", e.Name, e.Value)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidBoolError) Unwrap() error {
	return e.Cause
}

// Option configures a Store.
type Option func(*Store)

// Environ sets the function used to snapshot the process environment.
// It defaults to os.Environ.
func Environ(f func() []string) Option {
	return func(s *Store) {
		s.environ = f
	}
}

// Fallback sets the OS level lookup consulted after the process
// environment. It defaults to os.LookupEnv.
func Fallback(f func(string) (string, bool)) Option {
	return func(s *Store) {
		s.fallback = f
	}
}

// Store resolves variables from explicit overrides, the process
// environment and an OS level fallback, in that order.
type Store struct {
	environ  func() []string
	fallback func(string) (string, bool)

	mu        sync.RWMutex
	overrides map[string]string
	process   map[string]string
}

// New returns a Store whose process layer is a snapshot of the
// environment taken now.
func New(opts ...Option) *Store {
	s := &Store{
		environ:   os.Environ,
		fallback:  os.LookupEnv,
		overrides: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.process = mapEnv(s.environ())
	return s
}

func mapEnv(pairs []string) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}

// Lookup returns the value of name from the first layer that has it.
func (s *Store) Lookup(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.overrides[name]; ok {
		return v, true
	}
	if v, ok := s.process[name]; ok {
		return v, true
	}
	if s.fallback == nil {
		return "", false
	}
	return s.fallback(name)
}

// Get returns the value of name or def if no layer has it.
func (s *Store) Get(name, def string) string {
	v, ok := s.Lookup(name)
	if !ok {
		return def
	}
	return v
}

// Require returns the value of name or a MissingRequiredVarError.
func (s *Store) Require(name string) (string, error) {
	v, ok := s.Lookup(name)
	if !ok {
		return "", MissingRequiredVarError{Name: name}
	}
	return v, nil
}

type resolveOptions struct {
	def      string
	hasDef   bool
	required bool
}

// ResolveOption customizes Resolve.
type ResolveOption func(*resolveOptions)

// Default is returned by Resolve when no layer has the variable.
func Default(v string) ResolveOption {
	return func(ro *resolveOptions) {
		ro.def = v
		ro.hasDef = true
	}
}

// Required makes Resolve fail when no layer has the variable. Any
// Default is ignored.
func Required() ResolveOption {
	return func(ro *resolveOptions) {
		ro.required = true
	}
}

// Resolve looks up name. ok reports whether the returned value came from
// a layer or from a Default; it is false when neither applied.
func (s *Store) Resolve(name string, opts ...ResolveOption) (value string, ok bool, err error) {
	var ro resolveOptions
	for _, opt := range opts {
		opt(&ro)
	}

	v, found := s.Lookup(name)
	switch {
	case found:
		return v, true, nil
	case ro.required:
		return "", false, MissingRequiredVarError{Name: name}
	case ro.hasDef:
		return ro.def, true, nil
	default:
		return "", false, nil
	}
}

// Bool interprets name as a boolean-like flag. An absent variable yields
// def and an empty one yields false.
func (s *Store) Bool(name string, def bool) (bool, error) {
	v, ok := s.Lookup(name)
	if !ok {
		return def, nil
	}
	return ParseBool(name, v)
}

// ParseBool interprets value as a boolean-like flag. The empty string
// is false. Otherwise 1, t, T, TRUE, true, True, 0, f, F, FALSE, false
// and False are accepted, surrounding whitespace ignored.
func ParseBool(name, value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return false, InvalidBoolError{Name: name, Value: value, Cause: err}
	}
	return b, nil
}

// Set explicitly overrides name. Overrides take precedence immediately.
func (s *Store) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides[name] = value
}

// Unset removes the explicit override for name, if any.
func (s *Store) Unset(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.overrides, name)
}

// ResetOverrides drops every explicit override.
func (s *Store) ResetOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.overrides)
}

// Seed adds every pair whose name no layer has yet to the process
// environment. The names that were added are returned in sorted order.
func (s *Store) Seed(pairs map[string]string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seeded []string
	for k, v := range pairs {
		if _, ok := s.overrides[k]; ok {
			continue
		}
		if _, ok := s.process[k]; ok {
			continue
		}
		if s.fallback != nil {
			if _, ok := s.fallback(k); ok {
				continue
			}
		}
		s.process[k] = v
		seeded = append(seeded, k)
	}
	slices.Sort(seeded)
	return seeded
}

// Source supplies name value pairs for seeding.
type Source interface {
	Pairs() (map[string]string, error)
}

// SourceFunc is a functional implementation of the Source interface.
type SourceFunc func() (map[string]string, error)

// Pairs implements the Source interface.
func (f SourceFunc) Pairs() (map[string]string, error) {
	return f()
}

// SeedFrom seeds the Store with the pairs supplied by src. A nil src
// is a no-op.
func (s *Store) SeedFrom(src Source) ([]string, error) {
	if src == nil {
		return nil, nil
	}
	pairs, err := src.Pairs()
	if err != nil {
		return nil, err
	}
	return s.Seed(pairs), nil
}

var defaultStore = sync.OnceValue(func() *Store {
	return New()
})

// DefaultStore returns the process-wide Store, created on first use.
func DefaultStore() *Store {
	return defaultStore()
}
