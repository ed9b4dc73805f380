// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confload

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
)

// Names of the built-in targets.
const (
	Web     = "web"
	Console = "console"
)

// Target is a named configuration profile.
type Target struct {
	// Name identifies the target.
	Name string

	// File is the base config file. It must exist.
	File string

	// LocalFile holds local overrides. It is only merged when local
	// config is enabled and is skipped if it does not exist.
	LocalFile string

	// Extends names another target which is built first, with local
	// config decided by the environment alone, and merged underneath
	// this target's files.
	Extends string
}

func defaultTargets() map[string]Target {
	return map[string]Target{
		Web: {
			Name:      Web,
			File:      "web.yaml",
			LocalFile: "local.yaml",
		},
		Console: {
			Name:      Console,
			File:      "console.yaml",
			LocalFile: "local-console.yaml",
		},
	}
}

func registerTargets(targets map[string]Target, ts ...Target) error {
	for _, t := range ts {
		existing, ok := targets[t.Name]
		if ok {
			err := mergo.Merge(&t, existing)
			if err != nil {
				return err
			}
		}
		if t.File == "" {
			return InvalidTargetError{Name: t.Name, Reason: "no base file"}
		}
		targets[t.Name] = t
	}
	return nil
}

// UnknownTargetError occurs when building a target which has not been registered.
type UnknownTargetError struct {
	Name string
}

// Error implements the error interface.
func (e UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown config target: %q", e.Name)
}

// InvalidTargetError occurs when registering an incomplete Target.
type InvalidTargetError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid config target %q: %s", e.Name, e.Reason)
}

// ExtendsCycleError occurs when targets extend each other in a cycle.
type ExtendsCycleError struct {
	Targets []string
}

// Error implements the error interface.
func (e ExtendsCycleError) Error() string {
	return fmt.Sprintf("config targets extend each other in a cycle: %s", strings.Join(e.Targets, " -> "))
}
