// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confload

import (
	"path/filepath"
	"sync"

	"github.com/z5labs/confload/env"

	"go.uber.org/zap"
)

// VarNames holds the names of the environment variables confload reacts to.
type VarNames struct {
	// Debug enables debug mode.
	Debug string

	// Environment names the environment, e.g. "dev" or "prod".
	Environment string

	// LocalConf enables merging of local config overrides.
	LocalConf string
}

// DefaultVarNames are used unless overridden with Vars.
var DefaultVarNames = VarNames{
	Debug:       "APP_DEBUG",
	Environment: "APP_ENV",
	LocalConf:   "ENABLE_LOCALCONF",
}

// Settings are the process-wide settings derived from the environment.
// The zero value has neither setting published.
type Settings struct {
	debug    bool
	debugSet bool
	env      string
	envSet   bool
}

// Debug reports whether debug mode is enabled. ok is false if the debug
// variable was not set at all.
func (s Settings) Debug() (enabled bool, ok bool) {
	return s.debug, s.debugSet
}

// Environment returns the environment name. ok is false if the
// environment variable was not set.
func (s Settings) Environment() (name string, ok bool) {
	return s.env, s.envSet
}

// Initializer derives Settings from the environment and publishes them
// once. The zero value is ready to use.
//
// Every call to Init seeds its env.Store from the .env file. Only the
// first successful call publishes Settings; later calls return those same
// Settings without resolving them again, even if the environment has
// changed in the meantime.
type Initializer struct {
	mu        sync.Mutex
	published bool
	settings  Settings
}

// Settings returns the published Settings. ok is false if Init has not
// succeeded yet.
func (i *Initializer) Settings() (s Settings, ok bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.settings, i.published
}

// Init seeds the env.Store from dir/.env, if dir is not empty and the file
// exists, and then resolves the debug and environment variables unless
// Settings have already been published.
//
// When debug mode is enabled the level registered with LogLevel is
// lowered to debug.
func (i *Initializer) Init(dir string, opts ...Option) (Settings, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	o := newOptions(opts...)
	log := o.logger

	if dir != "" {
		path := filepath.Join(dir, env.FileName)
		seeded, err := o.store.SeedFrom(env.Dotenv(o.fs, path))
		if err != nil {
			return Settings{}, err
		}
		if len(seeded) > 0 {
			log.Debug("seeded environment", zap.String("path", path), zap.Strings("vars", seeded))
		}
	}

	if i.published {
		return i.settings, nil
	}

	var s Settings
	if v, ok := o.store.Lookup(o.vars.Debug); ok {
		debug, err := env.ParseBool(o.vars.Debug, v)
		if err != nil {
			return Settings{}, err
		}
		s.debug = debug
		s.debugSet = true
	}
	if v, ok := o.store.Lookup(o.vars.Environment); ok {
		s.env = v
		s.envSet = true
	}

	if s.debug && o.level != nil {
		o.level.SetLevel(zap.DebugLevel)
	}

	i.settings = s
	i.published = true

	log.Info(
		"initialized environment",
		zap.Bool("debug", s.debug),
		zap.String("environment", s.env),
	)
	return s, nil
}

var std Initializer

// InitEnv initializes the environment through the process-wide Initializer.
// See Initializer.Init.
func InitEnv(dir string, opts ...Option) (Settings, error) {
	return std.Init(dir, opts...)
}

// CurrentSettings returns the Settings published by the process-wide
// Initializer.
func CurrentSettings() (Settings, bool) {
	return std.Settings()
}
