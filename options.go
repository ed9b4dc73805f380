// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confload

import (
	"github.com/z5labs/confload/config"
	"github.com/z5labs/confload/env"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type options struct {
	fs        afero.Fs
	store     *env.Store
	vars      VarNames
	logger    *zap.Logger
	level     *zap.AtomicLevel
	configDir string
	loader    config.Loader
	targets   []Target
	skipInit  bool
	init      *Initializer
}

func newOptions(opts ...Option) options {
	o := options{
		fs:        afero.NewOsFs(),
		vars:      DefaultVarNames,
		logger:    zap.NewNop(),
		configDir: "config",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = env.DefaultStore()
	}
	return o
}

// Option configures a Config or a call to InitEnv.
type Option func(*options)

// FS sets the filesystem config files and the .env file are read from.
// It defaults to the OS filesystem.
func FS(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// EnvStore sets the env.Store variables are resolved from and seeded
// into. It defaults to env.DefaultStore.
func EnvStore(s *env.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// Vars overrides the names of the recognized environment variables.
// Empty names keep their default.
func Vars(v VarNames) Option {
	return func(o *options) {
		if v.Debug != "" {
			o.vars.Debug = v.Debug
		}
		if v.Environment != "" {
			o.vars.Environment = v.Environment
		}
		if v.LocalConf != "" {
			o.vars.LocalConf = v.LocalConf
		}
	}
}

// Logger sets the logger. It defaults to a no-op logger.
func Logger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// LogLevel registers the level that is raised to debug once the debug
// variable turns out to be enabled.
func LogLevel(lvl zap.AtomicLevel) Option {
	return func(o *options) {
		o.level = &lvl
	}
}

// ConfigDir sets the directory, relative to the application directory,
// config files live in. It defaults to "config".
func ConfigDir(dir string) Option {
	return func(o *options) {
		o.configDir = dir
	}
}

// WithLoader replaces the config.Loader used to materialize config files.
// By default a config.FileLoader is used with the env.Store's template
// functions registered.
func WithLoader(l config.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithTarget registers a target profile. When t names an existing profile
// any field left empty is taken from that profile.
func WithTarget(t Target) Option {
	return func(o *options) {
		o.targets = append(o.targets, t)
	}
}

// SkipEnvInit stops New from initializing the environment.
func SkipEnvInit() Option {
	return func(o *options) {
		o.skipInit = true
	}
}

// WithInitializer sets the Initializer New publishes its Settings
// through. It defaults to the process-wide Initializer used by InitEnv.
func WithInitializer(i *Initializer) Option {
	return func(o *options) {
		o.init = i
	}
}
