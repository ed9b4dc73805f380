// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confload

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/z5labs/confload/config"
	"github.com/z5labs/confload/env"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// MissingRequiredFileError occurs when a required config file does not exist.
type MissingRequiredFileError struct {
	Path string
}

// Error implements the error interface.
func (e MissingRequiredFileError) Error() string {
	return fmt.Sprintf("config file '%s' does not exist", e.Path)
}

// Config builds configuration documents for an application directory.
type Config struct {
	dir       string
	configDir string
	fs        afero.Fs
	store     *env.Store
	vars      VarNames
	loader    config.Loader
	targets   map[string]Target
	log       *zap.Logger
	settings  Settings
}

// New returns a Config for the application rooted at dir.
//
// Unless SkipEnvInit is given the environment is initialized first,
// see Initializer.Init.
func New(dir string, opts ...Option) (*Config, error) {
	o := newOptions(opts...)

	targets := defaultTargets()
	err := registerTargets(targets, o.targets...)
	if err != nil {
		return nil, err
	}

	c := &Config{
		dir:       dir,
		configDir: o.configDir,
		fs:        o.fs,
		store:     o.store,
		vars:      o.vars,
		loader:    o.loader,
		targets:   targets,
		log:       o.logger,
	}
	if c.loader == nil {
		c.loader = config.NewFileLoader(o.fs, config.TemplateFuncs(o.store.FuncMap()))
	}

	if o.skipInit {
		return c, nil
	}

	initializer := o.init
	if initializer == nil {
		initializer = &std
	}
	c.settings, err = initializer.Init(dir, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Dir returns the application directory.
func (c *Config) Dir() string {
	return c.dir
}

// Env returns the env.Store variables are resolved from.
func (c *Config) Env() *env.Store {
	return c.store
}

// Settings returns the Settings published when c was created. They are
// the zero Settings if SkipEnvInit was given.
func (c *Config) Settings() Settings {
	return c.settings
}

// ConfigFile returns the path of the config file with the given name.
// If the file does not exist and is required a MissingRequiredFileError
// is returned, otherwise the path is empty.
func (c *Config) ConfigFile(name string, required bool) (string, error) {
	path := filepath.Join(c.dir, c.configDir, name)
	exists, err := afero.Exists(c.fs, path)
	if err != nil {
		return "", err
	}
	if exists {
		return path, nil
	}
	if required {
		return "", MissingRequiredFileError{Path: path}
	}
	return "", nil
}

type buildOptions struct {
	overrides config.Map
	local     *bool
}

// BuildOption customizes a single Build.
type BuildOption func(*buildOptions)

// WithOverrides merges m on top of every config file.
func WithOverrides(m config.Map) BuildOption {
	return func(bo *buildOptions) {
		bo.overrides = m
	}
}

// WithLocal explicitly enables or disables merging the target's local
// config file. Without it the LocalConf environment variable decides.
func WithLocal(local bool) BuildOption {
	return func(bo *buildOptions) {
		bo.local = &local
	}
}

// Build assembles the document for the named target: its base file,
// the local file if enabled and present, and any overrides, merged in
// that order with config.Merge.
func (c *Config) Build(ctx context.Context, target string, opts ...BuildOption) (config.Map, error) {
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}
	return c.build(ctx, target, bo, nil)
}

// Web builds the "web" target.
func (c *Config) Web(ctx context.Context, opts ...BuildOption) (config.Map, error) {
	return c.Build(ctx, Web, opts...)
}

// Console builds the "console" target.
func (c *Config) Console(ctx context.Context, opts ...BuildOption) (config.Map, error) {
	return c.Build(ctx, Console, opts...)
}

// Unmarshal builds the named target and decodes it into v.
func (c *Config) Unmarshal(ctx context.Context, target string, v any, opts ...BuildOption) error {
	m, err := c.Build(ctx, target, opts...)
	if err != nil {
		return err
	}
	return config.Unmarshal(m, v)
}

// MergeFiles loads the given files in order and merges them, followed
// by overrides.
func (c *Config) MergeFiles(ctx context.Context, files []string, overrides config.Map) (config.Map, error) {
	docs, err := c.load(ctx, files)
	if err != nil {
		return nil, err
	}
	return config.Merge(append(docs, overrides)...), nil
}

func (c *Config) build(ctx context.Context, name string, bo buildOptions, seen []string) (config.Map, error) {
	t, ok := c.targets[name]
	if !ok {
		return nil, UnknownTargetError{Name: name}
	}
	if slices.Contains(seen, name) {
		return nil, ExtendsCycleError{Targets: append(seen, name)}
	}
	seen = append(seen, name)

	files, err := c.targetFiles(t, bo.local)
	if err != nil {
		return nil, err
	}

	var docs []config.Map
	if t.Extends != "" {
		parent, err := c.build(ctx, t.Extends, buildOptions{}, seen)
		if err != nil {
			return nil, err
		}
		docs = append(docs, parent)
	}

	loaded, err := c.load(ctx, files)
	if err != nil {
		return nil, err
	}
	docs = append(docs, loaded...)
	docs = append(docs, bo.overrides)
	return config.Merge(docs...), nil
}

func (c *Config) targetFiles(t Target, local *bool) ([]string, error) {
	base, err := c.ConfigFile(t.File, true)
	if err != nil {
		return nil, err
	}
	files := []string{base}

	useLocal, err := c.useLocal(local)
	if err != nil {
		return nil, err
	}
	if !useLocal || t.LocalFile == "" {
		return files, nil
	}

	localFile, err := c.ConfigFile(t.LocalFile, false)
	if err != nil {
		return nil, err
	}
	if localFile != "" {
		files = append(files, localFile)
	}
	return files, nil
}

func (c *Config) useLocal(local *bool) (bool, error) {
	if local != nil {
		return *local, nil
	}
	return c.store.Bool(c.vars.LocalConf, false)
}

func (c *Config) load(ctx context.Context, files []string) ([]config.Map, error) {
	docs := make([]config.Map, 0, len(files))
	for _, f := range files {
		c.log.Debug("loading config file", zap.String("path", f))

		m, err := c.loader.Load(ctx, f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, m)
	}
	return docs, nil
}
