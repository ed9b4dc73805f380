// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/z5labs/confload"
	"github.com/z5labs/confload/config"
	"github.com/z5labs/confload/config/key"
	"github.com/z5labs/confload/env"
	"github.com/z5labs/confload/internal/try"

	cenv "github.com/caarlos0/env/v11"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// defaults are read from the environment before flags are parsed.
type defaults struct {
	Dir    string `env:"CONFLOAD_DIR" envDefault:"."`
	Output string `env:"CONFLOAD_OUTPUT" envDefault:"yaml"`
}

// UnsupportedOutputError occurs when asked to print in an unknown format.
type UnsupportedOutputError struct {
	Format string
}

// Error implements the error interface.
func (e UnsupportedOutputError) Error() string {
	return fmt.Sprintf("unsupported output format: %q", e.Format)
}

// InvalidSetError occurs when a --set flag is not of the form key=value.
type InvalidSetError struct {
	Value string
}

// Error implements the error interface.
func (e InvalidSetError) Error() string {
	return fmt.Sprintf("invalid --set value, expected key=value: %q", e.Value)
}

type cli struct {
	fs          afero.Fs
	store       *env.Store
	initializer *confload.Initializer
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
}

type flags struct {
	dir    string
	output string
	debug  bool
	local  bool
	sets   []string
	files  []string
	defVal string
}

func newCommand(c cli) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "confload",
		Short:         "Print the assembled configuration of an application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			d, err := cenv.ParseAsWithOptions[defaults](cenv.Options{
				Environment: c.environ(),
			})
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") {
				f.dir = d.Dir
			}
			if !cmd.Flags().Changed("output") {
				f.output = d.Output
			}
			return nil
		},
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.dir, "dir", "", "application directory (default $CONFLOAD_DIR or .)")
	pf.StringVarP(&f.output, "output", "o", "", "output format, yaml or json (default $CONFLOAD_OUTPUT or yaml)")
	pf.BoolVar(&f.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		c.buildCommand(&f, confload.Web, "web", "Print the web configuration"),
		c.buildCommand(&f, confload.Console, "console", "Print the console configuration"),
		c.buildCommand(&f, "", "build <target>", "Print the configuration of any target"),
		c.envCommand(&f),
	)
	return root
}

// environ gives caarlos0/env a view of the env.Store so both agree on
// what is set.
func (c cli) environ() map[string]string {
	m := make(map[string]string)
	for _, name := range []string{"CONFLOAD_DIR", "CONFLOAD_OUTPUT"} {
		if v, ok := c.store.Lookup(name); ok {
			m[name] = v
		}
	}
	return m
}

func (c cli) buildCommand(f *flags, target, use, short string) *cobra.Command {
	args := cobra.NoArgs
	if target == "" {
		args = cobra.ExactArgs(1)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			name := target
			if name == "" {
				name = args[0]
			}

			docs, err := c.readFiles(f.files)
			if err != nil {
				return err
			}

			sets := make(config.Map)
			err = applySets(sets, f.sets)
			if err != nil {
				return err
			}
			overrides := config.Merge(append(docs, sets)...)

			opts := []confload.BuildOption{confload.WithOverrides(overrides)}
			if cmd.Flags().Changed("local") {
				opts = append(opts, confload.WithLocal(f.local))
			}

			cfg, log, err := c.newConfig(f)
			if err != nil {
				return err
			}
			defer log.Sync()

			m, err := cfg.Build(cmd.Context(), name, opts...)
			if err != nil {
				return err
			}
			return write(c.stdout, f.output, m)
		},
	}
	cmd.Flags().BoolVar(&f.local, "local", false, "merge the local config file (default $ENABLE_LOCALCONF)")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "override a value, e.g. --set db.host=localhost")
	cmd.Flags().StringArrayVarP(&f.files, "file", "f", nil, "merge a YAML or JSON override document, - reads YAML from stdin")
	return cmd
}

func (c cli) envCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env <name>",
		Short: "Print an environment variable after seeding from .env",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			cfg, log, err := c.newConfig(f)
			if err != nil {
				return err
			}
			defer log.Sync()

			opt := env.Required()
			if cmd.Flags().Changed("default") {
				opt = env.Default(f.defVal)
			}

			v, _, err := cfg.Env().Resolve(args[0], opt)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.stdout, v)
			return err
		},
	}
	cmd.Flags().StringVar(&f.defVal, "default", "", "value printed if the variable is not set")
	return cmd
}

func (c cli) newConfig(f *flags) (*confload.Config, *zap.Logger, error) {
	lvl := zap.NewAtomicLevelAt(zap.WarnLevel)
	if f.debug {
		lvl.SetLevel(zap.DebugLevel)
	}

	log := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(c.stderr),
		lvl,
	))

	opts := []confload.Option{
		confload.FS(c.fs),
		confload.EnvStore(c.store),
		confload.Logger(log),
		confload.LogLevel(lvl),
	}
	if c.initializer != nil {
		opts = append(opts, confload.WithInitializer(c.initializer))
	}

	cfg, err := confload.New(f.dir, opts...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// readFiles decodes override documents in order. Files ending in .json
// are read as JSON, everything else as YAML.
func (c cli) readFiles(paths []string) ([]config.Map, error) {
	docs := make([]config.Map, 0, len(paths))
	for _, path := range paths {
		var r io.Reader
		if path == "-" {
			r = io.NopCloser(c.stdin)
		} else {
			f, err := c.fs.Open(path)
			if err != nil {
				return nil, err
			}
			r = f
		}

		read := config.ReadYaml
		if strings.EqualFold(filepath.Ext(path), ".json") {
			read = config.ReadJson
		}

		m, err := read(r)
		if err != nil {
			return nil, err
		}
		docs = append(docs, m)
	}
	return docs, nil
}

// applySets sets every key=value pair on s. Values are decoded as YAML
// so numbers, bools and flow sequences keep their type.
func applySets(s config.Store, sets []string) error {
	for _, set := range sets {
		k, raw, ok := strings.Cut(set, "=")
		if !ok || k == "" {
			return InvalidSetError{Value: set}
		}

		var v any
		err := yaml.Unmarshal([]byte(raw), &v)
		if err != nil || v == nil {
			v = raw
		}

		err = s.Set(key.Parse(k), v)
		if err != nil {
			return err
		}
	}
	return nil
}

func write(w io.Writer, format string, m config.Map) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(m)
		if err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	default:
		return UnsupportedOutputError{Format: format}
	}
}
