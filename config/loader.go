// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/z5labs/confload/internal/try"

	"github.com/spf13/afero"
)

// Loader materializes the document stored at a resolved path.
type Loader interface {
	Load(ctx context.Context, path string) (Map, error)
}

// LoaderFunc is a functional implementation of the Loader interface.
type LoaderFunc func(context.Context, string) (Map, error)

// Load implements the Loader interface.
func (f LoaderFunc) Load(ctx context.Context, path string) (Map, error) {
	return f(ctx, path)
}

// Decoder turns raw document bytes into a Map.
type Decoder interface {
	Decode([]byte) (Map, error)
}

// DecoderFunc is a functional implementation of the Decoder interface.
type DecoderFunc func([]byte) (Map, error)

// Decode implements the Decoder interface.
func (f DecoderFunc) Decode(b []byte) (Map, error) {
	return f(b)
}

// UnsupportedFormatError occurs when no Decoder is registered for
// a file's extension.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

// Error implements the error interface.
func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no decoder registered for extension %q: %s", e.Ext, e.Path)
}

// LoadError annotates a failure to load a document with its path.
type LoadError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e LoadError) Error() string {
	return fmt.Sprintf("failed to load config file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e LoadError) Unwrap() error {
	return e.Cause
}

// FileLoaderOption represents options for configuring a FileLoader.
type FileLoaderOption func(*FileLoader)

// TemplateFunc registers the given function, f, for use in config
// templates via the given name.
func TemplateFunc(name string, f any) FileLoaderOption {
	return func(fl *FileLoader) {
		fl.tmpl.funcs[name] = f
	}
}

// TemplateFuncs registers every function in fm for use in config templates.
func TemplateFuncs(fm template.FuncMap) FileLoaderOption {
	return func(fl *FileLoader) {
		for name, f := range fm {
			fl.tmpl.funcs[name] = f
		}
	}
}

// TemplateDelims sets the action delimiters to the specified strings.
// An empty delimiter stands for the corresponding default: {{ or }}.
func TemplateDelims(left, right string) FileLoaderOption {
	return func(fl *FileLoader) {
		fl.tmpl.leftDelim = left
		fl.tmpl.rightDelim = right
	}
}

// WithDecoder registers d for files with the given extension,
// replacing any existing registration.
func WithDecoder(ext string, d Decoder) FileLoaderOption {
	return func(fl *FileLoader) {
		fl.decoders[normalizeExt(ext)] = d
	}
}

// FileLoader loads documents from an afero.Fs. Every file is rendered as a
// text/template before being decoded by the Decoder registered for its
// extension.
//
// Out of the box .yaml, .yml and .json are decoded natively while .toml,
// .hcl, .ini and .properties go through viper. The "default" template
// function is always available.
type FileLoader struct {
	fs       afero.Fs
	tmpl     textTemplate
	decoders map[string]Decoder
}

// NewFileLoader configures a FileLoader.
func NewFileLoader(fs afero.Fs, opts ...FileLoaderOption) *FileLoader {
	fl := &FileLoader{
		fs: fs,
		tmpl: textTemplate{
			funcs: template.FuncMap{
				"default": defaultValue,
			},
		},
		decoders: map[string]Decoder{
			"yaml":       DecoderFunc(DecodeYaml),
			"yml":        DecoderFunc(DecodeYaml),
			"json":       DecoderFunc(DecodeJson),
			"toml":       ViperDecoder("toml"),
			"hcl":        ViperDecoder("hcl"),
			"ini":        ViperDecoder("ini"),
			"properties": ViperDecoder("properties"),
		},
	}
	for _, opt := range opts {
		opt(fl)
	}
	return fl
}

// Load implements the Loader interface.
func (fl *FileLoader) Load(ctx context.Context, path string) (Map, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	ext := normalizeExt(filepath.Ext(path))
	dec, ok := fl.decoders[ext]
	if !ok {
		return nil, UnsupportedFormatError{Path: path, Ext: ext}
	}

	b, err := fl.readFile(path)
	if err != nil {
		return nil, LoadError{Path: path, Cause: err}
	}

	b, err = fl.tmpl.render(filepath.Base(path), b)
	if err != nil {
		return nil, LoadError{Path: path, Cause: err}
	}

	m, err := dec.Decode(b)
	if err != nil {
		return nil, LoadError{Path: path, Cause: err}
	}
	if m == nil {
		m = make(Map)
	}
	return m, nil
}

func (fl *FileLoader) readFile(path string) (b []byte, err error) {
	f, err := fl.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer try.Close(&err, f)

	return io.ReadAll(f)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
