// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()

	err := afero.WriteFile(fs, path, []byte(content), 0o644)
	require.NoError(t, err)
}

func TestFileLoader_Load(t *testing.T) {
	t.Run("will decode", func(t *testing.T) {
		testCases := []struct {
			Name    string
			Path    string
			Content string
			Key     string
			Value   any
		}{
			{
				Name:    "yaml",
				Path:    "config/web.yaml",
				Content: "key4: web4\n",
				Key:     "key4",
				Value:   "web4",
			},
			{
				Name:    "yml",
				Path:    "config/web.yml",
				Content: "key4: web4\n",
				Key:     "key4",
				Value:   "web4",
			},
			{
				Name:    "json",
				Path:    "config/web.json",
				Content: `{"key4": "web4"}`,
				Key:     "key4",
				Value:   "web4",
			},
			{
				Name:    "toml",
				Path:    "config/web.toml",
				Content: "key4 = \"web4\"\n",
				Key:     "key4",
				Value:   "web4",
			},
			{
				Name:    "uppercase extension",
				Path:    "config/WEB.YAML",
				Content: "key4: web4\n",
				Key:     "key4",
				Value:   "web4",
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				fs := afero.NewMemMapFs()
				writeFile(t, fs, testCase.Path, testCase.Content)

				m, err := NewFileLoader(fs).Load(context.Background(), testCase.Path)
				require.NoError(t, err)
				require.Equal(t, testCase.Value, m[testCase.Key])
			})
		}
	})

	t.Run("will return an empty Map", func(t *testing.T) {
		t.Run("if the file is empty", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "local.yaml", "")

			m, err := NewFileLoader(fs).Load(context.Background(), "local.yaml")
			require.NoError(t, err)
			require.NotNil(t, m)
			require.Empty(t, m)
		})
	})

	t.Run("will render the file as a template", func(t *testing.T) {
		t.Run("with a registered function", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "web.yaml", `key1: {{ env "VAR1" }}`)

			fl := NewFileLoader(fs, TemplateFunc("env", func(name string) string {
				return map[string]string{"VAR1": "dotenv1"}[name]
			}))

			m, err := fl.Load(context.Background(), "web.yaml")
			require.NoError(t, err)
			require.Equal(t, Map{"key1": "dotenv1"}, m)
		})

		t.Run("with a function map", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "web.yaml", `key1: {{ upper }}`)

			fl := NewFileLoader(fs, TemplateFuncs(map[string]any{
				"upper": func() string { return "WEB" },
			}))

			m, err := fl.Load(context.Background(), "web.yaml")
			require.NoError(t, err)
			require.Equal(t, Map{"key1": "WEB"}, m)
		})

		t.Run("with the built-in default function", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "web.yaml", `key1: {{ "" | default "fallback" }}`)

			m, err := NewFileLoader(fs).Load(context.Background(), "web.yaml")
			require.NoError(t, err)
			require.Equal(t, Map{"key1": "fallback"}, m)
		})

		t.Run("with custom delimiters", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "web.yaml", `key1: <% "" | default "fallback" %>`)

			m, err := NewFileLoader(fs, TemplateDelims("<%", "%>")).Load(context.Background(), "web.yaml")
			require.NoError(t, err)
			require.Equal(t, Map{"key1": "fallback"}, m)
		})
	})

	t.Run("will use a registered decoder", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "web.conf", "anything")

		fl := NewFileLoader(fs, WithDecoder(".conf", DecoderFunc(func(b []byte) (Map, error) {
			return Map{"raw": string(b)}, nil
		})))

		m, err := fl.Load(context.Background(), "web.conf")
		require.NoError(t, err)
		require.Equal(t, Map{"raw": "anything"}, m)
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the context is cancelled", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "web.yaml", "key4: web4\n")

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := NewFileLoader(fs).Load(ctx, "web.yaml")
			require.ErrorIs(t, err, context.Canceled)
		})

		t.Run("if no decoder is registered for the extension", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "web.xml", "<key4/>")

			_, err := NewFileLoader(fs).Load(context.Background(), "web.xml")

			var uerr UnsupportedFormatError
			require.ErrorAs(t, err, &uerr)
			require.Equal(t, "xml", uerr.Ext)
			require.Equal(t, "web.xml", uerr.Path)
			require.NotEmpty(t, uerr.Error())
		})

		t.Run("if the file does not exist", func(t *testing.T) {
			_, err := NewFileLoader(afero.NewMemMapFs()).Load(context.Background(), "web.yaml")

			var lerr LoadError
			require.ErrorAs(t, err, &lerr)
			require.Equal(t, "web.yaml", lerr.Path)
			require.NotEmpty(t, lerr.Error())
		})

		t.Run("if the template fails to parse", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "web.yaml", `key1: {{ .Missing`)

			_, err := NewFileLoader(fs).Load(context.Background(), "web.yaml")

			var perr TextTemplateParseError
			require.ErrorAs(t, err, &perr)
			require.NotEmpty(t, perr.Error())
		})

		t.Run("if a template function fails", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "web.yaml", `key1: {{ fail }}`)

			failErr := errors.New("failed")
			fl := NewFileLoader(fs, TemplateFunc("fail", func() (string, error) {
				return "", failErr
			}))

			_, err := fl.Load(context.Background(), "web.yaml")

			var eerr TextTemplateExecError
			require.ErrorAs(t, err, &eerr)
			require.ErrorIs(t, err, failErr)
		})

		t.Run("if the rendered document is invalid", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "web.json", `{`)

			_, err := NewFileLoader(fs).Load(context.Background(), "web.json")

			var jerr InvalidJsonError
			require.ErrorAs(t, err, &jerr)
		})
	})
}

func TestLoaderFunc_Load(t *testing.T) {
	var calledWith string
	l := LoaderFunc(func(ctx context.Context, path string) (Map, error) {
		calledWith = path
		return Map{"a": 1}, nil
	})

	m, err := l.Load(context.Background(), "web.yaml")
	require.NoError(t, err)
	require.Equal(t, "web.yaml", calledWith)
	require.Equal(t, Map{"a": 1}, m)
}
