// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confload

import (
	"context"
	"testing"

	"github.com/z5labs/confload/env"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializer_Init(t *testing.T) {
	t.Run("will seed the environment from the .env file", func(t *testing.T) {
		store := newStore()
		var i Initializer

		s, err := i.Init(appDir, FS(newAppFs(t)), EnvStore(store))
		require.NoError(t, err)

		v, ok := store.Lookup("VAR1")
		require.True(t, ok)
		require.Equal(t, "dotenv1", v)

		debug, ok := s.Debug()
		require.True(t, ok)
		require.False(t, debug)

		name, ok := s.Environment()
		require.True(t, ok)
		require.Equal(t, "dev", name)
	})

	t.Run("will not overwrite existing variables", func(t *testing.T) {
		store := newStore("VAR2=process")
		store.Set("VAR1", "654")
		var i Initializer

		_, err := i.Init(appDir, FS(newAppFs(t)), EnvStore(store))
		require.NoError(t, err)
		require.Equal(t, "654", store.Get("VAR1", ""))
		require.Equal(t, "process", store.Get("VAR2", ""))
	})

	t.Run("will not seed anything", func(t *testing.T) {
		t.Run("if dir is empty", func(t *testing.T) {
			store := newStore()
			var i Initializer

			s, err := i.Init("", FS(newAppFs(t)), EnvStore(store))
			require.NoError(t, err)

			_, ok := store.Lookup("VAR1")
			require.False(t, ok)

			_, ok = s.Debug()
			require.False(t, ok)
			_, ok = s.Environment()
			require.False(t, ok)
		})

		t.Run("if the .env file does not exist", func(t *testing.T) {
			store := newStore()
			var i Initializer

			_, err := i.Init(appDir, FS(afero.NewMemMapFs()), EnvStore(store))
			require.NoError(t, err)

			_, ok := store.Lookup("VAR1")
			require.False(t, ok)
		})
	})

	t.Run("will treat an empty debug variable as disabled", func(t *testing.T) {
		var i Initializer

		s, err := i.Init("", EnvStore(newStore("APP_DEBUG=")))
		require.NoError(t, err)

		debug, ok := s.Debug()
		require.True(t, ok)
		require.False(t, debug)
	})

	t.Run("will lower the log level if debug is enabled", func(t *testing.T) {
		lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
		var i Initializer

		s, err := i.Init("", EnvStore(newStore("APP_DEBUG=true")), LogLevel(lvl))
		require.NoError(t, err)

		debug, ok := s.Debug()
		require.True(t, ok)
		require.True(t, debug)
		require.Equal(t, zap.DebugLevel, lvl.Level())
	})

	t.Run("will leave the log level alone if debug is disabled", func(t *testing.T) {
		lvl := zap.NewAtomicLevelAt(zap.InfoLevel)
		var i Initializer

		_, err := i.Init("", EnvStore(newStore("APP_DEBUG=0")), LogLevel(lvl))
		require.NoError(t, err)
		require.Equal(t, zap.InfoLevel, lvl.Level())
	})

	t.Run("will honor renamed variables", func(t *testing.T) {
		var i Initializer

		s, err := i.Init(
			"",
			EnvStore(newStore("YII_DEBUG=1", "YII_ENV=prod")),
			Vars(VarNames{Debug: "YII_DEBUG", Environment: "YII_ENV"}),
		)
		require.NoError(t, err)

		debug, _ := s.Debug()
		require.True(t, debug)

		name, _ := s.Environment()
		require.Equal(t, "prod", name)
	})

	t.Run("will publish settings only once", func(t *testing.T) {
		var i Initializer

		first, err := i.Init(appDir, FS(newAppFs(t)), EnvStore(newStore()))
		require.NoError(t, err)

		store := newStore("APP_ENV=prod", "APP_DEBUG=1")
		second, err := i.Init(appDir, FS(newAppFs(t)), EnvStore(store))
		require.NoError(t, err)
		require.Equal(t, first, second)

		name, _ := second.Environment()
		require.Equal(t, "dev", name)

		published, ok := i.Settings()
		require.True(t, ok)
		require.Equal(t, first, published)
	})

	t.Run("will seed on every call", func(t *testing.T) {
		t.Run("even after settings have been published", func(t *testing.T) {
			var i Initializer

			_, err := i.Init(appDir, FS(newAppFs(t)), EnvStore(newStore()))
			require.NoError(t, err)

			store := newStore()
			_, err = i.Init(appDir, FS(newAppFs(t)), EnvStore(store))
			require.NoError(t, err)

			v, ok := store.Lookup("VAR1")
			require.True(t, ok)
			require.Equal(t, "dotenv1", v)
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the debug variable is not a bool", func(t *testing.T) {
			var i Initializer

			_, err := i.Init("", EnvStore(newStore("APP_DEBUG=maybe")))

			var berr env.InvalidBoolError
			require.ErrorAs(t, err, &berr)
			require.Equal(t, "APP_DEBUG", berr.Name)
			require.Equal(t, "maybe", berr.Value)

			_, ok := i.Settings()
			require.False(t, ok)
		})

		t.Run("if the .env file is malformed", func(t *testing.T) {
			fs := afero.NewMemMapFs()
			err := afero.WriteFile(fs, "app/.env", []byte("NOT A PAIR\n"), 0o644)
			require.NoError(t, err)

			var i Initializer
			_, err = i.Init(appDir, FS(fs), EnvStore(newStore()))

			var derr env.InvalidDotenvError
			require.ErrorAs(t, err, &derr)
		})
	})
}

func TestInitEnv(t *testing.T) {
	s, err := InitEnv("", EnvStore(newStore("APP_ENV=test")))
	require.NoError(t, err)

	current, ok := CurrentSettings()
	require.True(t, ok)
	require.Equal(t, s, current)
}

func TestNew_ProcessWideInitializer(t *testing.T) {
	t.Run("will seed every new Config", func(t *testing.T) {
		_, err := New(appDir, FS(newAppFs(t)), EnvStore(newStore()))
		require.NoError(t, err)

		store := newStore()
		c, err := New(appDir, FS(newAppFs(t)), EnvStore(store))
		require.NoError(t, err)

		v, ok := store.Lookup("VAR1")
		require.True(t, ok)
		require.Equal(t, "dotenv1", v)

		m, err := c.Web(context.Background())
		require.NoError(t, err)
		require.Equal(t, "dotenv1", m["key1"])

		current, ok := CurrentSettings()
		require.True(t, ok)
		require.Equal(t, current, c.Settings())
	})
}
