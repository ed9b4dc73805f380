// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package confload builds application configuration from layered sources.
//
// An application directory is expected to look like:
//
//	.env                      optional, seeds environment variables
//	config/web.yaml           base config of the "web" target
//	config/local.yaml         optional local overrides of "web"
//	config/console.yaml       base config of the "console" target
//	config/local-console.yaml optional local overrides of "console"
//
// # Environment
//
// Creating a Config initializes the environment: the .env file, if any,
// fills in variables which are not already set and the debug and
// environment name variables are published once as Settings.
//
//	cfg, err := confload.New("/path/to/app")
//	settings := cfg.Settings()
//
// The initialization can be skipped with SkipEnvInit or run on its own:
//
//	settings, err := confload.InitEnv("/path/to/app")
//
// # Building
//
// Config files are text/templates with access to the environment:
//
//	components:
//	  db:
//	    dsn: {{ env "DB_DSN" }}
//	    username: {{ env "DB_USER" "root" }}
//	    password: {{ required "DB_PASSWORD" }}
//
// A target is built by merging its base file, its local file and any
// inline overrides, in that order, with [config.Merge]:
//
//	web, err := cfg.Web(ctx)
//	web, err := cfg.Web(ctx, confload.WithLocal(true))
//	console, err := cfg.Console(ctx, confload.WithOverrides(config.Map{"key5": "test"}))
//
// Local files are merged if WithLocal(true) is given or, without WithLocal,
// if the ENABLE_LOCALCONF variable is truthy.
//
// A target may extend another one, e.g. to let the console reuse the
// database settings of the web target:
//
//	cfg, err := confload.New(dir, confload.WithTarget(confload.Target{
//	    Name:    confload.Console,
//	    Extends: confload.Web,
//	}))
package confload
