// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package env resolves environment variables from layered sources.
//
// A Store consults three layers, first match wins:
//
//  1. explicit overrides, set with [Store.Set]
//  2. the process environment, snapshotted when the Store is created
//     and extended by seeding
//  3. an OS level fallback, [os.LookupEnv] by default
//
// Seeding, e.g. from a .env file, only ever fills in names which no
// layer has yet:
//
//	store := env.New()
//	_, err := store.SeedFrom(env.Dotenv(afero.NewOsFs(), ".env"))
//	dsn, err := store.Require("DB_DSN")
//
// # Testing
//
// The override layer is the only layer test suites are expected to reset,
// see [Store.ResetOverrides]. The process environment and the OS fallback
// generally can not be reset without process isolation, so tests should
// construct their own Store with [Environ] and [Fallback] instead.
//
// A Store is safe for concurrent use, however lookups are not atomic with
// respect to a concurrent seed. Seed once at process start before any
// concurrent work begins.
package env
