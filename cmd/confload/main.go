// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command confload prints the assembled configuration of an application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/z5labs/confload/env"

	"github.com/spf13/afero"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := newCommand(cli{
		fs:     afero.NewOsFs(),
		store:  env.DefaultStore(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	})
	cmd.SetArgs(os.Args[1:])

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
