// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/snapdiff/snapdiff/internal/cacheutil"
	"github.com/snapdiff/snapdiff/internal/command"
	"github.com/snapdiff/snapdiff/internal/log"
	"github.com/snapdiff/snapdiff/internal/version"
)

func main() {
	os.Exit(realMain())
}

// handleVersion checks for a leading --version/-v and returns whether it was
// handled.
func handleVersion(w io.Writer, args []string) bool {
	if len(args) > 1 && (args[1] == "--version" || args[1] == "-v") {
		fmt.Fprintln(w, version.String())
		return true
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string) int {
	// Pre-create cache directory when caching is enabled.
	if dir, ok := cacheutil.Dir(); ok && cacheutil.Enabled() {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			log.Debugf("cache ensure err: err=%v", err)
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(os.Stdout, args) {
		return 0
	}

	args = handleNakedCommand(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return initAndRunApp(ctx, args)
}
