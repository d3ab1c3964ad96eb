// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/snapdiff/snapdiff/internal/bucket"
	"github.com/snapdiff/snapdiff/internal/meta"
	"github.com/snapdiff/snapdiff/internal/output"
)

// Command output goes to stdout and warnings to stderr. Tests swap these.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// newProvider builds the configured bucket provider. Tests replace it.
var newProvider = func(ctx context.Context, m meta.Meta) (bucket.Provider, error) {
	if err := m.Settings.RequireProvider(); err != nil {
		return nil, err
	}
	return bucket.New(ctx, m.Settings.BucketProvider.Name, m.Settings.BucketProvider.Options)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// OutputOptions collects the output flags of cmd.
func OutputOptions(cmd *cli.Command, m meta.Meta) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: 1,
		Sort:    cmd.String("sort"),
		Config:  m.Config,
	}
}

// warnf tells the user about something that did not stop the command.
func warnf(format string, args ...any) {
	log.Debugf(format, args...)
	fmt.Fprintf(stderr, "warning: "+format+"\n", args...)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// dirExists reports whether path names an existing directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
