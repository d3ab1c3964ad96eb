// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/meta"
	"github.com/snapdiff/snapdiff/internal/version"
)

func versionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:     "version",
		Usage:    "print version information",
		Metadata: map[string]any{"meta": m},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintln(stdout, version.String())
			return err
		},
	}
}
