// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/differ"
	"github.com/snapdiff/snapdiff/internal/meta"
)

// deltaCommandAction prints a structural diff of two manifest files.
func deltaCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("delta needs exactly two manifest files")
	}

	docs := make([][]byte, 2)
	for i, p := range cmd.Args().Slice() {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read manifest: %w", err)
		}
		docs[i] = data
	}

	_, err := differ.Delta(docs[0], docs[1], stdout, cmd.Bool("color"))
	return err
}

// deltaCommandBuilder constructs the "delta" subcommand.
func deltaCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "delta",
		Usage:     "show the raw differences between two manifest files",
		UsageText: "snapdiff delta <expected.json> <actual.json> [options]",
		Metadata:  map[string]any{"meta": m},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Usage:   "enable colored output",
				Sources: ValueChainFromConfigFile("delta", m.Config.Source, "color", "SNAPDIFF_COLOR"),
			},
		},
		Action: deltaCommandAction,
	}
}
