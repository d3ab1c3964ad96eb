// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/bucket"
	"github.com/snapdiff/snapdiff/internal/meta"
	"github.com/snapdiff/snapdiff/internal/report"
	"github.com/snapdiff/snapdiff/internal/util"
)

// errorsCommandAction publishes the failure screenshots in errorOutput under
// the commit and prints a link to the generated listing.
func errorsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	commit := cmd.Args().First()
	if err := NameValidator(commit); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	dir := m.Settings.ErrorOutput
	if dir == "" {
		warnf(`without an "errorOutput" in your config, no actions can be performed`)
		return nil
	}
	if !dirExists(dir) {
		warnf(`the "errorOutput" config must point to a folder with images and json, got %s`, dir)
		return nil
	}

	bp, err := newProvider(ctx, m)
	if err != nil {
		return err
	}
	bucketName := m.Settings.BucketName

	failures, err := report.CollectFailures(dir)
	if err != nil {
		return err
	}
	link, err := report.WriteFailures(dir, commit, bp.BucketURL(bucketName), failures)
	if err != nil {
		return err
	}

	files, err := util.ListFiles(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	items := make([]bucket.Transfer, 0, len(files))
	for _, f := range files {
		items = append(items, bucket.Transfer{Local: filepath.Join(dir, f), Key: path.Join(commit, f)})
	}

	sent, err := bucket.UploadAll(ctx, bp, bucketName, items, cmd.Int("concurrency"))
	if err != nil {
		return fmt.Errorf("upload errors for %s: %w", commit, err)
	}
	log.Infof("uploaded %d failures (%s) for %s", len(failures), humanize.Bytes(uint64(sent)), commit) //nolint:gosec

	fmt.Fprintf(stdout, "check out your errors at %s\n", link)
	return nil
}

// errorsCommandBuilder constructs the "errors" subcommand.
func errorsCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "errors",
		Usage:     "upload failure screenshots and errors for a commit",
		UsageText: "snapdiff errors <commit> [options]",
		Metadata:  map[string]any{"meta": m, "needsConfig": true},
		Flags: []cli.Flag{
			NewConcurrencyFlag(m, "errors"),
		},
		Action: errorsCommandAction,
	}
}
