// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/bucket"
	"github.com/snapdiff/snapdiff/internal/layout"
	"github.com/snapdiff/snapdiff/internal/manifest"
	"github.com/snapdiff/snapdiff/internal/meta"
	"github.com/snapdiff/snapdiff/internal/util"
)

// pushCommandAction publishes the local manifest as target together with
// every image it references, the composites of the last compare and its
// report.
func pushCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	target := cmd.Args().First()
	if err := TargetValidator(target); err != nil {
		return err
	}

	s := m.Settings
	store := m.Store

	hasReport := dirExists(store.ReportDir())
	hasDiffs := fileExists(store.DiffResultPath())
	if !hasReport || !hasDiffs {
		warnf("no report or no diffs found, you may want to run compare first to push reports along with images")
	}

	bp, err := newProvider(ctx, m)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(store.LocalManifestPath())
	if err != nil {
		return fmt.Errorf("failed to read local manifest: %w", err)
	}
	local, err := manifest.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", store.LocalManifestPath(), err)
	}
	if err := os.WriteFile(store.MetaPath(target), raw, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write target manifest: %w", err)
	}

	items := []bucket.Transfer{{Local: store.MetaPath(target), Key: layout.MetaKey(target)}}
	for _, h := range local.Hashes() {
		items = append(items, bucket.Transfer{Local: store.ImagePath(h), Key: layout.ImageKey(h)})
	}
	images := len(items) - 1

	if hasDiffs {
		composites, err := compositeTransfers(store)
		if err != nil {
			return err
		}
		items = append(items, composites...)
		images += len(composites)
	}

	if hasReport {
		files, err := util.ListFiles(store.ReportDir())
		if err != nil {
			return fmt.Errorf("failed to read report: %w", err)
		}
		for _, f := range files {
			items = append(items, bucket.Transfer{
				Local: filepath.Join(store.ReportDir(), f),
				Key:   path.Join(layout.ReportDir, f),
			})
		}
	}

	log.Infof("pushing %s with %d images to %s", target, images, bp)
	sent, err := bucket.UploadAll(ctx, bp, s.BucketName, items, cmd.Int("concurrency"))
	if err != nil {
		return fmt.Errorf("push %s: %w", target, err)
	}

	fmt.Fprintf(stdout, "Pushed %s: %d files, %s to %s\n", target, len(items), humanize.Bytes(uint64(sent)), bp.BucketURL(s.BucketName)) //nolint:gosec
	return nil
}

// compositeTransfers lists the composites named by the diff result. Pairs
// whose composite was never rendered are skipped.
func compositeTransfers(store layout.Layout) ([]bucket.Transfer, error) {
	data, err := os.ReadFile(store.DiffResultPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read diffs: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: %w: invalid JSON", store.DiffResultPath(), manifest.ErrParse)
	}

	var items []bucket.Transfer
	for _, d := range gjson.GetBytes(data, "imageDiffs").Array() {
		actual, expected := d.Get("actual").String(), d.Get("expected").String()
		local := store.DiffPath(actual, expected)
		if !fileExists(local) {
			warnf("composite %s-%s is missing, skipping", actual, expected)
			continue
		}
		items = append(items, bucket.Transfer{Local: local, Key: layout.DiffKey(actual, expected)})
	}
	return items, nil
}

// pushCommandBuilder constructs the "push" subcommand.
func pushCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "push local snapshots and the last comparison as a target",
		UsageText: "snapdiff push <target> [options]",
		Metadata:  map[string]any{"meta": m, "needsConfig": true},
		Flags: []cli.Flag{
			NewConcurrencyFlag(m, "push"),
		},
		Action: pushCommandAction,
	}
}
