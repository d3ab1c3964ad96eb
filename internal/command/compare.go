// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/bucket"
	"github.com/snapdiff/snapdiff/internal/cacheutil"
	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/differ"
	"github.com/snapdiff/snapdiff/internal/imagediff"
	"github.com/snapdiff/snapdiff/internal/layout"
	"github.com/snapdiff/snapdiff/internal/manifest"
	"github.com/snapdiff/snapdiff/internal/meta"
	"github.com/snapdiff/snapdiff/internal/output"
	"github.com/snapdiff/snapdiff/internal/report"
)

// DefaultTarget is compared against when no target is given.
const DefaultTarget = "master"

// ErrDifferences is returned by compare --fail-on-diff when anything changed.
var ErrDifferences = errors.New("image differences found")

// compareCommandAction fetches the target's manifest, compares it with the
// local one, renders composites for changed images and reports the result.
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	s := m.Settings
	store := m.Store
	concurrency := cmd.Int("concurrency")

	if s.CacheClean > 0 {
		if err := cacheutil.Purge(s.CacheClean); err != nil {
			log.WithError(err).Warn("cache purge failed")
		}
	}

	bp, err := newProvider(ctx, m)
	if err != nil {
		return err
	}

	target := cmd.Args().First()
	if cmd.Bool("pick") {
		if target, err = pickTarget(ctx, bp, s.BucketName); err != nil {
			return err
		}
	}
	if target == "" {
		target = DefaultTarget
	}
	if err := TargetValidator(target); err != nil {
		return err
	}

	if err := store.Ensure(); err != nil {
		return err
	}

	log.Infof("fetching target %s metadata from %s", target, bp)
	remotePath := store.MetaPath(target)
	if _, err := bp.DownloadFile(ctx, s.BucketName, layout.MetaKey(target), remotePath); err != nil {
		return fmt.Errorf("failed to fetch target %s: %w", target, err)
	}
	expected, err := manifest.Load(remotePath)
	if err != nil {
		return err
	}
	actual, err := manifest.Load(store.LocalManifestPath())
	if err != nil {
		return err
	}

	result := differ.Compare(expected, actual)

	var outcomes []imagediff.Outcome
	if len(result.ImageDiffs) > 0 {
		if err := fetchExpected(ctx, bp, s, store, result.ImageDiffs, concurrency); err != nil {
			return err
		}

		pairs := make([]imagediff.Pair, 0, len(result.ImageDiffs))
		for _, d := range result.ImageDiffs {
			pairs = append(pairs, imagediff.Pair{Expected: d.Expected, Actual: d.Actual})
		}
		if outcomes, err = imagediff.Batch(ctx, store, pairs, concurrency); err != nil {
			return err
		}

		if failed := imagediff.Failed(outcomes); len(failed) > 0 {
			if cmd.Bool("strict") {
				return fmt.Errorf("%d of %d image diffs failed: %w", len(failed), len(outcomes), failed[0].Err)
			}
			warnf("%d of %d image diffs failed and were skipped", len(failed), len(outcomes))
		}
	}

	if err := result.Save(store.DiffResultPath()); err != nil {
		return err
	}

	summary := output.NewSummary(target, result, outcomes)
	if !result.Empty() {
		if summary.Report, err = report.WriteComparison(store.ReportDir(), result); err != nil {
			return err
		}
	}

	if err := output.Spit(stdout, summary, OutputOptions(cmd, m)); err != nil {
		return err
	}

	if cmd.Bool("fail-on-diff") && !result.Empty() {
		return ErrDifferences
	}
	return nil
}

// fetchExpected makes sure every expected image of diffs is in the local
// store. Images already on disk are kept, cached ones are copied from the
// cache and the rest are downloaded and then cached.
func fetchExpected(ctx context.Context, bp bucket.Provider, s config.Settings, store layout.Layout, diffs []differ.ImageDiff, limit int) error {
	scope := cacheutil.Scope(bp.String(), s.BucketName)

	seen := map[string]bool{}
	var downloads []bucket.Transfer
	for _, d := range diffs {
		h := d.Expected
		if seen[h] {
			continue
		}
		seen[h] = true

		dst := store.ImagePath(h)
		if fileExists(dst) {
			continue
		}
		key := layout.ImageKey(h)
		if hit, err := cacheutil.Fetch(scope, key, dst); err != nil {
			log.WithError(err).Warnf("cache fetch %s failed", key)
		} else if hit {
			continue
		}
		downloads = append(downloads, bucket.Transfer{Local: dst, Key: key})
	}

	if len(downloads) == 0 {
		return nil
	}

	log.Infof("fetching %d images for diffs from %s", len(downloads), bp)
	if err := bucket.DownloadAll(ctx, bp, s.BucketName, downloads, limit); err != nil {
		return fmt.Errorf("failed to fetch images for diffs: %w", err)
	}

	for _, t := range downloads {
		if err := cacheutil.Store(scope, t.Key, t.Local); err != nil {
			log.WithError(err).Warnf("cache store %s failed", t.Key)
		}
	}
	return nil
}

// compareCommandBuilder constructs the "compare" subcommand.
func compareCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "compare local snapshots against a pushed target",
		UsageText: "snapdiff compare [target] [options]",
		Metadata:  map[string]any{"meta": m, "needsConfig": true},
		Flags: append(NewOutputFlags(m, "compare"),
			NewConcurrencyFlag(m, "compare"),
			&cli.BoolFlag{
				Name:    "fail-on-diff",
				Usage:   "exit non-zero when anything changed",
				Sources: ValueChainFromConfigFile("compare", m.Config.Source, "fail-on-diff"),
			},
			&cli.BoolFlag{
				Name:  "pick",
				Usage: "choose the target interactively from the bucket",
			},
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "fail when an image pair cannot be diffed",
				Sources: ValueChainFromConfigFile("compare", m.Config.Source, "strict"),
			},
		),
		Action: compareCommandAction,
	}
}
