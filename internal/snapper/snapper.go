// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapper

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/snapdiff/snapdiff/internal/digest"
	"github.com/snapdiff/snapdiff/internal/layout"
	"github.com/snapdiff/snapdiff/internal/manifest"
	"github.com/snapdiff/snapdiff/internal/util"
)

// Snapper records every capture of a Capturer into a local store.
type Snapper struct {
	Capturer
	store    layout.Layout
	hasher   digest.Hasher
	recorder *manifest.Recorder
}

// New wraps c. Images land in store; their hashes are recorded into rec.
func New(c Capturer, store layout.Layout, hasher digest.Hasher, rec *manifest.Recorder) (*Snapper, error) {
	if err := store.Ensure(); err != nil {
		return nil, err
	}
	return &Snapper{Capturer: c, store: store, hasher: hasher, recorder: rec}, nil
}

// Snap captures selector, stores the PNG under its hash and records the hash
// against tc. The hash is returned.
func (s *Snapper) Snap(ctx context.Context, tc manifest.TestContext, selector string) (string, error) {
	img, err := s.Capture(ctx, selector)
	if err != nil {
		return "", err
	}

	hash := s.hasher.Sum(img)
	path := s.store.ImagePath(hash)

	switch _, err := os.Stat(path); {
	case err == nil:
		log.Debugf("snap %s: %s already stored", tc.FullTitle, hash)
	case errors.Is(err, fs.ErrNotExist):
		if err := os.WriteFile(path, img, 0o644); err != nil { //nolint:mnd
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	default:
		return "", err
	}

	if err := s.recorder.Record(tc, hash); err != nil {
		return "", err
	}
	return hash, nil
}

// Finalize writes the local manifest.
func (s *Snapper) Finalize() error {
	return s.recorder.Finalize(s.store.LocalManifestPath())
}

// ContextFor builds the context of a test titled title nested under parents,
// outermost first. The full title joins the non-empty titles with spaces.
func ContextFor(title string, parents []string, file string) manifest.TestContext {
	parts := make([]string, 0, len(parents)+1)
	for _, p := range parents {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if title != "" {
		parts = append(parts, title)
	}
	return manifest.TestContext{
		Title:     title,
		FullTitle: strings.Join(parts, " "),
		File:      util.RelativeToCwd(file),
	}
}
