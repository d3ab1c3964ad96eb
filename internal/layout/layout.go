// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package layout names the files of a local snapshot store:
//
//	{root}/images/{hash}.png
//	{root}/images/{actual}-{expected}.png
//	{root}/meta/{name}.json
//	{root}/report-local/
package layout

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	ImagesDir     = "images"
	MetaDir       = "meta"
	ReportDir     = "report-local"
	LocalManifest = "local-snapdiff"
	DiffResult    = "diffs"
)

// ErrInvalidHash is returned for image hashes that could escape the images
// directory when turned into a path or key.
var ErrInvalidHash = errors.New("invalid image hash")

// CheckHash rejects hashes that are empty or contain a path separator or "..".
func CheckHash(hash string) error {
	if hash == "" || strings.ContainsAny(hash, `/\`) || strings.Contains(hash, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}
	return nil
}

// Layout is a snapshot store rooted at Root.
type Layout struct {
	Root string
}

// New returns the layout rooted at root.
func New(root string) Layout {
	return Layout{Root: root}
}

func (l Layout) ImagesDir() string { return filepath.Join(l.Root, ImagesDir) }
func (l Layout) MetaDir() string   { return filepath.Join(l.Root, MetaDir) }
func (l Layout) ReportDir() string { return filepath.Join(l.Root, ReportDir) }

// ImagePath is where the image with the given hash lives.
func (l Layout) ImagePath(hash string) string {
	return filepath.Join(l.ImagesDir(), hash+".png")
}

// DiffPath is where the composite for a changed pair is written.
func (l Layout) DiffPath(actual, expected string) string {
	return filepath.Join(l.ImagesDir(), actual+"-"+expected+".png")
}

// MetaPath is the manifest or result JSON called name.
func (l Layout) MetaPath(name string) string {
	return filepath.Join(l.MetaDir(), name+".json")
}

func (l Layout) LocalManifestPath() string { return l.MetaPath(LocalManifest) }
func (l Layout) DiffResultPath() string    { return l.MetaPath(DiffResult) }

// Ensure creates the images and meta directories.
func (l Layout) Ensure() error {
	for _, d := range []string{l.ImagesDir(), l.MetaDir()} {
		if err := os.MkdirAll(d, 0o755); err != nil { //nolint:mnd
			return fmt.Errorf("failed to create %s: %w", d, err)
		}
	}
	return nil
}

// ImageKey is the bucket key of an image. Keys always use forward slashes.
func ImageKey(hash string) string { return path.Join(ImagesDir, hash+".png") }

// DiffKey is the bucket key of a composite.
func DiffKey(actual, expected string) string {
	return path.Join(ImagesDir, actual+"-"+expected+".png")
}

// MetaKey is the bucket key of a manifest named name.
func MetaKey(name string) string { return path.Join(MetaDir, name+".json") }
