// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package bucket

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAll(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	p, err := NewFolder(root)
	require.NoError(t, err)

	src := t.TempDir()
	items := []Transfer{
		{Local: writeFile(t, filepath.Join(src, "a.png"), "aaaa"), Key: "images/a.png"},
		{Local: writeFile(t, filepath.Join(src, "b.png"), "bb"), Key: "images/b.png"},
		{Local: writeFile(t, filepath.Join(src, "m.json"), "{}"), Key: "meta/master.json"},
	}

	n, err := UploadAll(ctx, p, "snaps", items, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	keys, err := p.List(ctx, "snaps", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"images/a.png", "images/b.png", "meta/master.json"}, keys)

	dst := t.TempDir()
	down := []Transfer{
		{Local: filepath.Join(dst, "a.png"), Key: "images/a.png"},
		{Local: filepath.Join(dst, "m.json"), Key: "meta/master.json"},
	}
	require.NoError(t, DownloadAll(ctx, p, "snaps", down, 0))
	assert.FileExists(t, filepath.Join(dst, "a.png"))
	assert.FileExists(t, filepath.Join(dst, "m.json"))
}

func TestUploadAll_MissingFile(t *testing.T) {
	p, err := NewFolder(t.TempDir())
	require.NoError(t, err)

	_, err = UploadAll(context.Background(), p, "snaps", []Transfer{{Local: "/does/not/exist.png", Key: "x.png"}}, 4)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDownloadAll_Missing(t *testing.T) {
	p, err := NewFolder(t.TempDir())
	require.NoError(t, err)

	err = DownloadAll(context.Background(), p, "snaps", []Transfer{{Local: filepath.Join(t.TempDir(), "x"), Key: "images/x.png"}}, 4)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
