// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdiff/snapdiff/internal/digest"
	"github.com/snapdiff/snapdiff/internal/layout"
	"github.com/snapdiff/snapdiff/internal/manifest"
)

type fakeCapturer struct {
	shots  map[string][]byte
	hidden []string
	err    error
}

func (f *fakeCapturer) Capture(_ context.Context, selector string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shots[selector], nil
}

func (f *fakeCapturer) Hide(_ context.Context, selector string) error {
	f.hidden = append(f.hidden, selector)
	return nil
}

func newSnapper(t *testing.T, c Capturer) (*Snapper, layout.Layout, *manifest.Recorder) {
	t.Helper()
	store := layout.New(filepath.Join(t.TempDir(), "snaps"))
	hasher, err := digest.New(digest.SHA256)
	require.NoError(t, err)
	rec := manifest.NewRecorder()
	s, err := New(c, store, hasher, rec)
	require.NoError(t, err)
	return s, store, rec
}

func TestSnap(t *testing.T) {
	fc := &fakeCapturer{shots: map[string][]byte{
		"":        []byte("page"),
		"#header": []byte("header"),
	}}
	s, store, rec := newSnapper(t, fc)
	ctx := context.Background()
	tc := manifest.TestContext{Title: "renders", FullTitle: "home renders", File: "home.js"}

	h1, err := s.Snap(ctx, tc, "")
	require.NoError(t, err)
	h2, err := s.Snap(ctx, tc, "#header")
	require.NoError(t, err)
	h3, err := s.Snap(ctx, tc, "")
	require.NoError(t, err)

	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h1, h3)

	data, err := os.ReadFile(store.ImagePath(h1))
	require.NoError(t, err)
	assert.Equal(t, []byte("page"), data)
	assert.FileExists(t, store.ImagePath(h2))

	got := rec.Snapshot()
	require.Contains(t, got, "home renders")
	assert.Equal(t, []string{h1, h2, h1}, got["home renders"].Images)
	assert.Equal(t, tc, got["home renders"].Context)
}

func TestSnapKeepsExistingFile(t *testing.T) {
	fc := &fakeCapturer{shots: map[string][]byte{"": []byte("page")}}
	s, store, _ := newSnapper(t, fc)

	h, err := s.Snap(context.Background(), manifest.TestContext{FullTitle: "t"}, "")
	require.NoError(t, err)

	info, err := os.Stat(store.ImagePath(h))
	require.NoError(t, err)

	_, err = s.Snap(context.Background(), manifest.TestContext{FullTitle: "t"}, "")
	require.NoError(t, err)

	again, err := os.Stat(store.ImagePath(h))
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())
}

func TestSnapCaptureError(t *testing.T) {
	boom := errors.New("boom")
	s, _, rec := newSnapper(t, &fakeCapturer{err: boom})

	_, err := s.Snap(context.Background(), manifest.TestContext{FullTitle: "t"}, "")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.Snapshot())
}

func TestHideDelegates(t *testing.T) {
	fc := &fakeCapturer{}
	s, _, _ := newSnapper(t, fc)

	require.NoError(t, s.Hide(context.Background(), ".clock"))
	assert.Equal(t, []string{".clock"}, fc.hidden)
}

func TestFinalize(t *testing.T) {
	fc := &fakeCapturer{shots: map[string][]byte{"": []byte("page")}}
	s, store, _ := newSnapper(t, fc)
	tc := manifest.TestContext{Title: "t", FullTitle: "suite t", File: "<root>"}

	h, err := s.Snap(context.Background(), tc, "")
	require.NoError(t, err)
	require.NoError(t, s.Finalize())

	m, err := manifest.Load(store.LocalManifestPath())
	require.NoError(t, err)
	assert.Equal(t, manifest.Manifest{"suite t": {Images: []string{h}, Context: tc}}, m)

	_, err = s.Snap(context.Background(), tc, "")
	assert.ErrorIs(t, err, manifest.ErrFinalized)
}

func TestContextFor(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	tests := []struct {
		name    string
		title   string
		parents []string
		file    string
		want    manifest.TestContext
	}{
		{
			name:    "nested",
			title:   "logs in",
			parents: []string{"auth", "login"},
			file:    filepath.Join(dir, "specs", "login.js"),
			want:    manifest.TestContext{Title: "logs in", FullTitle: "auth login logs in", File: "specs/login.js"},
		},
		{
			name:  "top level without file",
			title: "smoke",
			want:  manifest.TestContext{Title: "smoke", FullTitle: "smoke", File: "<root>"},
		},
		{
			name:    "empty root suite",
			title:   "works",
			parents: []string{"", "page"},
			file:    "page.js",
			want:    manifest.TestContext{Title: "works", FullTitle: "page works", File: "page.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContextFor(tt.title, tt.parents, tt.file))
		})
	}
}
