// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Manifest {
	return Manifest{
		"login works": {
			Images:  []string{"h1", "h2"},
			Context: TestContext{Title: "works", FullTitle: "login works", File: "test/login.test.js"},
		},
		"logout works": {
			Images:  []string{"h3"},
			Context: TestContext{Title: "works", FullTitle: "logout works", File: "test/logout.test.js"},
		},
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Manifest
		wantErr bool
	}{
		{
			name:  "empty object",
			input: `{}`,
			want:  Manifest{},
		},
		{
			name:  "single entry",
			input: `{"a b":{"images":["x","y"],"context":{"title":"b","fullTitle":"a b","file":"f.js"}}}`,
			want: Manifest{"a b": {
				Images:  []string{"x", "y"},
				Context: TestContext{Title: "b", FullTitle: "a b", File: "f.js"},
			}},
		},
		{
			name:  "missing images normalized",
			input: `{"t":{"context":{"title":"t","fullTitle":"t","file":"<root>"}}}`,
			want:  Manifest{"t": {Images: []string{}, Context: TestContext{Title: "t", FullTitle: "t", File: "<root>"}}},
		},
		{name: "truncated", input: `{"a":`, wantErr: true},
		{name: "array", input: `[]`, wantErr: true},
		{name: "null", input: `null`, wantErr: true},
		{name: "wrong shape", input: `{"a":{"images":"nope"}}`, wantErr: true},
		{name: "hash escapes store", input: `{"a":{"images":["ok","../../x"]}}`, wantErr: true},
		{name: "hash with separator", input: `{"a":{"images":["sub/x"]}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta", "local-snapdiff.json")
	m := sample()

	require.NoError(t, m.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMarshal_StableOrdering(t *testing.T) {
	a, err := sample().Marshal()
	require.NoError(t, err)
	b, err := sample().Clone().Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Less(t, strings.Index(string(a), "login works"), strings.Index(string(a), "logout works"))
	assert.Contains(t, string(a), "\n  \"login works\": {")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), bad)
}

func TestManifest_Helpers(t *testing.T) {
	m := sample()
	assert.Equal(t, []string{"login works", "logout works"}, m.Keys())
	assert.Equal(t, []string{"h1", "h2", "h3"}, m.Hashes())

	c := m.Clone()
	c["login works"].Images[0] = "changed"
	assert.Equal(t, "h1", m["login works"].Images[0])
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	tc := TestContext{Title: "works", FullTitle: "login works", File: "a.js"}
	other := TestContext{Title: "renamed", FullTitle: "login works", File: "b.js"}

	require.NoError(t, r.Record(tc, "h1"))
	require.NoError(t, r.Record(other, "h2"))
	require.NoError(t, r.Record(tc, "h1"))

	snap := r.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, []string{"h1", "h2", "h1"}, snap["login works"].Images)
	assert.Equal(t, tc, snap["login works"].Context, "first record fixes the context")

	path := filepath.Join(t.TempDir(), "meta", "local-snapdiff.json")
	require.NoError(t, r.Finalize(path))
	assert.ErrorIs(t, r.Record(tc, "h9"), ErrFinalized)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestRecorder_Concurrent(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Record(TestContext{FullTitle: "t"}, "h")
		}()
	}
	wg.Wait()
	assert.Len(t, r.Snapshot()["t"].Images, 50)
}
