// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdiff/snapdiff/internal/differ"
	"github.com/snapdiff/snapdiff/internal/manifest"
)

func tc(title string) manifest.TestContext {
	return manifest.TestContext{Title: title, FullTitle: "suite " + title, File: "spec.js"}
}

func TestWriteComparison(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "report-local")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	stale := filepath.Join(dir, "stale.html")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	result := differ.Result{
		ImageDiffs:    []differ.ImageDiff{{Context: tc("login"), Expected: "e1", Actual: "a1"}},
		AddedImages:   []differ.ImageChange{{Image: "a2", Context: tc("login")}},
		RemovedImages: []differ.ImageChange{{Image: "e2", Context: tc("logout")}},
		AddedTests:    []differ.TestChange{{Images: []string{"n1", "n2"}, Context: tc("<signup>")}},
		RemovedTests:  []differ.TestChange{},
	}

	path, err := WriteComparison(dir, result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, IndexFile), path)
	assert.NoFileExists(t, stale)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(raw)

	for _, want := range []string{
		"<h2>Changed Images</h2>",
		"<h2>Added Images</h2>",
		"<h2>Removed Images</h2>",
		"<h2>Added Tests</h2>",
		"<h2>Removed Tests</h2>",
		`src="../images/a1-e1.png"`,
		`src="../images/a2.png"`,
		`src="../images/e2.png"`,
		`src="../images/n1.png"`,
		`src="../images/n2.png"`,
		"suite &lt;signup&gt;",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "<signup>")
	assert.Less(t, strings.Index(html, "Changed Images"), strings.Index(html, "Added Images"))
}

func TestWriteComparisonEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "report")

	path, err := WriteComparison(dir, differ.Result{})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<h2>Changed Images</h2>")
	assert.NotContains(t, string(raw), "<img")
}

func TestFailureTitle(t *testing.T) {
	tests := []struct {
		img  string
		want string
	}{
		{"login-page-fails.png", "login page fails"},
		{"a.b.c.png", "a"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.img, func(t *testing.T) {
			assert.Equal(t, tt.want, Failure{Img: tt.img}.Title())
		})
	}
}

func TestCollectFailures(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b-test.png", "b-test.json", "a-test.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	got, err := CollectFailures(dir)
	require.NoError(t, err)
	assert.Equal(t, []Failure{
		{Img: "a-test.png", JSON: "a-test.json"},
		{Img: "b-test.png", JSON: "b-test.json"},
	}, got)

	_, err = CollectFailures(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestCollectFailuresEmpty(t *testing.T) {
	got, err := CollectFailures(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestWriteFailures(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("checkout-fails.png", "png")
	write("checkout-fails.json", `{"message":"boom"}`)
	write("broken-json.png", "png")
	write("broken-json.json", "not json <b>")
	write("no-errors.png", "png")

	failures, err := CollectFailures(dir)
	require.NoError(t, err)

	link, err := WriteFailures(dir, "abc123", "https://cdn.example.com/snaps/", failures)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/snaps/abc123/index.html", link)

	raw, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "A Listing of Test Failures for abc123")
	assert.Contains(t, html, `src="https://cdn.example.com/snaps/abc123/checkout-fails.png"`)
	assert.Contains(t, html, "<h3>checkout fails</h3>")
	assert.Contains(t, html, "Errors for: checkout fails")
	assert.Contains(t, html, "{\n  &#34;message&#34;: &#34;boom&#34;\n}")
	assert.Contains(t, html, "not json &lt;b&gt;")
	assert.NotContains(t, html, "Errors for: no errors")
}
