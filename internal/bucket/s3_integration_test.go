// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package bucket

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_S3RoundTrip pushes and pulls an object through a real
// bucket. It needs SNAPDIFF_IT_BUCKET and working AWS credentials;
// SNAPDIFF_IT_ENDPOINT targets an S3-compatible service instead.
func TestIntegration_S3RoundTrip(t *testing.T) {
	bucketName := os.Getenv("SNAPDIFF_IT_BUCKET")
	if bucketName == "" {
		t.Skip("SNAPDIFF_IT_BUCKET not set")
	}

	ctx := context.Background()
	p, err := New(ctx, S3, map[string]string{
		"region":       os.Getenv("AWS_REGION"),
		"endpoint":     os.Getenv("SNAPDIFF_IT_ENDPOINT"),
		"usePathStyle": os.Getenv("SNAPDIFF_IT_PATH_STYLE"),
	})
	require.NoError(t, err)

	prefix := fmt.Sprintf("it-%d/", time.Now().UnixNano())
	src := filepath.Join(t.TempDir(), "a.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"hello":"snapdiff"}`), 0o600))

	_, err = p.UploadFile(ctx, bucketName, src, prefix+"meta/a.json")
	require.NoError(t, err)

	keys, err := p.List(ctx, bucketName, prefix)
	require.NoError(t, err)
	assert.Equal(t, []string{prefix + "meta/a.json"}, keys)

	dst := filepath.Join(t.TempDir(), "out", "a.json")
	_, err = p.DownloadFile(ctx, bucketName, prefix+"meta/a.json", dst)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello":"snapdiff"}`, string(got))
}
