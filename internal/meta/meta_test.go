// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package meta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdiff/snapdiff/internal/config"
)

func TestNew(t *testing.T) {
	cfg := config.Type{Data: map[string]interface{}{
		"localFolder": "out/snaps",
		"bucketProvider": map[string]interface{}{
			"name": "folder",
		},
	}}

	m, err := New(context.Background(), []string{"compare"}, cfg, "/work")
	require.NoError(t, err)

	assert.Equal(t, "out/snaps", m.Store.Root)
	assert.Equal(t, "folder", m.Settings.BucketProvider.Name)
	assert.Equal(t, config.DefaultBucketName, m.Settings.BucketName)
	assert.Equal(t, []string{"compare"}, m.Args)
	assert.Equal(t, "/work", m.StartingDir)
}

func TestNew_BadSettings(t *testing.T) {
	cfg := config.Type{Data: map[string]interface{}{"concurrency": "many"}}

	_, err := New(context.Background(), nil, cfg, "")
	assert.ErrorIs(t, err, config.ErrConfig)
}
