// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"long", []string{"snapdiff", "--version"}, true},
		{"short", []string{"snapdiff", "-v"}, true},
		{"subcommand first", []string{"snapdiff", "compare", "-v"}, false},
		{"none", []string{"snapdiff"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.want, handleVersion(&buf, tt.args))
			if tt.want {
				assert.Contains(t, buf.String(), "snapdiff ")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"snapdiff", "--help"}, handleNakedCommand([]string{"snapdiff"}))
	assert.Equal(t, []string{"snapdiff", "push", "x"}, handleNakedCommand([]string{"snapdiff", "push", "x"}))
}

func TestInitAndRunAppExitCodes(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SNAPDIFF_CFG_FILE", "")
	t.Setenv("SNAPDIFF_CACHE", "0")

	ctx := context.Background()

	// An explicitly named config file that does not exist fails init.
	assert.Equal(t, 1, initAndRunApp(ctx, []string{"snapdiff", "compare", "-c", filepath.Join(dir, "missing.yaml")}))

	// Without any config file compare fails when it runs.
	assert.Equal(t, 2, initAndRunApp(ctx, []string{"snapdiff", "compare"}))

	cfg := filepath.Join(dir, "snapdiff.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("bucketName: snaps\n"), 0o644))
	assert.Equal(t, 0, initAndRunApp(ctx, []string{"snapdiff", "--help"}))
}
