// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Save writes the result as indented JSON, creating parent directories.
func (r Result) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal diff result: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create result directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write diff result %s: %w", path, err)
	}
	return nil
}

// LoadResult reads a result written by Save.
func LoadResult(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read diff result: %w", err)
	}
	r := newResult(time.UnixMilli(0))
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("failed to unmarshal diff result %s: %w", path, err)
	}
	return r, nil
}
