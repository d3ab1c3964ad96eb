// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/snapdiff/snapdiff/internal/layout"
)

// ErrParse marks a manifest document that is not valid JSON or does not have
// the manifest shape.
var ErrParse = errors.New("manifest parse error")

// TestContext identifies a test case across runs. FullTitle is the key.
type TestContext struct {
	Title     string `json:"title"`
	FullTitle string `json:"fullTitle"`
	File      string `json:"file"`
}

// Entry holds the image hashes captured by one test, in capture order.
type Entry struct {
	Images  []string    `json:"images"`
	Context TestContext `json:"context"`
}

// Manifest maps a test's full title to its entry.
type Manifest map[string]Entry

// Keys returns the test titles in sorted order.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (m Manifest) Clone() Manifest {
	out := make(Manifest, len(m))
	for k, e := range m {
		out[k] = Entry{
			Images:  append([]string(nil), e.Images...),
			Context: e.Context,
		}
	}
	return out
}

// Hashes returns every image hash referenced by the manifest, deduplicated
// and sorted.
func (m Manifest) Hashes() []string {
	seen := map[string]struct{}{}
	for _, e := range m {
		for _, h := range e.Images {
			seen[h] = struct{}{}
		}
	}
	hashes := make([]string, 0, len(seen))
	for h := range seen {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)
	return hashes
}

// Parse decodes a manifest document.
func Parse(data []byte) (Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrParse)
	}
	if root := gjson.ParseBytes(data); !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrParse)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if m == nil {
		m = Manifest{}
	}
	for k, e := range m {
		for _, h := range e.Images {
			if err := layout.CheckHash(h); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrParse, k, err)
			}
		}
		if e.Images == nil {
			e.Images = []string{}
			m[k] = e
		}
	}
	return m, nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Marshal encodes the manifest as indented JSON. encoding/json sorts map keys
// so the output is stable.
func (m Manifest) Marshal() ([]byte, error) {
	if m == nil {
		m = Manifest{}
	}
	return json.MarshalIndent(m, "", "  ")
}

// Save writes the manifest to path, creating parent directories.
func (m Manifest) Save(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}
