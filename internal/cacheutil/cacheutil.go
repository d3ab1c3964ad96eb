// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/snapdiff/snapdiff/internal/log"
)

// Entry represents a cached object on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
}

// Dir resolves the base cache directory.
// Precedence:
//  1. SNAPDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/snapdiff
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("SNAPDIFF_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "snapdiff"), true
	}
	return "", false
}

// Enabled returns true unless SNAPDIFF_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("SNAPDIFF_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Scope names the cache partition for one bucket of one provider. Objects
// from different stores never share a partition.
func Scope(provider, bucket string) string {
	return encodeKey(provider + "\x00" + bucket)[:16]
}

// EntryPath returns the absolute path where a cache entry would live given
// the scope and the clear-text key. It also returns true if a file currently
// exists at that path.
func EntryPath(scope, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(base, scope, encodeKey(clearKey))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debugf("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	removed := 0
	if err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
				return nil
			}
			removed++
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}

	log.Debugf("purged %d cache files older than %dh", removed, hours)
	return nil
}

// Read returns the cached entry for key, if any. Content is returned as
// stored; images are binary.
func Read(scope, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(scope, clearKey)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", clearKey)
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       b,
	}, true
}

// Write stores data for key. The file is written next to its final name and
// renamed into place so concurrent writers never expose a partial entry.
func Write(scope, clearKey string, data []byte) error {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	dir := filepath.Join(base, scope)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := replaceFile(filepath.Join(dir, encodeKey(clearKey)), data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("cache write: key=%s", clearKey)
	return nil
}

// replaceFile writes data to a temp file beside path and renames it over path.
func replaceFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Fetch copies the cached object for key to dst, creating dst's directory.
// It reports whether the cache had the object.
func Fetch(scope, clearKey, dst string) (bool, error) {
	entry, ok := Read(scope, clearKey)
	if !ok {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil { //nolint:mnd
		return false, err
	}
	if err := replaceFile(dst, entry.Data, 0o644); err != nil { //nolint:mnd
		return false, err
	}
	return true, nil
}

// Store caches the file at src under key.
func Store(scope, clearKey, src string) error {
	if !Enabled() {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s for cache: %w", src, err)
	}
	return Write(scope, clearKey, data)
}

// encodeKey returns the hex sha256 of input.
func encodeKey(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
