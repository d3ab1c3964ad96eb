// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveDir returns dir as an absolute path. Relative paths are taken from
// the working directory. When mustExist is set, dir must be an existing
// directory.
func ResolveDir(dir string, mustExist bool) (string, error) {
	if dir == "" {
		return "", os.ErrInvalid
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	if !mustExist {
		return abs, nil
	}

	if r, err := os.Stat(abs); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return abs, nil
}

// RelativeToCwd returns file relative to the working directory. Empty input
// yields "<root>". Files outside the working directory keep their absolute
// path.
func RelativeToCwd(file string) string {
	if file == "" {
		return "<root>"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return file
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}

	rel, err := filepath.Rel(cwd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return filepath.ToSlash(rel)
}

// ListFiles returns the names of the regular files directly inside dir,
// sorted.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
