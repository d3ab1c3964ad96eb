// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for snapdiff's project
// configuration. The configuration is a YAML document (snapdiff.yaml) or the
// equivalent JSON (snapdiff.json) in the project's working directory, or the
// file named by SNAPDIFF_CFG_FILE.
package config
