// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package manifest defines the snapshot manifest: the mapping from a test's
// full title to the ordered image hashes it captured. It also provides the
// Recorder used while a test run is capturing.
package manifest
