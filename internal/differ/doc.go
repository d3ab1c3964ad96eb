// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes the structural difference between two snapshot
// manifests and renders raw manifest deltas for inspection.
package differ
