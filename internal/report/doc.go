// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package report writes the static HTML pages published next to snapshots:
// the comparison report for a compare run and the failure listing for a
// commit.
package report
