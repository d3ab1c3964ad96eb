// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapper captures screenshots during a test run and records them
// into the local snapshot store.
//
// A Snapper wraps any Capturer. RodPage is the go-rod implementation; tests
// and other drivers can supply their own.
package snapper
