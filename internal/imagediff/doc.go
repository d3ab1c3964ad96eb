// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package imagediff renders pixel diffs between two PNG snapshots.
//
// A diff is a single PNG strip of three panels: the expected image, a mask
// where every differing pixel is red and every matching pixel is a faded
// gray, and the actual image. Images of different sizes are first padded to a
// common canvas for the mask; size mismatch is never an error.
package imagediff
