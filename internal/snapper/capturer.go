// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapper

import "context"

// Capturer is anything that can screenshot itself and hide parts of itself.
type Capturer interface {
	// Capture returns a PNG of the element matched by selector, or of the
	// viewport when selector is empty.
	Capture(ctx context.Context, selector string) ([]byte, error)
	// Hide makes every element matching selector invisible without changing
	// layout.
	Hide(ctx context.Context, selector string) error
}
