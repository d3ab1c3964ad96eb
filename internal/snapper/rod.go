// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapper

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

const hideJS = `(sel) => {
	document.querySelectorAll(sel).forEach((e) => { e.style.visibility = 'hidden' })
}`

// RodPage adapts a go-rod page to Capturer.
type RodPage struct {
	Page *rod.Page
}

var _ Capturer = (*RodPage)(nil)

// NewRodPage opens url in a new tab of b. With useStealth the tab is created
// through go-rod/stealth so headless detection scripts see a normal browser.
func NewRodPage(ctx context.Context, b *rod.Browser, url string, useStealth bool) (*RodPage, error) {
	var page *rod.Page
	var err error

	if useStealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if err := page.Context(ctx).Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		log.WithError(err).Warnf("page %s did not finish loading", url)
	}

	return &RodPage{Page: page}, nil
}

// Capture implements Capturer.
func (p *RodPage) Capture(ctx context.Context, selector string) ([]byte, error) {
	page := p.Page.Context(ctx)

	if selector == "" {
		img, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
			Format: proto.PageCaptureScreenshotFormatPng,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to capture page: %w", err)
		}
		return img, nil
	}

	el, err := page.Element(selector)
	if err != nil {
		return nil, fmt.Errorf("failed to find %q: %w", selector, err)
	}
	img, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to capture %q: %w", selector, err)
	}
	return img, nil
}

// Hide implements Capturer.
func (p *RodPage) Hide(ctx context.Context, selector string) error {
	if _, err := p.Page.Context(ctx).Eval(hideJS, selector); err != nil {
		return fmt.Errorf("failed to hide %q: %w", selector, err)
	}
	return nil
}

// Close closes the underlying tab.
func (p *RodPage) Close() error {
	return p.Page.Close()
}
