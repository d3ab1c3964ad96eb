// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"time"

	"github.com/apex/log"

	"github.com/snapdiff/snapdiff/internal/manifest"
)

// ImageDiff is a pair of hashes found at the same position of the same test
// in both manifests.
type ImageDiff struct {
	Context  manifest.TestContext `json:"context"`
	Expected string               `json:"expected"`
	Actual   string               `json:"actual"`
}

// CompositeName is the file name of the rendered diff for this pair.
func (d ImageDiff) CompositeName() string {
	return d.Actual + "-" + d.Expected + ".png"
}

// ImageChange is a single image added to or removed from a test that exists
// in both manifests.
type ImageChange struct {
	Image   string               `json:"image"`
	Context manifest.TestContext `json:"context"`
}

// TestChange is a whole test present in only one manifest.
type TestChange struct {
	Images  []string             `json:"images"`
	Context manifest.TestContext `json:"context"`
}

// Result is the structural difference between an expected and an actual
// manifest. Time is in milliseconds since the epoch.
type Result struct {
	Time          int64         `json:"time"`
	AddedTests    []TestChange  `json:"addedTests"`
	RemovedTests  []TestChange  `json:"removedTests"`
	ImageDiffs    []ImageDiff   `json:"imageDiffs"`
	AddedImages   []ImageChange `json:"addedImages"`
	RemovedImages []ImageChange `json:"removedImages"`
}

// Counts summarizes a Result.
type Counts struct {
	Changed       int `json:"changed" yaml:"changed"`
	AddedTests    int `json:"addedTests" yaml:"addedTests"`
	AddedImages   int `json:"addedImages" yaml:"addedImages"`
	RemovedTests  int `json:"removedTests" yaml:"removedTests"`
	RemovedImages int `json:"removedImages" yaml:"removedImages"`
}

// Empty reports whether nothing changed.
func (r Result) Empty() bool {
	return len(r.ImageDiffs) == 0 &&
		len(r.AddedTests) == 0 &&
		len(r.AddedImages) == 0 &&
		len(r.RemovedTests) == 0 &&
		len(r.RemovedImages) == 0
}

// Counts returns the length of every list.
func (r Result) Counts() Counts {
	return Counts{
		Changed:       len(r.ImageDiffs),
		AddedTests:    len(r.AddedTests),
		AddedImages:   len(r.AddedImages),
		RemovedTests:  len(r.RemovedTests),
		RemovedImages: len(r.RemovedImages),
	}
}

// newResult returns a Result whose lists encode as [] rather than null.
func newResult(now time.Time) Result {
	return Result{
		Time:          now.UnixMilli(),
		AddedTests:    []TestChange{},
		RemovedTests:  []TestChange{},
		ImageDiffs:    []ImageDiff{},
		AddedImages:   []ImageChange{},
		RemovedImages: []ImageChange{},
	}
}

// Compare classifies every difference between expected and actual.
//
// A test present in only one manifest is reported whole. For a test present
// in both, images are compared index by index: differing hashes at a shared
// position become an ImageDiff, surplus trailing images in actual are added
// and surplus trailing images in expected are removed. Context changes are
// ignored. Keys are visited in sorted order so the output is deterministic.
func Compare(expected, actual manifest.Manifest) Result {
	return compareAt(expected, actual, time.Now())
}

func compareAt(expected, actual manifest.Manifest, now time.Time) Result {
	result := newResult(now)

	for _, key := range actual.Keys() {
		if _, ok := expected[key]; !ok {
			e := actual[key]
			result.AddedTests = append(result.AddedTests, TestChange{
				Images:  append([]string{}, e.Images...),
				Context: e.Context,
			})
		}
	}

	for _, key := range expected.Keys() {
		exp := expected[key]
		act, ok := actual[key]
		if !ok {
			result.RemovedTests = append(result.RemovedTests, TestChange{
				Images:  append([]string{}, exp.Images...),
				Context: exp.Context,
			})
			continue
		}

		shared := min(len(exp.Images), len(act.Images))
		for i := 0; i < shared; i++ {
			if exp.Images[i] != act.Images[i] {
				result.ImageDiffs = append(result.ImageDiffs, ImageDiff{
					Context:  act.Context,
					Expected: exp.Images[i],
					Actual:   act.Images[i],
				})
			}
		}
		for _, h := range act.Images[shared:] {
			result.AddedImages = append(result.AddedImages, ImageChange{Image: h, Context: act.Context})
		}
		for _, h := range exp.Images[shared:] {
			result.RemovedImages = append(result.RemovedImages, ImageChange{Image: h, Context: exp.Context})
		}
	}

	log.Debugf("compare: expected=%d actual=%d counts=%+v", len(expected), len(actual), result.Counts())
	return result
}
