// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"github.com/snapdiff/snapdiff/internal/differ"
	"github.com/snapdiff/snapdiff/internal/imagediff"
)

// Change kinds, in the order compare reports them.
const (
	KindChanged      = "changed"
	KindAddedImage   = "added-image"
	KindRemovedImage = "removed-image"
	KindAddedTest    = "added-test"
	KindRemovedTest  = "removed-test"
)

// Row is one reported change.
type Row struct {
	Kind      string `json:"kind" yaml:"kind"`
	Test      string `json:"test" yaml:"test"`
	File      string `json:"file" yaml:"file"`
	Expected  string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual    string `json:"actual,omitempty" yaml:"actual,omitempty"`
	Images    int    `json:"images,omitempty" yaml:"images,omitempty"`
	Pixels    int    `json:"pixels,omitempty" yaml:"pixels,omitempty"`
	Composite string `json:"composite,omitempty" yaml:"composite,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary is everything compare reports about one comparison.
type Summary struct {
	Target string        `json:"target" yaml:"target"`
	Time   int64         `json:"time" yaml:"time"`
	Counts differ.Counts `json:"counts" yaml:"counts"`
	Rows   []Row         `json:"changes" yaml:"changes"`
	Report string        `json:"report,omitempty" yaml:"report,omitempty"`
}

// NewSummary flattens result into rows. Outcomes, when given, add pixel
// counts, composite paths and failures to the changed rows; they are matched
// by expected/actual pair.
func NewSummary(target string, result differ.Result, outcomes []imagediff.Outcome) Summary {
	byPair := make(map[imagediff.Pair]imagediff.Outcome, len(outcomes))
	for _, o := range outcomes {
		byPair[o.Pair] = o
	}

	rows := []Row{}
	for _, d := range result.ImageDiffs {
		row := Row{
			Kind:     KindChanged,
			Test:     d.Context.FullTitle,
			File:     d.Context.File,
			Expected: d.Expected,
			Actual:   d.Actual,
		}
		if o, ok := byPair[imagediff.Pair{Expected: d.Expected, Actual: d.Actual}]; ok {
			row.Pixels = o.Stats.DiffPixels
			row.Composite = o.Path
			if o.Err != nil {
				row.Error = o.Err.Error()
			}
		}
		rows = append(rows, row)
	}
	for _, c := range result.AddedImages {
		rows = append(rows, Row{Kind: KindAddedImage, Test: c.Context.FullTitle, File: c.Context.File, Actual: c.Image})
	}
	for _, c := range result.RemovedImages {
		rows = append(rows, Row{Kind: KindRemovedImage, Test: c.Context.FullTitle, File: c.Context.File, Expected: c.Image})
	}
	for _, c := range result.AddedTests {
		rows = append(rows, Row{Kind: KindAddedTest, Test: c.Context.FullTitle, File: c.Context.File, Images: len(c.Images)})
	}
	for _, c := range result.RemovedTests {
		rows = append(rows, Row{Kind: KindRemovedTest, Test: c.Context.FullTitle, File: c.Context.File, Images: len(c.Images)})
	}

	return Summary{
		Target: target,
		Time:   result.Time,
		Counts: result.Counts(),
		Rows:   rows,
	}
}

// Field returns the named column of r, for sorting and tables.
func (r Row) Field(name string) interface{} {
	switch name {
	case "kind":
		return r.Kind
	case "test":
		return r.Test
	case "file":
		return r.File
	case "expected":
		return r.Expected
	case "actual":
		return r.Actual
	case "images":
		return r.Images
	case "pixels":
		return r.Pixels
	case "composite":
		return r.Composite
	case "error":
		return r.Error
	default:
		return nil
	}
}
