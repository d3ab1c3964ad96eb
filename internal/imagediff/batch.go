// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package imagediff

import (
	"context"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/snapdiff/snapdiff/internal/layout"
)

// Pair names two images to diff.
type Pair struct {
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual" yaml:"actual"`
}

// Outcome is the result of diffing one Pair. Err is set when that pair
// failed; the other fields are then zero.
type Outcome struct {
	Pair
	Path  string `json:"path,omitempty" yaml:"path,omitempty"`
	Stats Stats  `json:"stats" yaml:"stats"`
	Err   error  `json:"-" yaml:"-"`
}

// render is swapped in tests to observe scheduling.
var render = diffImage

// Batch diffs every pair with at most limit in flight. Outcomes are returned
// in input order. A failed pair is reported in its Outcome; Batch itself only
// fails when ctx is done. Repeated pairs are rendered once.
func Batch(ctx context.Context, store layout.Layout, pairs []Pair, limit int) ([]Outcome, error) {
	if limit < 1 {
		limit = 1
	}

	outcomes := make([]Outcome, len(pairs))
	first := make(map[Pair]int, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, p := range pairs {
		if _, seen := first[p]; seen {
			continue
		}
		first[p] = i

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			path, stats, err := render(store, p.Expected, p.Actual)
			if err != nil {
				log.WithError(err).Warnf("diff %s-%s failed", p.Actual, p.Expected)
			}
			outcomes[i] = Outcome{Pair: p, Path: path, Stats: stats, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}

	for i, p := range pairs {
		if j := first[p]; j != i {
			outcomes[i] = outcomes[j]
		}
	}

	return outcomes, nil
}

// Failed returns the outcomes whose pair could not be rendered.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
