// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bucket

import (
	"context"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Transfer pairs a local file with its key in a bucket.
type Transfer struct {
	Local string
	Key   string
}

// UploadAll uploads every item with at most limit in flight and returns the
// number of bytes sent. The first failure cancels the remaining uploads.
func UploadAll(ctx context.Context, p Provider, bucketName string, items []Transfer, limit int) (int64, error) {
	var total atomic.Int64

	err := each(ctx, items, limit, func(ctx context.Context, t Transfer) error {
		info, err := os.Stat(t.Local)
		if err != nil {
			return err
		}
		if _, err := p.UploadFile(ctx, bucketName, t.Local, t.Key); err != nil {
			return err
		}
		total.Add(info.Size())
		return nil
	})

	return total.Load(), err
}

// DownloadAll downloads every item with at most limit in flight. The first
// failure cancels the remaining downloads.
func DownloadAll(ctx context.Context, p Provider, bucketName string, items []Transfer, limit int) error {
	return each(ctx, items, limit, func(ctx context.Context, t Transfer) error {
		_, err := p.DownloadFile(ctx, bucketName, t.Key, t.Local)
		return err
	})
}

func each(ctx context.Context, items []Transfer, limit int, fn func(context.Context, Transfer) error) error {
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, t := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, t)
		})
	}
	return g.Wait()
}
