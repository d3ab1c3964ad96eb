// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package imagediff

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"

	"github.com/apex/log"

	"github.com/snapdiff/snapdiff/internal/layout"
)

var (
	// ErrNotFound is returned when a referenced image is missing from the store.
	ErrNotFound = errors.New("image not found")
	// ErrDecode is returned when an image file is not a valid PNG.
	ErrDecode = errors.New("image decode failed")
)

// Stats describes one rendered composite.
type Stats struct {
	DiffPixels int `json:"diffPixels" yaml:"diffPixels"`
	Width      int `json:"width" yaml:"width"`
	Height     int `json:"height" yaml:"height"`
}

// DiffImage renders the expected|diff|actual composite for a changed image
// and writes it to the store as {actual}-{expected}.png. It returns the path
// written.
func DiffImage(store layout.Layout, expectedHash, actualHash string) (string, error) {
	path, _, err := diffImage(store, expectedHash, actualHash)
	return path, err
}

func diffImage(store layout.Layout, expectedHash, actualHash string) (string, Stats, error) {
	expected, err := Load(store, expectedHash)
	if err != nil {
		return "", Stats{}, err
	}
	actual, err := Load(store, actualHash)
	if err != nil {
		return "", Stats{}, err
	}

	alignedExpected, alignedActual := Align(expected, actual)
	mask, count := Mask(alignedExpected, alignedActual)
	composite := Composite(expected, mask, actual)

	var buf bytes.Buffer
	if err := Encode(&buf, composite); err != nil {
		return "", Stats{}, fmt.Errorf("failed to encode %s-%s: %w", actualHash, expectedHash, err)
	}

	path := store.DiffPath(actualHash, expectedHash)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:mnd
		return "", Stats{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	b := composite.Bounds()
	log.Debugf("wrote %s (%dx%d, %d differing pixels)", path, b.Dx(), b.Dy(), count)

	return path, Stats{DiffPixels: count, Width: b.Dx(), Height: b.Dy()}, nil
}

// Load reads and decodes images/{hash}.png from the store.
func Load(store layout.Layout, hash string) (*image.NRGBA, error) {
	if err := layout.CheckHash(hash); err != nil {
		return nil, err
	}
	path := store.ImagePath(hash)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNotFound, hash, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%s): %v", ErrDecode, hash, path, err)
	}

	return toNRGBA(img), nil
}

// toNRGBA returns img as non-premultiplied RGBA rooted at the origin.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}

	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
