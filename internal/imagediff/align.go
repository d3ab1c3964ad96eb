// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package imagediff

import (
	"image"
	"image/color"
)

// PadColor marks canvas area that lies outside an image's original extent.
var PadColor = color.NRGBA{R: 0, G: 0, B: 0, A: 64}

// Align brings a and b to a common size. Same-size inputs are returned as is.
// Otherwise each is copied to the top-left of a max-width by max-height
// transparent canvas and its padding is painted with PadColor.
func Align(a, b *image.NRGBA) (*image.NRGBA, *image.NRGBA) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() == bb.Dx() && ab.Dy() == bb.Dy() {
		return a, b
	}

	w := max(ab.Dx(), bb.Dx())
	h := max(ab.Dy(), bb.Dy())

	return pad(a, w, h), pad(b, w, h)
}

func pad(src *image.NRGBA, w, h int) *image.NRGBA {
	ow, oh := src.Bounds().Dx(), src.Bounds().Dy()

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < oh; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+ow*4], src.Pix[y*src.Stride:y*src.Stride+ow*4])
	}

	// Strict comparison: the first column and row past the original extent
	// keep the canvas fill.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x > ow || y > oh {
				dst.SetNRGBA(x, y, PadColor)
			}
		}
	}

	return dst
}
