// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package imagediff

import (
	"image"
)

// Composite lays panels out left to right, top aligned, on a transparent
// canvas as wide as all of them together and as tall as the tallest. Pixels
// are copied byte for byte.
func Composite(panels ...*image.NRGBA) *image.NRGBA {
	w, h := 0, 0
	for _, p := range panels {
		w += p.Bounds().Dx()
		h = max(h, p.Bounds().Dy())
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	x := 0
	for _, p := range panels {
		pw, ph := p.Bounds().Dx(), p.Bounds().Dy()
		for y := 0; y < ph; y++ {
			copy(out.Pix[y*out.Stride+x*4:y*out.Stride+(x+pw)*4], p.Pix[y*p.Stride:y*p.Stride+pw*4])
		}
		x += pw
	}

	return out
}
