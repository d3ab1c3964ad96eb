// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package imagediff

import (
	"bytes"
	"image"
	"image/color"
)

// DiffColor paints pixels that differ.
var DiffColor = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

// fade is how strongly matching pixels keep their luma against white.
const fade = 0.1

// Mask compares two same-size images pixel by pixel with zero tolerance. In
// the returned raster, differing pixels are DiffColor and matching pixels are
// a faded grayscale of the original. The count of differing pixels is
// returned alongside.
func Mask(expected, actual *image.NRGBA) (*image.NRGBA, int) {
	b := expected.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	count := 0
	for y := 0; y < b.Dy(); y++ {
		e := expected.Pix[y*expected.Stride : y*expected.Stride+b.Dx()*4]
		a := actual.Pix[y*actual.Stride : y*actual.Stride+b.Dx()*4]
		o := out.Pix[y*out.Stride : y*out.Stride+b.Dx()*4]

		for i := 0; i < len(e); i += 4 {
			if bytes.Equal(e[i:i+4], a[i:i+4]) {
				v := gray(e[i], e[i+1], e[i+2], e[i+3])
				o[i], o[i+1], o[i+2], o[i+3] = v, v, v, 255
				continue
			}
			count++
			o[i], o[i+1], o[i+2], o[i+3] = DiffColor.R, DiffColor.G, DiffColor.B, DiffColor.A
		}
	}

	return out, count
}

// gray blends the pixel's luma toward white, weighted by its alpha.
func gray(r, g, b, a uint8) uint8 {
	y := float64(r)*0.29889531 + float64(g)*0.58662247 + float64(b)*0.11448223
	v := 255 + (y-255)*fade*float64(a)/255
	return uint8(v)
}
