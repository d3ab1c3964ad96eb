// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package imagediff

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"io"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

const (
	bitDepth    = 8
	colorRGBA   = 6
	filterPaeth = 4
	bpp         = 4
)

// Encode writes img as an 8-bit RGBA PNG. Every scanline uses the Paeth
// filter, so output for a given image never depends on filter heuristics.
func Encode(w io.Writer, img *image.NRGBA) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	if _, err := w.Write(pngSignature); err != nil {
		return err
	}

	ihdr := make([]byte, 13) //nolint:mnd
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = bitDepth
	ihdr[9] = colorRGBA
	// compression, filter method and interlace stay 0
	if err := writeChunk(w, "IHDR", ihdr); err != nil {
		return err
	}

	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, zlib.BestSpeed)
	if err != nil {
		return err
	}

	rowLen := width * bpp
	prev := make([]byte, rowLen)
	line := make([]byte, rowLen+1)
	line[0] = filterPaeth
	for y := 0; y < height; y++ {
		off := y * img.Stride
		cur := img.Pix[off : off+rowLen]
		paethRow(line[1:], cur, prev)
		if _, err := zw.Write(line); err != nil {
			return err
		}
		copy(prev, cur)
	}
	if err := zw.Close(); err != nil {
		return err
	}

	if err := writeChunk(w, "IDAT", idat.Bytes()); err != nil {
		return err
	}
	return writeChunk(w, "IEND", nil)
}

func paethRow(dst, cur, prev []byte) {
	for i := range cur {
		var a, c byte
		if i >= bpp {
			a = cur[i-bpp]
			c = prev[i-bpp]
		}
		dst[i] = cur[i] - paeth(a, prev[i], c)
	}
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func writeChunk(w io.Writer, kind string, data []byte) error {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], kind)

	crc := crc32.NewIEEE()
	crc.Write(header[4:])
	crc.Write(data)

	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())

	for _, p := range [][]byte{header[:], data, footer[:]} {
		if _, err := w.Write(p); err != nil {
			return err
		}
	}
	return nil
}
