// Package sprite handles per-sprite image concerns: locating sprite files
// on disk, decoding them, and computing the tight content bounds used by
// the packer.
package sprite

import (
	"image"

	"github.com/fusiondex/dexbuild/internal/model"
)

// ContentBounds returns the minimal axis-aligned rectangle covering every
// pixel with alpha > 0, in coordinates relative to the image's top-left
// corner, with an inclusive pixel-count convention (width = maxX-minX+1).
// It returns nil when the image is fully transparent. Sprites are assumed
// not anti-aliased, so any non-zero alpha counts as content. Pure function
// of the input; every pixel is scanned exactly once.
func ContentBounds(img image.Image) *model.Rect {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	mark := func(x, y int) {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	switch src := img.(type) {
	case *image.NRGBA:
		scanAlpha(src.Pix, src.Stride, b, mark)
	case *image.RGBA:
		scanAlpha(src.Pix, src.Stride, b, mark)
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
					mark(x, y)
				}
			}
		}
	}

	if maxX < minX {
		return nil
	}
	return &model.Rect{
		X:      minX - b.Min.X,
		Y:      minY - b.Min.Y,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}
}

// scanAlpha walks the raw 4-channel pixel buffer shared by the RGBA and
// NRGBA layouts, marking every pixel whose alpha byte is non-zero.
func scanAlpha(pix []byte, stride int, b image.Rectangle, mark func(x, y int)) {
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		row := pix[y*stride:]
		for x := 0; x < w; x++ {
			if row[x*4+3] > 0 {
				mark(b.Min.X+x, b.Min.Y+y)
			}
		}
	}
}
