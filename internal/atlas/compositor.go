// Package atlas renders packed sprite layouts into atlas images and
// writes the metadata sidecars consumed by the rendering application.
package atlas

import (
	"image"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/fusiondex/dexbuild/internal/model"
)

// Compose crops each placed sprite to its content bounds and draws it onto
// a transparent canvas at its assigned position. images must be parallel
// to meta.Sprites (the loader's output order). A sprite whose crop fails
// is logged and skipped; partial atlases are acceptable, missing entries
// stay flagged in the sidecar. Returns the canvas and the skip count.
func Compose(meta model.AtlasMetadata, images []image.Image, log *zap.Logger) (*image.NRGBA, int) {
	if log == nil {
		log = zap.NewNop()
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, meta.SheetWidth, meta.SheetHeight))
	skipped := 0

	for i, s := range meta.Sprites {
		if !s.Packable() {
			continue
		}
		if i >= len(images) || images[i] == nil {
			skipped++
			log.Error("no decoded image for placed sprite",
				zap.Int("id", s.ID), zap.String("name", s.Name))
			continue
		}
		src := images[i]
		cb := s.ContentBounds
		srcRect := image.Rect(cb.X, cb.Y, cb.X+cb.Width, cb.Y+cb.Height).Add(src.Bounds().Min)
		if !srcRect.In(src.Bounds()) {
			skipped++
			log.Error("content bounds exceed source image",
				zap.Int("id", s.ID),
				zap.String("name", s.Name),
				zap.Any("bounds", cb),
				zap.Any("image", src.Bounds()))
			continue
		}
		xdraw.Copy(canvas, image.Pt(s.X, s.Y), src, srcRect, xdraw.Src, nil)
	}
	return canvas, skipped
}

// Preview returns a copy of the atlas scaled down to fit maxDim on its
// longer side, for embedding into the PDF report. Nearest-neighbor keeps
// the pixel art legible. Images already within maxDim pass through.
func Preview(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if (w <= maxDim && h <= maxDim) || w == 0 || h == 0 {
		return img
	}
	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
