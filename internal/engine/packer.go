// Package engine implements the guillotine-tree bin packer that lays out
// trimmed sprites into a compact texture atlas.
package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/fusiondex/dexbuild/internal/model"
)

// ErrPackingFailed is returned when no trial canvas fits every sprite
// within the configured attempt budget.
var ErrPackingFailed = errors.New("packing failed: attempt budget exhausted")

// Packer places trimmed sprite rectangles into the smallest practical
// atlas canvas. It is not safe for concurrent use: the node arena is
// reused across placement attempts.
type Packer struct {
	settings model.PackSettings
	log      *zap.Logger
	nodes    []node
}

// node is one region of the guillotine tree. A node is either a free leaf
// (right and down are -1) or a used node split into two child free regions.
// Nodes live in the Packer's arena and reference children by index, so the
// whole tree is dropped in O(1) when a trial canvas is abandoned.
type node struct {
	x, y, w, h  int
	used        bool
	right, down int
}

// packRect is one sprite's trimmed rectangle awaiting placement.
type packRect struct {
	sprite int // index into the caller's sprite slice
	w, h   int
}

// placement is a positioned rectangle produced by a successful attempt.
type placement struct {
	sprite int
	rect   model.Rect
}

// New creates a Packer with the given settings.
func New(settings model.PackSettings, log *zap.Logger) *Packer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Packer{settings: settings, log: log}
}

// Pack lays out every packable sprite and returns the atlas metadata.
// Sprite order in the result matches the input order exactly; sprites
// without content keep zero placement fields. The returned layout is
// guaranteed overlap-free: a post-placement validation pass runs even
// though the guillotine split already forbids overlap by construction,
// and a bounded repair pass fixes any violation before failing hard.
func (p *Packer) Pack(sprites []model.SpriteRecord) (model.AtlasMetadata, error) {
	out := make([]model.SpriteRecord, len(sprites))
	copy(out, sprites)

	rects := make([]packRect, 0, len(out))
	for i := range out {
		if out[i].Packable() {
			rects = append(rects, packRect{
				sprite: i,
				w:      out[i].ContentBounds.Width,
				h:      out[i].ContentBounds.Height,
			})
		} else {
			out[i].X, out[i].Y, out[i].Width, out[i].Height = 0, 0, 0, 0
		}
	}

	meta := model.AtlasMetadata{Sprites: out}
	if len(rects) == 0 {
		return meta, nil
	}

	// Tallest first, widest breaking ties. Placing the large items early
	// leaves more usable remainder regions for the small ones.
	sort.SliceStable(rects, func(i, j int) bool {
		if rects[i].h != rects[j].h {
			return rects[i].h > rects[j].h
		}
		return rects[i].w > rects[j].w
	})

	canvasW, canvasH := p.estimateCanvas(rects)

	var placements []placement
	placed := false
	for attempt := 1; attempt <= p.settings.MaxAttempts; attempt++ {
		if pl, ok := p.tryPlace(rects, canvasW, canvasH); ok {
			placements = pl
			placed = true
			break
		}
		p.log.Debug("placement attempt failed, growing canvas",
			zap.Int("attempt", attempt),
			zap.Int("canvas_width", canvasW),
			zap.Int("canvas_height", canvasH))
		canvasW = int(math.Ceil(float64(canvasW) * p.settings.GrowthFactor))
		canvasH = int(math.Ceil(float64(canvasH) * p.settings.GrowthFactor))
	}
	if !placed {
		return model.AtlasMetadata{}, fmt.Errorf("%w after %d attempts (last canvas %dx%d, %d sprites)",
			ErrPackingFailed, p.settings.MaxAttempts, canvasW, canvasH, len(rects))
	}

	// Shrink the padded trial canvas to the tight bounding box of the
	// placed rectangles.
	sheetW, sheetH := boundsOf(placements)

	if pairs := findOverlaps(placements); len(pairs) > 0 {
		p.log.Warn("overlaps detected after placement, running repair",
			zap.Int("pairs", len(pairs)))
		repaired, err := p.repair(placements, sheetW)
		if err != nil {
			return model.AtlasMetadata{}, err
		}
		placements = repaired
		sheetW, sheetH = boundsOf(placements)
	}

	for _, pl := range placements {
		s := &out[pl.sprite]
		s.X, s.Y = pl.rect.X, pl.rect.Y
		s.Width, s.Height = pl.rect.Width, pl.rect.Height
	}

	meta.Sprites = out
	meta.SheetWidth = sheetW
	meta.SheetHeight = sheetH
	meta.SpaceEfficiency = meta.Efficiency()
	return meta, nil
}

// estimateCanvas seeds the first trial canvas from the total rectangle
// area and the average aspect ratio, plus a fixed padding margin so the
// first attempt usually succeeds.
func (p *Packer) estimateCanvas(rects []packRect) (int, int) {
	var totalArea float64
	var aspectSum float64
	maxW, maxH := 0, 0
	for _, r := range rects {
		totalArea += float64(r.w * r.h)
		aspectSum += float64(r.w) / float64(r.h)
		if r.w > maxW {
			maxW = r.w
		}
		if r.h > maxH {
			maxH = r.h
		}
	}
	aspect := aspectSum / float64(len(rects))

	w := int(math.Ceil(math.Sqrt(totalArea*aspect))) + p.settings.EstimatePadding
	h := int(math.Ceil(math.Sqrt(totalArea/aspect))) + p.settings.EstimatePadding

	// The canvas must at least admit the single largest rectangle.
	if w < maxW {
		w = maxW
	}
	if h < maxH {
		h = maxH
	}
	return w, h
}

// tryPlace attempts to position every rectangle on a fresh guillotine tree
// over a canvasW x canvasH canvas. It returns false as soon as any
// rectangle fails to find a fitting free leaf.
func (p *Packer) tryPlace(rects []packRect, canvasW, canvasH int) ([]placement, bool) {
	p.nodes = p.nodes[:0]
	p.nodes = append(p.nodes, node{w: canvasW, h: canvasH, right: -1, down: -1})

	placements := make([]placement, 0, len(rects))
	for _, r := range rects {
		idx := p.findNode(0, r.w, r.h)
		if idx < 0 {
			return nil, false
		}
		n := p.nodes[idx]
		p.splitNode(idx, r.w, r.h)
		placements = append(placements, placement{
			sprite: r.sprite,
			rect:   model.Rect{X: n.x, Y: n.y, Width: r.w, Height: r.h},
		})
	}
	return placements, true
}

// findNode searches depth-first for the first free leaf that fits a w x h
// rectangle, always descending the right subtree before the down subtree.
func (p *Packer) findNode(idx, w, h int) int {
	n := p.nodes[idx]
	if n.used {
		if found := p.findNode(n.right, w, h); found >= 0 {
			return found
		}
		return p.findNode(n.down, w, h)
	}
	if w <= n.w && h <= n.h {
		return idx
	}
	return -1
}

// splitNode marks a leaf used and splits its free space into a down region
// below the placed rectangle (full node width) and a right region beside it
// (placed height). The placed rectangle cannot overlap either child.
func (p *Packer) splitNode(idx, w, h int) {
	n := p.nodes[idx]
	downIdx := len(p.nodes)
	p.nodes = append(p.nodes, node{
		x: n.x, y: n.y + h,
		w: n.w, h: n.h - h,
		right: -1, down: -1,
	})
	rightIdx := len(p.nodes)
	p.nodes = append(p.nodes, node{
		x: n.x + w, y: n.y,
		w: n.w - w, h: h,
		right: -1, down: -1,
	})
	p.nodes[idx].used = true
	p.nodes[idx].down = downIdx
	p.nodes[idx].right = rightIdx
}

// boundsOf returns the tight bounding box of all placements.
func boundsOf(placements []placement) (int, int) {
	var w, h int
	for _, pl := range placements {
		if right := pl.rect.X + pl.rect.Width; right > w {
			w = right
		}
		if bottom := pl.rect.Y + pl.rect.Height; bottom > h {
			h = bottom
		}
	}
	return w, h
}
