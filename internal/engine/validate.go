package engine

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/fusiondex/dexbuild/internal/model"
)

// ErrOverlapUnresolved is returned when the repair pass cannot eliminate
// every overlap. An atlas with overlapping sprites renders corrupted, so
// this must abort the build rather than ship.
var ErrOverlapUnresolved = errors.New("overlap repair failed")

// Validate pairwise-checks a completed atlas for overlapping placements
// and returns the offending sprite index pairs. This duplicates the
// guarantee the guillotine split already provides; it exists because code
// downstream of the packer has historically reintroduced overlaps by
// re-sorting or mutating records after placement.
func Validate(sprites []model.SpriteRecord) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(sprites); i++ {
		if !sprites[i].Packable() {
			continue
		}
		for j := i + 1; j < len(sprites); j++ {
			if !sprites[j].Packable() {
				continue
			}
			if sprites[i].PlacedRect().Overlaps(sprites[j].PlacedRect()) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// findOverlaps returns every overlapping pair of placements, as indices
// into the placements slice with the earlier placement first.
func findOverlaps(placements []placement) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			if placements[i].rect.Overlaps(placements[j].rect) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// repair attempts to eliminate overlaps from a layout. It first runs a
// bounded number of pair-shift passes, nudging the later rectangle of each
// overlapping pair right or down by the overlap amount plus padding. If
// overlaps persist it falls back to a row-major sweep that re-lays every
// rectangle with enforced spacing, which cannot produce overlaps. A final
// check guards against regressions in the sweep itself.
func (p *Packer) repair(placements []placement, sheetW int) ([]placement, error) {
	pad := p.settings.RepairPadding

	for iter := 0; iter < p.settings.RepairIterations; iter++ {
		pairs := findOverlaps(placements)
		if len(pairs) == 0 {
			return placements, nil
		}
		for _, pair := range pairs {
			a := placements[pair[0]].rect
			b := &placements[pair[1]].rect
			if !a.Overlaps(*b) {
				continue // an earlier shift in this pass resolved it
			}
			overlapX := a.X + a.Width - b.X
			overlapY := a.Y + a.Height - b.Y
			if overlapX <= overlapY {
				b.X += overlapX + pad
			} else {
				b.Y += overlapY + pad
			}
		}
	}

	if len(findOverlaps(placements)) > 0 {
		p.log.Warn("pair-shift repair exhausted, falling back to row-major sweep")
		placements = p.sweep(placements, sheetW)
	}

	if pairs := findOverlaps(placements); len(pairs) > 0 {
		for _, pair := range pairs {
			a, b := placements[pair[0]], placements[pair[1]]
			p.log.Error("unresolvable overlap",
				zap.Int("sprite_a", a.sprite),
				zap.Any("rect_a", a.rect),
				zap.Int("sprite_b", b.sprite),
				zap.Any("rect_b", b.rect))
		}
		return nil, fmt.Errorf("%w: %d overlapping pairs remain", ErrOverlapUnresolved, len(pairs))
	}
	return placements, nil
}

// sweep re-lays all placements in row-major order (sorted by y, then x)
// with minimum spacing between neighbours. Row width is capped at the
// current sheet width; the sheet is free to grow downward.
func (p *Packer) sweep(placements []placement, sheetW int) []placement {
	pad := p.settings.RepairPadding
	out := make([]placement, len(placements))
	copy(out, placements)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].rect.Y != out[j].rect.Y {
			return out[i].rect.Y < out[j].rect.Y
		}
		return out[i].rect.X < out[j].rect.X
	})

	maxW := sheetW
	for _, pl := range out {
		if pl.rect.Width > maxW {
			maxW = pl.rect.Width
		}
	}

	cursorX, cursorY, rowH := 0, 0, 0
	for i := range out {
		r := &out[i].rect
		if cursorX > 0 && cursorX+r.Width > maxW {
			cursorX = 0
			cursorY += rowH + pad
			rowH = 0
		}
		r.X, r.Y = cursorX, cursorY
		cursorX += r.Width + pad
		if r.Height > rowH {
			rowH = r.Height
		}
	}
	return out
}
