// Package model defines the data types shared by the sprite packing
// pipeline: sprite records, atlas metadata, and packing settings.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Rect is an axis-aligned rectangle in pixel coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns the rectangle area in square pixels.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Overlaps reports whether two rectangles overlap. Rectangles that merely
// share an edge do not overlap (open-rectangle intersection).
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// SpriteRecord is one entry per canonical Pokémon per sprite generation.
// It is created by the loader, sized by content-bounds analysis, positioned
// by the packer, and serialized once into the metadata sidecar.
type SpriteRecord struct {
	ID       int    `json:"id"` // canonical dex/fusion ID; negative for synthetic entries
	Name     string `json:"name"`
	Filename string `json:"filename"` // empty when no sprite was found on disk
	Exists   bool   `json:"exists"`

	// Full image canvas size before trimming.
	OriginalWidth  int `json:"originalWidth"`
	OriginalHeight int `json:"originalHeight"`

	// Tight bounding box of non-transparent pixels within the original
	// image. Nil when the image is missing or fully transparent.
	ContentBounds *Rect `json:"contentBounds"`

	// Placement of the trimmed content within the output atlas.
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Packable reports whether the sprite has trimmed content that can be
// placed into an atlas.
func (s SpriteRecord) Packable() bool {
	return s.Exists && s.ContentBounds != nil &&
		s.ContentBounds.Width > 0 && s.ContentBounds.Height > 0
}

// PlacedRect returns the sprite's rectangle within the atlas.
func (s SpriteRecord) PlacedRect() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// AtlasMetadata is the JSON sidecar written next to each atlas image.
// Sprites are kept in canonical ID order, including missing entries, so
// downstream consumers can index by position.
type AtlasMetadata struct {
	SheetWidth      int            `json:"sheetWidth"`
	SheetHeight     int            `json:"sheetHeight"`
	SpaceEfficiency float64        `json:"spaceEfficiency"`
	Sprites         []SpriteRecord `json:"sprites"`
}

// UsedArea returns the total area covered by placed sprites.
func (m AtlasMetadata) UsedArea() int {
	var total int
	for _, s := range m.Sprites {
		if s.Packable() {
			total += s.Width * s.Height
		}
	}
	return total
}

// Efficiency returns the placed-area percentage of the sheet, in [0,100].
func (m AtlasMetadata) Efficiency() float64 {
	sheetArea := m.SheetWidth * m.SheetHeight
	if sheetArea == 0 {
		return 0
	}
	return float64(m.UsedArea()) / float64(sheetArea) * 100.0
}

// PackSettings holds the packer tuning knobs. The growth factor and attempt
// cap are load-bearing: regression fixtures depend on the exact atlas
// dimensions they produce.
type PackSettings struct {
	GrowthFactor     float64 `json:"growth_factor" yaml:"growth_factor"`         // canvas growth per failed attempt
	MaxAttempts      int     `json:"max_attempts" yaml:"max_attempts"`           // placement attempts before giving up
	EstimatePadding  int     `json:"estimate_padding" yaml:"estimate_padding"`   // px margin added to the initial canvas estimate
	RepairIterations int     `json:"repair_iterations" yaml:"repair_iterations"` // pair-shift passes before the sweep fallback
	RepairPadding    int     `json:"repair_padding" yaml:"repair_padding"`       // px spacing enforced between repaired sprites
}

// DefaultPackSettings returns the packer defaults used by the build scripts.
func DefaultPackSettings() PackSettings {
	return PackSettings{
		GrowthFactor:     1.25,
		MaxAttempts:      12,
		EstimatePadding:  16,
		RepairIterations: 8,
		RepairPadding:    1,
	}
}

// BuildSummary captures the outcome of one atlas build run.
type BuildSummary struct {
	RunID      string `json:"run_id"`
	Generation string `json:"generation"`
	CreatedAt  string `json:"created_at"`

	SheetWidth      int     `json:"sheet_width"`
	SheetHeight     int     `json:"sheet_height"`
	SpaceEfficiency float64 `json:"space_efficiency"`

	TotalSprites   int `json:"total_sprites"`
	PlacedSprites  int `json:"placed_sprites"`
	MissingSprites int `json:"missing_sprites"`
	SkippedSprites int `json:"skipped_sprites"` // compositing failures
}

// NewBuildSummary creates a summary stamped with a fresh run ID.
func NewBuildSummary(generation string) BuildSummary {
	return BuildSummary{
		RunID:      uuid.New().String()[:8],
		Generation: generation,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

// Fill copies the sheet statistics from a completed atlas into the summary.
func (b *BuildSummary) Fill(meta AtlasMetadata) {
	b.SheetWidth = meta.SheetWidth
	b.SheetHeight = meta.SheetHeight
	b.SpaceEfficiency = meta.SpaceEfficiency
	b.TotalSprites = len(meta.Sprites)
	b.PlacedSprites = 0
	b.MissingSprites = 0
	for _, s := range meta.Sprites {
		switch {
		case s.Packable():
			b.PlacedSprites++
		case !s.Exists:
			b.MissingSprites++
		}
	}
}
