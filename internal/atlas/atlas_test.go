package atlas

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusiondex/dexbuild/internal/model"
)

// coloredSprite builds an image whose content region is a solid color
// surrounded by transparent padding.
func coloredSprite(w, h int, content model.Rect, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := content.Y; y < content.Y+content.Height; y++ {
		for x := content.X; x < content.X+content.Width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func placed(id, x, y int, bounds model.Rect) model.SpriteRecord {
	return model.SpriteRecord{
		ID:            id,
		Exists:        true,
		ContentBounds: &bounds,
		X:             x, Y: y,
		Width: bounds.Width, Height: bounds.Height,
	}
}

func TestCompose_CropsAndPlaces(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	meta := model.AtlasMetadata{
		SheetWidth:  20,
		SheetHeight: 10,
		Sprites: []model.SpriteRecord{
			placed(1, 0, 0, model.Rect{X: 2, Y: 2, Width: 10, Height: 10}),
			placed(2, 10, 0, model.Rect{X: 0, Y: 0, Width: 10, Height: 10}),
		},
	}
	images := []image.Image{
		coloredSprite(14, 14, model.Rect{X: 2, Y: 2, Width: 10, Height: 10}, red),
		coloredSprite(10, 10, model.Rect{X: 0, Y: 0, Width: 10, Height: 10}, blue),
	}

	canvas, skipped := Compose(meta, images, nil)
	assert.Equal(t, 0, skipped)

	// The padding around sprite 1's content was cropped away: the atlas
	// origin pixel is the content itself.
	assert.Equal(t, red, canvas.NRGBAAt(0, 0))
	assert.Equal(t, red, canvas.NRGBAAt(9, 9))
	assert.Equal(t, blue, canvas.NRGBAAt(10, 0))
	assert.Equal(t, blue, canvas.NRGBAAt(19, 9))
}

func TestCompose_SkipsBrokenEntriesWithoutAborting(t *testing.T) {
	meta := model.AtlasMetadata{
		SheetWidth:  20,
		SheetHeight: 20,
		Sprites: []model.SpriteRecord{
			placed(1, 0, 0, model.Rect{X: 0, Y: 0, Width: 10, Height: 10}),
			// Bounds exceed the 4x4 source image.
			placed(2, 10, 0, model.Rect{X: 0, Y: 0, Width: 10, Height: 10}),
			// Placed but no decoded image survived loading.
			placed(3, 0, 10, model.Rect{X: 0, Y: 0, Width: 10, Height: 10}),
		},
	}
	green := color.NRGBA{G: 255, A: 255}
	images := []image.Image{
		coloredSprite(10, 10, model.Rect{X: 0, Y: 0, Width: 10, Height: 10}, green),
		image.NewNRGBA(image.Rect(0, 0, 4, 4)),
		nil,
	}

	canvas, skipped := Compose(meta, images, nil)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, green, canvas.NRGBAAt(0, 0), "healthy sprites still composite")
}

func TestCompose_IgnoresUnpackedSprites(t *testing.T) {
	meta := model.AtlasMetadata{
		SheetWidth:  10,
		SheetHeight: 10,
		Sprites:     []model.SpriteRecord{{ID: 1, Exists: false}},
	}

	canvas, skipped := Compose(meta, []image.Image{nil}, nil)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, color.NRGBA{}, canvas.NRGBAAt(0, 0))
}

func TestPreview_DownscalesLargeAtlases(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 200))

	small := Preview(img, 100)
	assert.Equal(t, 100, small.Bounds().Dx())
	assert.Equal(t, 50, small.Bounds().Dy())

	// Small images pass through untouched.
	tiny := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	assert.Equal(t, tiny.Bounds(), Preview(tiny, 100).Bounds())
}

func TestWritePNGAndWebP(t *testing.T) {
	dir := t.TempDir()
	img := coloredSprite(8, 8, model.Rect{Width: 8, Height: 8}, color.NRGBA{R: 1, A: 255})

	pngPath := filepath.Join(dir, "gen1", "atlas.png")
	require.NoError(t, WritePNG(pngPath, img))
	info, err := os.Stat(pngPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	webpPath := filepath.Join(dir, "gen1", "atlas.webp")
	require.NoError(t, WriteWebP(webpPath, img))
	info, err = os.Stat(webpPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSidecarRoundTrip(t *testing.T) {
	meta := model.AtlasMetadata{
		SheetWidth:      20,
		SheetHeight:     15,
		SpaceEfficiency: 100,
		Sprites: []model.SpriteRecord{
			placed(1, 0, 0, model.Rect{X: 2, Y: 2, Width: 10, Height: 10}),
			{ID: 2, Name: "missing", Exists: false},
		},
	}

	path := filepath.Join(t.TempDir(), "atlas.json")
	require.NoError(t, WriteSidecar(path, meta))

	got, err := ReadSidecar(path)
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

func TestWriteSummary(t *testing.T) {
	summary := model.NewBuildSummary("gen1")
	summary.SheetWidth = 128

	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(t, WriteSummary(path, summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), summary.RunID)
	assert.Contains(t, string(data), `"sheet_width": 128`)
}
