package export

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/fusiondex/dexbuild/internal/model"
)

// buildTestAtlas creates a realistic build result for testing.
func buildTestAtlas() (model.AtlasMetadata, model.BuildSummary) {
	meta := model.AtlasMetadata{
		SheetWidth:  256,
		SheetHeight: 192,
		Sprites: []model.SpriteRecord{
			{
				ID: 1, Name: "Bulbasaur", Filename: "bulbasaur.png", Exists: true,
				OriginalWidth: 96, OriginalHeight: 96,
				ContentBounds: &model.Rect{X: 10, Y: 12, Width: 70, Height: 68},
				X:             0, Y: 0, Width: 70, Height: 68,
			},
			{
				ID: 4, Name: "Charmander", Filename: "charmander.png", Exists: true,
				OriginalWidth: 96, OriginalHeight: 96,
				ContentBounds: &model.Rect{X: 20, Y: 20, Width: 56, Height: 60},
				X:             70, Y: 0, Width: 56, Height: 60,
			},
			{ID: 7, Name: "Squirtle", Exists: false},
		},
	}
	meta.SpaceEfficiency = meta.Efficiency()

	summary := model.NewBuildSummary("gen1")
	summary.Fill(meta)
	return meta, summary
}

func testPreview() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 5), A: 255})
		}
	}
	return img
}

func TestWriteLayoutPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.pdf")

	meta, summary := buildTestAtlas()
	if err := WriteLayoutPDF(path, meta, summary, nil); err != nil {
		t.Fatalf("WriteLayoutPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestWriteLayoutPDF_WithPreview(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preview.pdf")

	meta, summary := buildTestAtlas()
	if err := WriteLayoutPDF(path, meta, summary, testPreview()); err != nil {
		t.Fatalf("WriteLayoutPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestWriteLayoutPDF_EmptyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := WriteLayoutPDF(path, model.AtlasMetadata{}, model.BuildSummary{}, nil)
	if err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}

func TestWriteLayoutPDF_ManySprites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many.pdf")

	// More sprites than outline colors to exercise color cycling.
	meta := model.AtlasMetadata{SheetWidth: 640, SheetHeight: 480}
	for i := 0; i < 20; i++ {
		meta.Sprites = append(meta.Sprites, model.SpriteRecord{
			ID: i + 1, Name: fmt.Sprintf("Mon %d", i+1), Exists: true,
			ContentBounds: &model.Rect{Width: 60, Height: 50},
			X:             (i % 5) * 64, Y: (i / 5) * 54, Width: 60, Height: 50,
		})
	}

	summary := model.NewBuildSummary("gen-test")
	summary.Fill(meta)

	if err := WriteLayoutPDF(path, meta, summary, nil); err != nil {
		t.Fatalf("WriteLayoutPDF returned error: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("PDF file missing or empty: %v", err)
	}
}

func TestWriteManifest_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.xlsx")

	meta, summary := buildTestAtlas()
	if err := WriteManifest(path, meta, summary); err != nil {
		t.Fatalf("WriteManifest returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("manifest is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(spritesSheet)
	if err != nil {
		t.Fatalf("failed to read sprite rows: %v", err)
	}
	// Header plus one row per canonical entry, missing included.
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[1][1] != "Bulbasaur" {
		t.Errorf("first sprite row name = %q, want Bulbasaur", rows[1][1])
	}
	if rows[3][3] != "FALSE" {
		t.Errorf("missing sprite placed flag = %q, want FALSE", rows[3][3])
	}

	sumRows, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("failed to read summary rows: %v", err)
	}
	if len(sumRows) == 0 || sumRows[0][1] != summary.RunID {
		t.Errorf("summary sheet missing run ID %q", summary.RunID)
	}
}

func TestWriteManifest_CreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "manifest.xlsx")

	meta, summary := buildTestAtlas()
	if err := WriteManifest(path, meta, summary); err != nil {
		t.Fatalf("WriteManifest returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("manifest was not created: %v", err)
	}
}
