// Package export renders build results into report formats: a PDF layout
// diagram of the packed atlas and an XLSX sprite manifest.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"

	"github.com/fusiondex/dexbuild/internal/model"
)

// spriteColor is the RGB outline color cycle for the layout diagram.
type spriteColor struct {
	R, G, B int
}

var spriteColors = []spriteColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// WriteLayoutPDF generates the atlas build report: a scaled placement
// diagram, the build statistics, and optionally a rasterized preview of
// the composited atlas on a second page.
func WriteLayoutPDF(path string, meta model.AtlasMetadata, summary model.BuildSummary, preview image.Image) error {
	if meta.SheetWidth == 0 || meta.SheetHeight == 0 {
		return fmt.Errorf("no atlas layout to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, meta, summary)

	if preview != nil {
		if err := renderPreviewPage(pdf, preview, summary); err != nil {
			return err
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the placement diagram with the stats header.
func renderLayoutPage(pdf *fpdf.Fpdf, meta model.AtlasMetadata, summary model.BuildSummary) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Atlas %s: %d x %d px (run %s)",
		summary.Generation, meta.SheetWidth, meta.SheetHeight, summary.RunID)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Sprites: %d placed, %d missing, %d skipped | Efficiency: %.1f%%",
		summary.PlacedSprites, summary.MissingSprites, summary.SkippedSprites, meta.SpaceEfficiency)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Scale the sheet into the drawing area, preserving aspect ratio.
	drawW := pageWidth - marginLeft - marginRight
	drawH := pageHeight - drawAreaTop - marginBottom
	scale := drawW / float64(meta.SheetWidth)
	if s := drawH / float64(meta.SheetHeight); s < scale {
		scale = s
	}

	sheetW := float64(meta.SheetWidth) * scale
	sheetH := float64(meta.SheetHeight) * scale
	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(0.4)
	pdf.Rect(marginLeft, drawAreaTop, sheetW, sheetH, "D")

	pdf.SetLineWidth(0.1)
	colorIdx := 0
	for _, s := range meta.Sprites {
		if !s.Packable() {
			continue
		}
		c := spriteColors[colorIdx%len(spriteColors)]
		colorIdx++
		pdf.SetDrawColor(c.R, c.G, c.B)
		pdf.Rect(
			marginLeft+float64(s.X)*scale,
			drawAreaTop+float64(s.Y)*scale,
			float64(s.Width)*scale,
			float64(s.Height)*scale,
			"D",
		)
	}
}

// renderPreviewPage embeds the downscaled atlas raster on its own page.
func renderPreviewPage(pdf *fpdf.Fpdf, preview image.Image, summary model.BuildSummary) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, preview); err != nil {
		return fmt.Errorf("failed to encode report preview: %w", err)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight,
		fmt.Sprintf("Atlas %s preview", summary.Generation), "", 0, "L", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("atlas-preview", opts, &buf)

	b := preview.Bounds()
	drawW := pageWidth - marginLeft - marginRight
	drawH := pageHeight - drawAreaTop - marginBottom
	scale := drawW / float64(b.Dx())
	if s := drawH / float64(b.Dy()); s < scale {
		scale = s
	}
	pdf.ImageOptions("atlas-preview", marginLeft, drawAreaTop,
		float64(b.Dx())*scale, float64(b.Dy())*scale, false, opts, 0, "")
	return nil
}
