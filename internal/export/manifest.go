package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/fusiondex/dexbuild/internal/model"
)

const (
	spritesSheet = "Sprites"
	summarySheet = "Summary"
)

// WriteManifest writes the per-sprite placement manifest as an XLSX
// workbook: one row per canonical entry on the Sprites sheet, plus a
// Summary sheet with the build statistics.
func WriteManifest(path string, meta model.AtlasMetadata, summary model.BuildSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), spritesSheet)
	if err := writeSpriteRows(f, meta); err != nil {
		return err
	}
	if err := writeSummarySheet(f, meta, summary); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save manifest %s: %w", path, err)
	}
	return nil
}

func writeSpriteRows(f *excelize.File, meta model.AtlasMetadata) error {
	header := []interface{}{
		"ID", "Name", "Filename", "Placed",
		"X", "Y", "Width", "Height",
		"Original Width", "Original Height",
	}
	if err := f.SetSheetRow(spritesSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write manifest header: %w", err)
	}

	for i, s := range meta.Sprites {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address manifest row %d: %w", i+2, err)
		}
		row := []interface{}{
			s.ID, s.Name, s.Filename, s.Packable(),
			s.X, s.Y, s.Width, s.Height,
			s.OriginalWidth, s.OriginalHeight,
		}
		if err := f.SetSheetRow(spritesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write manifest row for %q: %w", s.Name, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, meta model.AtlasMetadata, summary model.BuildSummary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Run ID", summary.RunID},
		{"Generation", summary.Generation},
		{"Created At", summary.CreatedAt},
		{"Sheet Width", meta.SheetWidth},
		{"Sheet Height", meta.SheetHeight},
		{"Space Efficiency %", meta.SpaceEfficiency},
		{"Total Sprites", summary.TotalSprites},
		{"Placed", summary.PlacedSprites},
		{"Missing", summary.MissingSprites},
		{"Skipped", summary.SkippedSprites},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address summary row %d: %w", i+1, err)
		}
		r := row
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}
