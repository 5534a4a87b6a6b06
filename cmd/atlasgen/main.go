// atlasgen builds a trimmed sprite atlas for one sprite generation: it
// loads the canonical Pokémon dataset, decodes and trims the sprites,
// packs them into a single sheet, and writes the atlas image alongside
// its JSON sidecar and optional reports.
//
// Build:
//
//	go build -o atlasgen ./cmd/atlasgen
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fusiondex/dexbuild/internal/atlas"
	"github.com/fusiondex/dexbuild/internal/config"
	"github.com/fusiondex/dexbuild/internal/dataset"
	"github.com/fusiondex/dexbuild/internal/engine"
	"github.com/fusiondex/dexbuild/internal/export"
	"github.com/fusiondex/dexbuild/internal/logger"
	"github.com/fusiondex/dexbuild/internal/model"
	"github.com/fusiondex/dexbuild/internal/sprite"
)

const previewMaxDim = 1024

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	datasetPath := flag.String("dataset", "", "canonical dataset file (json/csv/xlsx); overrides config")
	spritesDir := flag.String("sprites", "", "sprite directory for this generation; overrides config")
	outDir := flag.String("out", "", "output directory; overrides config")
	generation := flag.String("generation", "gen1", "generation label used in output filenames")
	webp := flag.Bool("webp", false, "also write a lossless WebP atlas")
	workers := flag.Int("workers", 0, "sprite decode workers (0 = all CPUs); overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *datasetPath != "" {
		cfg.Dataset = *datasetPath
	}
	if *spritesDir != "" {
		cfg.Sprites.Dir = *spritesDir
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *workers != 0 {
		cfg.Sprites.Workers = *workers
	}
	if *webp {
		cfg.Output.WebP = true
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.File)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, *generation, log); err != nil {
		log.Fatal("atlas build failed", zap.Error(err))
	}
}

func run(cfg *config.Config, generation string, log *zap.Logger) error {
	summary := model.NewBuildSummary(generation)
	log.Info("starting atlas build",
		zap.String("run_id", summary.RunID),
		zap.String("generation", generation),
		zap.String("dataset", cfg.Dataset),
		zap.String("sprites", cfg.Sprites.Dir))

	cache := dataset.NewCache()
	list, err := cache.Get(cfg.Dataset)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	log.Info("dataset loaded", zap.Int("entries", len(list)))

	loc := sprite.NewLocator(cfg.Sprites.Dir)
	loaded := sprite.Load(dataset.Requests(list), loc, cfg.Sprites.Workers, log)

	packer := engine.New(cfg.Pack, log)
	meta, err := packer.Pack(loaded.Records)
	if err != nil {
		return err
	}

	canvas, skipped := atlas.Compose(meta, loaded.Images, log)
	summary.Fill(meta)
	summary.SkippedSprites = skipped

	if err := writeOutputs(cfg, generation, meta, summary, canvas, log); err != nil {
		return err
	}

	log.Info("atlas build complete",
		zap.Int("sheet_width", meta.SheetWidth),
		zap.Int("sheet_height", meta.SheetHeight),
		zap.Float64("efficiency_pct", meta.SpaceEfficiency),
		zap.Int("placed", summary.PlacedSprites),
		zap.Int("missing", summary.MissingSprites),
		zap.Int("skipped", summary.SkippedSprites))
	return nil
}

func writeOutputs(cfg *config.Config, generation string, meta model.AtlasMetadata, summary model.BuildSummary, canvas image.Image, log *zap.Logger) error {
	out := func(name string) string {
		return filepath.Join(cfg.Output.Dir, fmt.Sprintf(name, generation))
	}

	if err := atlas.WritePNG(out("atlas-%s.png"), canvas); err != nil {
		return err
	}
	if cfg.Output.WebP {
		if err := atlas.WriteWebP(out("atlas-%s.webp"), canvas); err != nil {
			return err
		}
	}
	if err := atlas.WriteSidecar(out("atlas-%s.json"), meta); err != nil {
		return err
	}
	if err := atlas.WriteSummary(out("summary-%s.json"), summary); err != nil {
		return err
	}

	if cfg.Output.PDF {
		preview := atlas.Preview(canvas, previewMaxDim)
		if err := export.WriteLayoutPDF(out("report-%s.pdf"), meta, summary, preview); err != nil {
			// Reports are advisory; a failed PDF should not discard the atlas.
			log.Error("failed to write layout report", zap.Error(err))
		}
	}
	if cfg.Output.Manifest {
		if err := export.WriteManifest(out("manifest-%s.xlsx"), meta, summary); err != nil {
			log.Error("failed to write sprite manifest", zap.Error(err))
		}
	}
	return nil
}
