package sprite

import (
	"image"
	_ "image/png"
	"os"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/fusiondex/dexbuild/internal/model"
)

// Request identifies one sprite to load: a canonical ID and display name.
type Request struct {
	ID   int
	Name string
}

// LoadResult holds per-sprite records and their decoded images, both in
// request order. Images is nil-padded for missing or unreadable sprites.
type LoadResult struct {
	Records []model.SpriteRecord
	Images  []image.Image
}

// Load locates, decodes, and measures every requested sprite using a
// bounded worker pool. Each sprite is independent, so no ordering
// guarantees are needed between workers; results land in request order
// because every worker writes only its own slice index. Missing or
// unreadable sprites are logged and recorded with Exists=false; they never
// fail the run.
func Load(requests []Request, loc *Locator, workers int, log *zap.Logger) LoadResult {
	if log == nil {
		log = zap.NewNop()
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	res := LoadResult{
		Records: make([]model.SpriteRecord, len(requests)),
		Images:  make([]image.Image, len(requests)),
	}

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res.Records[i], res.Images[i] = loadOne(requests[i], loc, log)
			}
		}()
	}
	for i := range requests {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return res
}

// loadOne resolves and decodes a single sprite. Exists is true only when
// the file was found, decoded, and contains at least one opaque pixel.
func loadOne(req Request, loc *Locator, log *zap.Logger) (model.SpriteRecord, image.Image) {
	rec := model.SpriteRecord{ID: req.ID, Name: req.Name}

	fn, ok := loc.Find(req.Name)
	if !ok {
		log.Warn("sprite not found", zap.Int("id", req.ID), zap.String("name", req.Name))
		return rec, nil
	}
	rec.Filename = fn

	f, err := os.Open(loc.Path(fn))
	if err != nil {
		log.Warn("sprite unreadable", zap.String("file", fn), zap.Error(err))
		return rec, nil
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Warn("sprite decode failed", zap.String("file", fn), zap.Error(err))
		return rec, nil
	}

	b := img.Bounds()
	rec.OriginalWidth = b.Dx()
	rec.OriginalHeight = b.Dy()
	rec.ContentBounds = ContentBounds(img)
	rec.Exists = rec.ContentBounds != nil
	if !rec.Exists {
		log.Warn("sprite fully transparent, excluded from packing", zap.String("file", fn))
	}
	return rec, img
}
