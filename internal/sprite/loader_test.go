package sprite

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MixedBatch(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, dir, "bulbasaur.png")

	// A fully transparent sprite on disk.
	blank := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	f, err := os.Create(filepath.Join(dir, "ditto.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, blank))
	require.NoError(t, f.Close())

	requests := []Request{
		{ID: 1, Name: "Bulbasaur"},
		{ID: 132, Name: "Ditto"},
		{ID: 150, Name: "Mewtwo"}, // not on disk
	}

	res := Load(requests, NewLocator(dir), 4, nil)
	require.Len(t, res.Records, 3)
	require.Len(t, res.Images, 3)

	// Loaded sprite: measured and packable.
	bulba := res.Records[0]
	assert.Equal(t, 1, bulba.ID)
	assert.Equal(t, "bulbasaur.png", bulba.Filename)
	assert.True(t, bulba.Exists)
	assert.Equal(t, 16, bulba.OriginalWidth)
	assert.Equal(t, 16, bulba.OriginalHeight)
	require.NotNil(t, bulba.ContentBounds)
	assert.Equal(t, 8, bulba.ContentBounds.Width)
	assert.NotNil(t, res.Images[0])

	// Fully transparent sprite: excluded from packing but measured.
	ditto := res.Records[1]
	assert.False(t, ditto.Exists)
	assert.Nil(t, ditto.ContentBounds)
	assert.Equal(t, 64, ditto.OriginalWidth)
	assert.Equal(t, 0, ditto.Width)
	assert.Equal(t, 0, ditto.Height)

	// Missing sprite: empty filename, never fatal.
	mewtwo := res.Records[2]
	assert.False(t, mewtwo.Exists)
	assert.Empty(t, mewtwo.Filename)
	assert.Nil(t, res.Images[2])
}

func TestLoad_PreservesRequestOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon", "charizard"}
	var requests []Request
	for i, n := range names {
		writeSprite(t, dir, n+".png")
		requests = append(requests, Request{ID: i + 1, Name: n})
	}

	res := Load(requests, NewLocator(dir), 3, nil)
	for i, rec := range res.Records {
		assert.Equal(t, i+1, rec.ID)
		assert.Equal(t, names[i]+".png", rec.Filename)
	}
}

func TestLoad_Empty(t *testing.T) {
	res := Load(nil, NewLocator(t.TempDir()), 2, nil)
	assert.Empty(t, res.Records)
}
