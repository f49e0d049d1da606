package ocr

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemill/pagemill/internal/testutil"
)

func writeImage(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "region.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testutil.TextImage("sample", w, h)))
	require.NoError(t, f.Close())
	return path
}

func TestLoadRegionImagePassthrough(t *testing.T) {
	path := writeImage(t, 400, 120)
	want, err := os.ReadFile(path)
	require.NoError(t, err)

	got, err := loadRegionImage(path)
	require.NoError(t, err)
	assert.Equal(t, want, got, "images within bounds are passed through untouched")
}

func TestLoadRegionImageDownsamplesWide(t *testing.T) {
	path := writeImage(t, 1500, 300)

	data, err := loadRegionImage(path)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, maxRegionSide, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy(), "aspect ratio preserved")
}

func TestLoadRegionImageDownsamplesTall(t *testing.T) {
	path := writeImage(t, 300, 1500)

	data, err := loadRegionImage(path)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, maxRegionSide, img.Bounds().Dy())
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestLoadRegionImageErrors(t *testing.T) {
	_, err := loadRegionImage(filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))
	_, err = loadRegionImage(bad)
	assert.Error(t, err)
}
