// Package testutil generates synthetic region images and region
// directories for tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextImage renders text on a white background the way the upstream
// layout stage crops regions: dark glyphs, generous margins.
func TextImage(text string, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, height/2),
	}
	drawer.DrawString(text)
	return img
}

// WriteRegionPNG writes a rendered region image into dir under name.
func WriteRegionPNG(t *testing.T, dir, name, text string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, TextImage(text, 200, 40)))
	require.NoError(t, f.Close())
	return path
}

// RegionDir creates a temporary region directory populated from the
// name->text map, where each name follows the layout stage's filename
// scheme (for example "0_1_p.png" or "0_3_a_0_0.png").
func RegionDir(t *testing.T, regions map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, text := range regions {
		WriteRegionPNG(t, dir, name, text)
	}
	return dir
}
