package ocr

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/disintegration/imaging"

	"github.com/pagemill/pagemill/internal/mempool"
)

// maxRegionSide is the longest image side handed to recognition engines.
// The upstream layout stage emits regions at this scale already; anything
// larger is downsampled to match.
const maxRegionSide = 1000

// loadRegionImage reads a region image from disk and normalizes it for
// recognition. A read or decode failure here is an unexpected worker error,
// not a recognition failure, and aborts the run.
func loadRegionImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading region image %s: %w", path, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding region image %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxRegionSide && h <= maxRegionSide {
		return data, nil
	}

	if w >= h {
		img = imaging.Resize(img, maxRegionSide, 0, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, 0, maxRegionSide, imaging.Lanczos)
	}

	buf := mempool.GetBuffer()
	defer mempool.PutBuffer(buf)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encoding region image %s: %w", path, err)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
