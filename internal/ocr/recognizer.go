// Package ocr drives region images through an external text-recognition
// capability under bounded concurrency with per-region retry.
package ocr

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pagemill/pagemill/internal/region"
)

// FailedText is the sentinel substituted for a region whose recognition
// permanently fails. It is a tolerated outcome, not an error.
const FailedText = "[OCR FAILED]"

// Recognizer is the external recognition capability. Implementations may be
// local engines or remote calls; the scheduler treats them as opaque and
// possibly flaky.
type Recognizer interface {
	// Recognize returns the text found in the encoded image.
	Recognize(ctx context.Context, image []byte) (string, error)
	// Close releases any resources held by the engine.
	Close() error
}

// Result is the terminal outcome of recognizing one region. Exactly one
// Result is produced per eligible region; Failed marks sentinel outcomes.
type Result struct {
	Region   region.Region
	Text     string
	Attempts int
	Failed   bool
}

// Key identifies a non-table recognition result within a run.
type Key struct {
	PageNum  int
	OrderNum int
	Label    region.ContentLabel
}

// cleanText trims and NFC-normalizes recognized text so downstream
// comparisons and rendering are stable across engines.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
