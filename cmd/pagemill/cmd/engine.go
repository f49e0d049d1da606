package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pagemill/pagemill/internal/config"
	"github.com/pagemill/pagemill/internal/ocr"
)

// buildRecognizer constructs the recognition engine selected by config.
// The caller owns the returned recognizer and must Close it.
func buildRecognizer(ctx context.Context, cfg config.OCRConfig) (ocr.Recognizer, error) {
	switch cfg.Engine {
	case "tesseract":
		return ocr.NewTesseract(cfg.Language, cfg.Workers)
	case "gemini":
		key := cfg.GeminiKey
		if key == "" {
			key = os.Getenv("GEMINI_API_KEY")
		}
		if key == "" {
			return nil, fmt.Errorf("gemini engine requires ocr.gemini_key or GEMINI_API_KEY")
		}
		return ocr.NewGemini(ctx, key, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown ocr engine %q", cfg.Engine)
	}
}
