// Package pipeline wires the extraction stages together: catalog scan,
// recognition scheduling, page assembly, and document writing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pagemill/pagemill/internal/assemble"
	"github.com/pagemill/pagemill/internal/document"
	"github.com/pagemill/pagemill/internal/ocr"
	"github.com/pagemill/pagemill/internal/progress"
	"github.com/pagemill/pagemill/internal/region"
	"github.com/pagemill/pagemill/internal/table"
)

// Options configures one extraction run over a region directory.
type Options struct {
	RegionsDir string
	OutputDir  string
	ChunkIndex int
	ChunkSize  int
	Workers    int
	Attempts   int
	Progress   progress.Callback
}

// Run drives one chunk's region directory through recognition and writes
// one page document per page. Data flows one direction: catalog →
// scheduler → (accumulator | result map) → assembler → writer. Result state
// is only read after the scheduler has fully drained.
func Run(ctx context.Context, rec ocr.Recognizer, opts Options) error {
	if opts.RegionsDir == "" || opts.OutputDir == "" {
		return errors.New("regions and output directories are required")
	}
	if opts.ChunkIndex < 1 || opts.ChunkSize < 1 {
		return errors.New("chunk index and chunk size must be positive")
	}

	regions, err := region.Scan(opts.RegionsDir, opts.ChunkIndex, opts.ChunkSize)
	if err != nil {
		return fmt.Errorf("scanning regions: %w", err)
	}
	slog.Info("region catalog scanned",
		"regions", len(regions),
		"chunk_index", opts.ChunkIndex,
		"chunk_size", opts.ChunkSize,
	)

	acc := table.NewAccumulator()
	scheduler := ocr.NewScheduler(rec, ocr.SchedulerConfig{
		Workers:  opts.Workers,
		Attempts: opts.Attempts,
		Progress: opts.Progress,
	})
	results, err := scheduler.Run(ctx, regions, acc)
	if err != nil {
		return fmt.Errorf("recognition: %w", err)
	}
	slog.Info("recognition drained", "results", len(results), "tables", acc.Len())

	docs := assemble.BuildPages(regions, results, acc)

	writer, err := document.NewWriter(opts.OutputDir)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(docs); err != nil {
		return fmt.Errorf("writing pages: %w", err)
	}
	slog.Info("pages written", "pages", len(docs), "output", opts.OutputDir)
	return nil
}
