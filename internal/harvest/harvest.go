// Package harvest runs the archive.org batch loop: download eligible PDFs
// one identifier at a time, split them into page chunks, hand each chunk to
// the external layout stage, and extract the resulting region images into
// per-document page files.
package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pagemill/pagemill/internal/archive"
	"github.com/pagemill/pagemill/internal/config"
	"github.com/pagemill/pagemill/internal/dashboard"
	"github.com/pagemill/pagemill/internal/ocr"
	"github.com/pagemill/pagemill/internal/pdfchunk"
	"github.com/pagemill/pagemill/internal/pipeline"
	"github.com/pagemill/pagemill/internal/progress"
	"github.com/pagemill/pagemill/internal/shelf"
)

// Runner executes the harvest loop.
type Runner struct {
	Client   *archive.Client
	Rec      ocr.Recognizer
	Cfg      config.HarvestConfig
	OCRCfg   config.OCRConfig
	Progress progress.Callback
}

// Run processes every identifier in the identifiers file that is not
// already finished. Failures on one identifier are logged and do not stop
// the loop; failures inside a document's extraction abort that identifier.
func (r *Runner) Run(ctx context.Context) error {
	entries, err := archive.ReadStatuses(r.Cfg.IdentifiersFile)
	if err != nil {
		return fmt.Errorf("reading identifiers file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no identifiers found in %s", r.Cfg.IdentifiersFile)
	}

	for _, entry := range entries {
		if entry.Status == archive.StatusDone || entry.Status == archive.StatusNoEligible {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.processIdentifier(ctx, entry.Identifier); err != nil {
			slog.Error("identifier failed", "identifier", entry.Identifier, "error", err)
			continue
		}
		if err := dashboard.Write(r.Cfg.OutputDir); err != nil {
			slog.Warn("dashboard update failed", "error", err)
		}
	}
	return nil
}

func (r *Runner) processIdentifier(ctx context.Context, identifier string) error {
	files, err := r.Client.Files(ctx, identifier)
	if err != nil {
		return err
	}

	var pdfs []archive.File
	for _, f := range files {
		if archive.EligiblePDF(f.Name) {
			pdfs = append(pdfs, f)
		}
	}
	slog.Info("identifier listed", "identifier", identifier, "eligible_pdfs", len(pdfs))
	if len(pdfs) == 0 {
		return archive.UpdateStatus(r.Cfg.IdentifiersFile, identifier, archive.StatusNoEligible)
	}

	for _, pdf := range pdfs {
		if err := r.processDocument(ctx, identifier, pdf.Name); err != nil {
			return fmt.Errorf("document %s: %w", pdf.Name, err)
		}
	}
	return archive.UpdateStatus(r.Cfg.IdentifiersFile, identifier, archive.StatusDone)
}

func (r *Runner) processDocument(ctx context.Context, identifier, name string) error {
	docName := strings.TrimSuffix(name, filepath.Ext(name))
	outDir := filepath.Join(r.Cfg.OutputDir, identifier, docName)

	if processed(outDir) {
		slog.Info("document already processed", "identifier", identifier, "document", docName)
		return nil
	}

	pdfPath := filepath.Join(r.Cfg.WorkDir, identifier, name)
	if err := r.Client.Download(ctx, identifier, name, pdfPath); err != nil {
		return err
	}
	defer func() { _ = os.Remove(pdfPath) }()

	plan, err := pdfchunk.PlanFile(pdfPath, r.Cfg.ChunkSize, r.Cfg.MaxPages)
	if err != nil {
		return err
	}
	slog.Info("document planned", "document", docName, "pages", plan.TotalPages, "chunks", plan.NumChunks)

	chunkDir := filepath.Join(r.Cfg.WorkDir, identifier, docName+"_chunks")
	defer func() { _ = os.RemoveAll(chunkDir) }()

	for chunk := 1; chunk <= plan.NumChunks; chunk++ {
		if err := r.processChunk(ctx, pdfPath, chunkDir, outDir, plan, chunk); err != nil {
			return fmt.Errorf("chunk %d: %w", chunk, err)
		}
	}

	if r.Cfg.Compress {
		zipPath, err := shelf.CompressDir(outDir)
		if err != nil {
			return err
		}
		slog.Info("document compressed", "zip", zipPath)
	}
	return nil
}

func (r *Runner) processChunk(ctx context.Context, pdfPath, chunkDir, outDir string, plan pdfchunk.Plan, chunk int) error {
	chunkPath, err := plan.WriteChunk(pdfPath, chunkDir, chunk)
	if err != nil {
		return err
	}

	regionsDir := filepath.Join(chunkDir, "regionimages")
	if err := os.RemoveAll(regionsDir); err != nil {
		return err
	}
	if err := os.MkdirAll(regionsDir, 0o755); err != nil {
		return err
	}

	if err := r.runLayout(ctx, chunkPath, regionsDir); err != nil {
		return err
	}

	return pipeline.Run(ctx, r.Rec, pipeline.Options{
		RegionsDir: regionsDir,
		OutputDir:  outDir,
		ChunkIndex: chunk,
		ChunkSize:  plan.ChunkSize,
		Workers:    r.OCRCfg.Workers,
		Attempts:   r.OCRCfg.Attempts,
		Progress:   r.Progress,
	})
}

// runLayout shells out to the external layout-detection stage, which
// rasterizes the chunk PDF and fills regionsDir with region images.
func (r *Runner) runLayout(ctx context.Context, chunkPath, regionsDir string) error {
	if r.Cfg.LayoutCommand == "" {
		return fmt.Errorf("harvest.layout_command is not configured")
	}
	cmd := exec.CommandContext(ctx, r.Cfg.LayoutCommand, chunkPath, regionsDir)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("layout stage: %w", err)
	}
	return nil
}

// processed reports whether a document already has its first page file,
// the same completion marker the harvest loop leaves behind.
func processed(outDir string) bool {
	_, err := os.Stat(filepath.Join(outDir, "1.html"))
	return err == nil
}
