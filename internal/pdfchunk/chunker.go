// Package pdfchunk splits source PDFs into fixed-size page chunks for the
// upstream rasterization and layout stage, and owns the chunk arithmetic
// shared with the region catalog.
package pdfchunk

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Plan describes how a document is cut into chunks.
type Plan struct {
	TotalPages int
	ChunkSize  int
	NumChunks  int
}

// PlanFile computes the chunk plan for a PDF, capping at maxPages when
// maxPages is positive.
func PlanFile(path string, chunkSize, maxPages int) (Plan, error) {
	if chunkSize < 1 {
		return Plan{}, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	if maxPages > 0 && pages > maxPages {
		pages = maxPages
	}
	return Plan{
		TotalPages: pages,
		ChunkSize:  chunkSize,
		NumChunks:  (pages + chunkSize - 1) / chunkSize,
	}, nil
}

// PageRange returns the 1-based inclusive page range of a chunk.
// Chunk indices are 1-based.
func (p Plan) PageRange(chunkIndex int) (first, last int, err error) {
	if chunkIndex < 1 || chunkIndex > p.NumChunks {
		return 0, 0, fmt.Errorf("chunk index %d out of range [1,%d]", chunkIndex, p.NumChunks)
	}
	first = (chunkIndex-1)*p.ChunkSize + 1
	last = chunkIndex * p.ChunkSize
	if last > p.TotalPages {
		last = p.TotalPages
	}
	return first, last, nil
}

// WriteChunk extracts one chunk of the source PDF into outDir as
// "chunk_<index>.pdf" and returns the written path.
func (p Plan) WriteChunk(srcPath, outDir string, chunkIndex int) (string, error) {
	first, last, err := p.PageRange(chunkIndex)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	width := len(strconv.Itoa(p.NumChunks))
	outPath := filepath.Join(outDir, fmt.Sprintf("chunk_%0*d.pdf", width, chunkIndex))
	selection := []string{fmt.Sprintf("%d-%d", first, last)}
	if err := api.TrimFile(srcPath, outPath, selection, nil); err != nil {
		return "", fmt.Errorf("writing chunk %d of %s: %w", chunkIndex, srcPath, err)
	}
	return outPath, nil
}

// WriteAll extracts every chunk and returns the written paths in order.
func (p Plan) WriteAll(srcPath, outDir string) ([]string, error) {
	paths := make([]string, 0, p.NumChunks)
	for i := 1; i <= p.NumChunks; i++ {
		path, err := p.WriteChunk(srcPath, outDir, i)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
