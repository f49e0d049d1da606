// Package document writes finished page documents to the output location.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pagemill/pagemill/internal/assemble"
	"github.com/pagemill/pagemill/internal/progress"
)

// Writer serializes page documents into a directory, one file per page
// number. Pages are independent and may be written concurrently.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WritePage renders the document and writes it as "<pageNum>.html".
// The write is all-or-nothing: content lands in a temp file in the same
// directory and is renamed into place.
func (w *Writer) WritePage(doc assemble.PageDocument) error {
	data := assemble.RenderHTML(doc)
	final := filepath.Join(w.dir, strconv.Itoa(doc.PageNum)+".html")

	tmp, err := os.CreateTemp(w.dir, "page-*.tmp")
	if err != nil {
		return fmt.Errorf("page %d: %w", doc.PageNum, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("page %d: %w", doc.PageNum, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("page %d: %w", doc.PageNum, err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("page %d: %w", doc.PageNum, err)
	}

	progress.CountPage()
	return nil
}

// WriteAll writes every page document, stopping at the first failure.
func (w *Writer) WriteAll(docs []assemble.PageDocument) error {
	for _, doc := range docs {
		if err := w.WritePage(doc); err != nil {
			return err
		}
	}
	return nil
}
