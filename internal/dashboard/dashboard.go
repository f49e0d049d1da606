// Package dashboard summarizes harvest output into a stats file.
package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Stats aggregates the state of a harvest output tree. The tree layout is
// outputDir/identifier/document/<page>.html.
type Stats struct {
	Identifiers int // identifiers with at least one processed document
	Documents   int
	Pages       int
}

// Collect walks the output tree and counts processed documents and pages.
func Collect(outputDir string) (Stats, error) {
	var stats Stats

	identifiers, err := os.ReadDir(outputDir)
	if err != nil {
		return stats, fmt.Errorf("reading output directory: %w", err)
	}

	for _, identifier := range identifiers {
		if !identifier.IsDir() {
			continue
		}
		identifierPath := filepath.Join(outputDir, identifier.Name())
		docs, err := os.ReadDir(identifierPath)
		if err != nil {
			return stats, err
		}

		docsWithPages := 0
		for _, doc := range docs {
			if !doc.IsDir() {
				continue
			}
			pages, err := countPages(filepath.Join(identifierPath, doc.Name()))
			if err != nil {
				return stats, err
			}
			if pages > 0 {
				docsWithPages++
				stats.Pages += pages
			}
		}
		if docsWithPages > 0 {
			stats.Identifiers++
			stats.Documents += docsWithPages
		}
	}
	return stats, nil
}

func countPages(docDir string) (int, error) {
	entries, err := os.ReadDir(docDir)
	if err != nil {
		return 0, err
	}
	pages := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			pages++
		}
	}
	return pages, nil
}

// Write collects stats and writes them to dashboard.txt in the output tree.
func Write(outputDir string) error {
	stats, err := Collect(outputDir)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Processing Statistics\n")
	b.WriteString("====================\n")
	fmt.Fprintf(&b, "Identifiers with processed documents: %d\n", stats.Identifiers)
	fmt.Fprintf(&b, "Total documents processed: %d\n", stats.Documents)
	fmt.Fprintf(&b, "Total pages processed: %d\n", stats.Pages)
	fmt.Fprintf(&b, "Last updated: %s\n", time.Now().Format("2006-01-02 15:04:05"))

	return os.WriteFile(filepath.Join(outputDir, "dashboard.txt"), []byte(b.String()), 0o644)
}
