// Package region parses the per-region image files emitted by the upstream
// layout-detection stage into typed records for the extraction pipeline.
package region

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ContentLabel identifies the kind of layout element a region represents.
type ContentLabel string

const (
	LabelCaption       ContentLabel = "caption"
	LabelFootnote      ContentLabel = "footnote"
	LabelFormula       ContentLabel = "formula"
	LabelListItem      ContentLabel = "list-item"
	LabelPageFooter    ContentLabel = "page-footer"
	LabelPageHeader    ContentLabel = "page-header"
	LabelPicture       ContentLabel = "picture"
	LabelFigure        ContentLabel = "figure"
	LabelSectionHeader ContentLabel = "section-header"
	LabelTableCell     ContentLabel = "table-cell"
	LabelText          ContentLabel = "text"
	LabelTitle         ContentLabel = "title"
)

// labelCodes maps the short codes used in region filenames to labels.
// The codes come from the layout stage and are part of the input contract.
var labelCodes = map[string]ContentLabel{
	"c":  LabelCaption,
	"fo": LabelFootnote,
	"fr": LabelFormula,
	"l":  LabelListItem,
	"pf": LabelPageFooter,
	"ph": LabelPageHeader,
	"p":  LabelPicture,
	"f":  LabelFigure,
	"s":  LabelSectionHeader,
	"a":  LabelTableCell,
	"e":  LabelText,
	"i":  LabelTitle,
}

// OCREligible reports whether regions with this label are sent through
// text recognition. Picture and figure regions are image-only and are
// excluded from the reconstructed document.
func (l ContentLabel) OCREligible() bool {
	return l != LabelPicture && l != LabelFigure
}

// Region is one cropped layout element of a page. Records are immutable
// once parsed.
type Region struct {
	PageNum   int
	OrderNum  int
	Label     ContentLabel
	ImagePath string

	// Table cell fields, set only when Label == LabelTableCell.
	TableID string
	Row     int
	Col     int
}

// IsTableCell reports whether the region is one cell of a detected table.
func (r Region) IsTableCell() bool {
	return r.Label == LabelTableCell
}

// PageNumber computes the absolute page number of a region from the chunk
// the run is processing and the page's index local to that chunk.
func PageNumber(chunkIndex, chunkSize, localPageIndex int) int {
	return (chunkIndex-1)*chunkSize + localPageIndex + 1
}

// ParseFilename decodes a region image filename into a Region.
//
// Three shapes are accepted:
//
//	{localPageIndex}_{orderNum}_{labelCode}.png
//	{localPageIndex}_{tableOrdinal}_a_{row}_{col}.png
//	{localPageIndex}_{orderNum}_a_{tableOrdinal}_{row}_{col}.png
//
// In the five-token shape the ordinal doubles as the table's reading-order
// slot; the six-token shape spells the slot and the ordinal out separately.
// Either way the table identity is "{pageNum}_{tableOrdinal}".
func ParseFilename(path string, chunkIndex, chunkSize int) (Region, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	tokens := strings.Split(stem, "_")

	switch len(tokens) {
	case 3:
		return parseSimple(path, tokens, chunkIndex, chunkSize)
	case 5, 6:
		return parseTableCell(path, tokens, chunkIndex, chunkSize)
	default:
		return Region{}, fmt.Errorf("region filename %q: expected 3, 5, or 6 tokens, got %d", base, len(tokens))
	}
}

func parseSimple(path string, tokens []string, chunkIndex, chunkSize int) (Region, error) {
	local, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Region{}, fmt.Errorf("region filename %q: bad page index: %w", filepath.Base(path), err)
	}
	order, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Region{}, fmt.Errorf("region filename %q: bad order number: %w", filepath.Base(path), err)
	}
	label, ok := labelCodes[tokens[2]]
	if !ok {
		return Region{}, fmt.Errorf("region filename %q: unknown label code %q", filepath.Base(path), tokens[2])
	}
	if label == LabelTableCell {
		return Region{}, fmt.Errorf("region filename %q: table cell missing row/col tokens", filepath.Base(path))
	}
	return Region{
		PageNum:   PageNumber(chunkIndex, chunkSize, local),
		OrderNum:  order,
		Label:     label,
		ImagePath: path,
	}, nil
}

func parseTableCell(path string, tokens []string, chunkIndex, chunkSize int) (Region, error) {
	if tokens[2] != "a" {
		return Region{}, fmt.Errorf("region filename %q: expected table marker token, got %q", filepath.Base(path), tokens[2])
	}
	local, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Region{}, fmt.Errorf("region filename %q: bad page index: %w", filepath.Base(path), err)
	}
	order, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Region{}, fmt.Errorf("region filename %q: bad order number: %w", filepath.Base(path), err)
	}

	ordinal := order
	rowTok, colTok := tokens[3], tokens[4]
	if len(tokens) == 6 {
		ordinal, err = strconv.Atoi(tokens[3])
		if err != nil {
			return Region{}, fmt.Errorf("region filename %q: bad table ordinal: %w", filepath.Base(path), err)
		}
		rowTok, colTok = tokens[4], tokens[5]
	}

	row, err := strconv.Atoi(rowTok)
	if err != nil {
		return Region{}, fmt.Errorf("region filename %q: bad row: %w", filepath.Base(path), err)
	}
	col, err := strconv.Atoi(colTok)
	if err != nil {
		return Region{}, fmt.Errorf("region filename %q: bad column: %w", filepath.Base(path), err)
	}
	pageNum := PageNumber(chunkIndex, chunkSize, local)
	return Region{
		PageNum:   pageNum,
		OrderNum:  order,
		Label:     LabelTableCell,
		ImagePath: path,
		TableID:   fmt.Sprintf("%d_%d", pageNum, ordinal),
		Row:       row,
		Col:       col,
	}, nil
}

// imageExtensions lists the file types the layout stage emits.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Scan reads a flat directory of region images and returns the full catalog,
// sorted by page number then reading order. Any unparseable filename is a
// caller error and fails the scan.
func Scan(dir string, chunkIndex, chunkSize int) ([]Region, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading region directory: %w", err)
	}

	var regions []Region
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		r, err := ParseFilename(filepath.Join(dir, entry.Name()), chunkIndex, chunkSize)
		if err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}

	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].PageNum != regions[j].PageNum {
			return regions[i].PageNum < regions[j].PageNum
		}
		return regions[i].OrderNum < regions[j].OrderNum
	})
	return regions, nil
}
