// Package assemble reconstructs ordered page documents from recognition
// results and finalized table grids.
package assemble

import "github.com/pagemill/pagemill/internal/region"

// BlockKind enumerates the closed set of content block variants a page
// document can contain.
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockSectionHeader
	BlockText
	BlockListItem
	BlockCaption
	BlockFootnote
	BlockFormula
	BlockPageHeader
	BlockPageFooter
	BlockTable
)

// String returns the block kind's document class name.
func (k BlockKind) String() string {
	switch k {
	case BlockTitle:
		return "title"
	case BlockSectionHeader:
		return "section-header"
	case BlockText:
		return "text"
	case BlockListItem:
		return "list-item"
	case BlockCaption:
		return "caption"
	case BlockFootnote:
		return "footnote"
	case BlockFormula:
		return "formula"
	case BlockPageHeader:
		return "page-header"
	case BlockPageFooter:
		return "page-footer"
	case BlockTable:
		return "data-table"
	default:
		return "unknown"
	}
}

// blockKinds maps OCR-eligible, non-table labels to their block variant.
// Picture and figure have no entry: they never produce textual output.
var blockKinds = map[region.ContentLabel]BlockKind{
	region.LabelTitle:         BlockTitle,
	region.LabelSectionHeader: BlockSectionHeader,
	region.LabelText:          BlockText,
	region.LabelListItem:      BlockListItem,
	region.LabelCaption:       BlockCaption,
	region.LabelFootnote:      BlockFootnote,
	region.LabelFormula:       BlockFormula,
	region.LabelPageHeader:    BlockPageHeader,
	region.LabelPageFooter:    BlockPageFooter,
}

// Block is one typed content block of a reconstructed page. Text blocks
// carry recognized text; table blocks carry the finalized dense grid.
type Block struct {
	Kind     BlockKind
	OrderNum int
	Text     string
	Grid     [][]string
}

// PageDocument is the final ordered representation of one page.
type PageDocument struct {
	PageNum int
	Blocks  []Block
}
