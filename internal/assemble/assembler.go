package assemble

import (
	"sort"

	"github.com/pagemill/pagemill/internal/ocr"
	"github.com/pagemill/pagemill/internal/region"
	"github.com/pagemill/pagemill/internal/table"
)

// BuildPages composes one PageDocument per page from the full result set.
// It must only be called after the scheduler has fully drained: results and
// acc are read, never written.
//
// Blocks are ordered by each region's reading-order number, with ties
// resolved by catalog order. Each table appears exactly once, at the order
// number of its first cell region. Picture and figure regions produce no
// blocks.
func BuildPages(regions []region.Region, results map[ocr.Key]ocr.Result, acc *table.Accumulator) []PageDocument {
	byPage := make(map[int][]region.Region)
	var pageNums []int
	for _, r := range regions {
		if _, ok := byPage[r.PageNum]; !ok {
			pageNums = append(pageNums, r.PageNum)
		}
		byPage[r.PageNum] = append(byPage[r.PageNum], r)
	}
	sort.Ints(pageNums)

	docs := make([]PageDocument, 0, len(pageNums))
	for _, pageNum := range pageNums {
		docs = append(docs, buildPage(pageNum, byPage[pageNum], results, acc))
	}
	return docs
}

func buildPage(pageNum int, regions []region.Region, results map[ocr.Key]ocr.Result, acc *table.Accumulator) PageDocument {
	var blocks []Block
	seenTables := make(map[string]bool)

	for _, r := range regions {
		if r.IsTableCell() {
			if seenTables[r.TableID] {
				continue
			}
			seenTables[r.TableID] = true
			blocks = append(blocks, Block{
				Kind:     BlockTable,
				OrderNum: r.OrderNum,
				Grid:     acc.Finalize(r.TableID),
			})
			continue
		}

		kind, ok := blockKinds[r.Label]
		if !ok {
			// Picture and figure regions are excluded from the document.
			continue
		}
		res, ok := results[ocr.Key{PageNum: r.PageNum, OrderNum: r.OrderNum, Label: r.Label}]
		if !ok {
			continue
		}
		blocks = append(blocks, Block{
			Kind:     kind,
			OrderNum: r.OrderNum,
			Text:     res.Text,
		})
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].OrderNum < blocks[j].OrderNum
	})

	return PageDocument{PageNum: pageNum, Blocks: cleanup(blocks)}
}

// cleanup removes structurally empty container blocks, such as a table
// whose identity was never recorded.
func cleanup(blocks []Block) []Block {
	kept := blocks[:0]
	for _, b := range blocks {
		if b.Kind == BlockTable && len(b.Grid) == 0 {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}
