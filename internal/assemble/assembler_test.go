package assemble

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemill/pagemill/internal/ocr"
	"github.com/pagemill/pagemill/internal/region"
	"github.com/pagemill/pagemill/internal/table"
)

func textRegion(page, order int, label region.ContentLabel) region.Region {
	return region.Region{PageNum: page, OrderNum: order, Label: label}
}

func cellRegion(page, ordinal, row, col int) region.Region {
	return region.Region{
		PageNum: page, OrderNum: ordinal, Label: region.LabelTableCell,
		TableID: fmt.Sprintf("%d_%d", page, ordinal), Row: row, Col: col,
	}
}

func result(page, order int, label region.ContentLabel, text string) (ocr.Key, ocr.Result) {
	k := ocr.Key{PageNum: page, OrderNum: order, Label: label}
	return k, ocr.Result{Region: textRegion(page, order, label), Text: text, Attempts: 1}
}

func TestBuildPagesSinglePage(t *testing.T) {
	regions := []region.Region{
		textRegion(1, 1, region.LabelText),
		textRegion(1, 2, region.LabelSectionHeader),
		cellRegion(1, 3, 0, 0),
		cellRegion(1, 3, 0, 1),
		cellRegion(1, 3, 1, 0),
		cellRegion(1, 3, 1, 1),
	}

	results := make(map[ocr.Key]ocr.Result)
	for _, kv := range []struct {
		order int
		label region.ContentLabel
		text  string
	}{
		{1, region.LabelText, "Body text"},
		{2, region.LabelSectionHeader, "Heading"},
	} {
		k, v := result(1, kv.order, kv.label, kv.text)
		results[k] = v
	}

	acc := table.NewAccumulator()
	acc.Record("1_3", 0, 0, "a")
	acc.Record("1_3", 0, 1, "b")
	acc.Record("1_3", 1, 0, "c")
	acc.Record("1_3", 1, 1, "d")

	docs := BuildPages(regions, results, acc)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, 1, doc.PageNum)
	require.Len(t, doc.Blocks, 3, "four cell regions collapse into one table block")

	assert.Equal(t, BlockText, doc.Blocks[0].Kind)
	assert.Equal(t, "Body text", doc.Blocks[0].Text)
	assert.Equal(t, BlockSectionHeader, doc.Blocks[1].Kind)
	assert.Equal(t, BlockTable, doc.Blocks[2].Kind)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, doc.Blocks[2].Grid)
}

func TestBuildPagesOrdering(t *testing.T) {
	// Catalog arrives sorted; the table's slot is its ordinal, so a table
	// whose first cell precedes later text blocks lands between them.
	regions := []region.Region{
		textRegion(1, 1, region.LabelTitle),
		cellRegion(1, 2, 0, 0),
		textRegion(1, 3, region.LabelText),
	}
	k1, v1 := result(1, 1, region.LabelTitle, "Title")
	k3, v3 := result(1, 3, region.LabelText, "After")
	results := map[ocr.Key]ocr.Result{k1: v1, k3: v3}

	acc := table.NewAccumulator()
	acc.Record("1_2", 0, 0, "only")

	docs := BuildPages(regions, results, acc)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Blocks, 3)
	assert.Equal(t, []BlockKind{BlockTitle, BlockTable, BlockText},
		[]BlockKind{docs[0].Blocks[0].Kind, docs[0].Blocks[1].Kind, docs[0].Blocks[2].Kind})
}

func TestBuildPagesMultiplePagesSorted(t *testing.T) {
	regions := []region.Region{
		textRegion(2, 1, region.LabelText),
		textRegion(1, 1, region.LabelText),
	}
	k1, v1 := result(1, 1, region.LabelText, "one")
	k2, v2 := result(2, 1, region.LabelText, "two")
	results := map[ocr.Key]ocr.Result{k1: v1, k2: v2}

	docs := BuildPages(regions, results, table.NewAccumulator())
	require.Len(t, docs, 2)
	assert.Equal(t, 1, docs[0].PageNum)
	assert.Equal(t, 2, docs[1].PageNum)
}

func TestBuildPagesExcludesPictures(t *testing.T) {
	regions := []region.Region{
		textRegion(1, 1, region.LabelPicture),
		textRegion(1, 2, region.LabelFigure),
		textRegion(1, 3, region.LabelText),
	}
	k, v := result(1, 3, region.LabelText, "kept")
	docs := BuildPages(regions, map[ocr.Key]ocr.Result{k: v}, table.NewAccumulator())

	require.Len(t, docs, 1)
	require.Len(t, docs[0].Blocks, 1)
	assert.Equal(t, "kept", docs[0].Blocks[0].Text)
}

func TestBuildPagesDropsUnrecordedTable(t *testing.T) {
	regions := []region.Region{cellRegion(1, 1, 0, 0)}

	docs := BuildPages(regions, map[ocr.Key]ocr.Result{}, table.NewAccumulator())
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].Blocks, "a table with no recorded cells renders nothing")
}

func TestBuildPagesSentinelTextKept(t *testing.T) {
	regions := []region.Region{textRegion(1, 1, region.LabelText)}
	k := ocr.Key{PageNum: 1, OrderNum: 1, Label: region.LabelText}
	results := map[ocr.Key]ocr.Result{
		k: {Text: ocr.FailedText, Attempts: 25, Failed: true},
	}

	docs := BuildPages(regions, results, table.NewAccumulator())
	require.Len(t, docs[0].Blocks, 1)
	assert.Equal(t, ocr.FailedText, docs[0].Blocks[0].Text)
}
