package assemble

import (
	"fmt"
	"html"
	"strings"
)

// htmlShape describes how a block kind is rendered into page HTML. The
// element names and class attributes match the document contract the
// markdown converter consumes.
type htmlShape struct {
	open  string
	close string
}

var htmlShapes = map[BlockKind]htmlShape{
	BlockTitle:         {`<h1 class="title">`, "</h1>"},
	BlockSectionHeader: {`<h2 class="section-header">`, "</h2>"},
	BlockText:          {`<p class="text">`, "</p>"},
	BlockListItem:      {`<li class="list-item">`, "</li>"},
	BlockCaption:       {`<figcaption class="caption">`, "</figcaption>"},
	BlockFootnote:      {`<div class="footnote">`, "</div>"},
	BlockFormula:       {`<div class="formula">`, "</div>"},
	BlockPageHeader:    {`<header class="page-header">`, "</header>"},
	BlockPageFooter:    {`<footer class="page-footer">`, "</footer>"},
}

// RenderHTML serializes a page document. Output is deterministic: the same
// document always renders to the same bytes.
func RenderHTML(doc PageDocument) []byte {
	var b strings.Builder
	b.WriteString("<div class=\"page\">\n")
	fmt.Fprintf(&b, "<div class=\"page-number\">Page %d</div>\n", doc.PageNum)

	for _, block := range doc.Blocks {
		if block.Kind == BlockTable {
			renderTable(&b, block.Grid)
			continue
		}
		shape := htmlShapes[block.Kind]
		b.WriteString(shape.open)
		b.WriteString(html.EscapeString(block.Text))
		b.WriteString(shape.close)
		b.WriteString("\n")
	}

	b.WriteString("</div>\n")
	return []byte(b.String())
}

func renderTable(b *strings.Builder, grid [][]string) {
	b.WriteString("<table class=\"data-table\">\n")
	for _, row := range grid {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}
