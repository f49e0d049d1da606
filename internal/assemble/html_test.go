package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHTMLGolden(t *testing.T) {
	doc := PageDocument{
		PageNum: 1,
		Blocks: []Block{
			{Kind: BlockText, OrderNum: 1, Text: "Body text"},
			{Kind: BlockSectionHeader, OrderNum: 2, Text: "Heading"},
			{Kind: BlockTable, OrderNum: 3, Grid: [][]string{{"a", "b"}, {"c", "d"}}},
		},
	}

	want := `<div class="page">
<div class="page-number">Page 1</div>
<p class="text">Body text</p>
<h2 class="section-header">Heading</h2>
<table class="data-table">
<tr><td>a</td><td>b</td></tr>
<tr><td>c</td><td>d</td></tr>
</table>
</div>
`
	assert.Equal(t, want, string(RenderHTML(doc)))
}

func TestRenderHTMLDeterministic(t *testing.T) {
	doc := PageDocument{
		PageNum: 7,
		Blocks: []Block{
			{Kind: BlockTitle, OrderNum: 1, Text: "T"},
			{Kind: BlockTable, OrderNum: 2, Grid: [][]string{{"x"}}},
		},
	}
	assert.Equal(t, RenderHTML(doc), RenderHTML(doc))
}

func TestRenderHTMLEscapes(t *testing.T) {
	doc := PageDocument{
		PageNum: 1,
		Blocks: []Block{
			{Kind: BlockText, OrderNum: 1, Text: `a < b & "c"`},
			{Kind: BlockTable, OrderNum: 2, Grid: [][]string{{"<td>"}}},
		},
	}

	got := string(RenderHTML(doc))
	assert.Contains(t, got, "a &lt; b &amp; &#34;c&#34;")
	assert.Contains(t, got, "<td>&lt;td&gt;</td>")
}

func TestRenderHTMLAllBlockKinds(t *testing.T) {
	kinds := []struct {
		kind BlockKind
		want string
	}{
		{BlockTitle, `<h1 class="title">x</h1>`},
		{BlockSectionHeader, `<h2 class="section-header">x</h2>`},
		{BlockText, `<p class="text">x</p>`},
		{BlockListItem, `<li class="list-item">x</li>`},
		{BlockCaption, `<figcaption class="caption">x</figcaption>`},
		{BlockFootnote, `<div class="footnote">x</div>`},
		{BlockFormula, `<div class="formula">x</div>`},
		{BlockPageHeader, `<header class="page-header">x</header>`},
		{BlockPageFooter, `<footer class="page-footer">x</footer>`},
	}

	for _, tt := range kinds {
		doc := PageDocument{PageNum: 1, Blocks: []Block{{Kind: tt.kind, Text: "x"}}}
		assert.Contains(t, string(RenderHTML(doc)), tt.want, tt.kind.String())
	}
}

func TestRenderHTMLEmptyPage(t *testing.T) {
	got := string(RenderHTML(PageDocument{PageNum: 3}))
	assert.Equal(t, "<div class=\"page\">\n<div class=\"page-number\">Page 3</div>\n</div>\n", got)
}
