// Package markdown converts emitted page documents to Markdown.
package markdown

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ConvertPage converts one page document's HTML into Markdown.
func ConvertPage(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parsing page HTML: %w", err)
	}

	page := findByClass(doc, "div", "page")
	if page == nil {
		return "", fmt.Errorf("no page container found")
	}

	var b strings.Builder
	for c := page.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		b.WriteString(convertElement(c))
	}
	return b.String(), nil
}

// ConvertDirectory converts every "<n>.html" page file in dir, in page
// order, separated by horizontal rules.
func ConvertDirectory(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading page directory: %w", err)
	}

	var pages []int
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".html" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(entry.Name(), ".html"))
		if err != nil {
			continue
		}
		pages = append(pages, n)
	}
	sort.Ints(pages)

	var parts []string
	for _, n := range pages {
		f, err := os.Open(filepath.Join(dir, strconv.Itoa(n)+".html"))
		if err != nil {
			return "", err
		}
		md, err := ConvertPage(f)
		_ = f.Close()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n, err)
		}
		parts = append(parts, md)
	}
	return strings.Join(parts, "\n---\n\n"), nil
}

// convertElement applies the per-block rendering rule for one page child.
func convertElement(n *html.Node) string {
	text := strings.TrimSpace(textContent(n))
	switch {
	case n.Data == "div" && hasClass(n, "page-number"):
		return fmt.Sprintf("<!-- %s -->\n\n", text)
	case n.Data == "h1" && hasClass(n, "title"):
		return fmt.Sprintf("# %s\n\n", text)
	case n.Data == "h2" && hasClass(n, "section-header"):
		return fmt.Sprintf("## %s\n\n", text)
	case n.Data == "p" && hasClass(n, "text"):
		return text + "\n\n"
	case n.Data == "li" && hasClass(n, "list-item"):
		return fmt.Sprintf("- %s\n", text)
	case n.Data == "figcaption" && hasClass(n, "caption"):
		return fmt.Sprintf("*%s*\n\n", text)
	case n.Data == "div" && hasClass(n, "footnote"):
		return fmt.Sprintf("[Footnote: %s]\n\n", text)
	case n.Data == "div" && hasClass(n, "formula"):
		return fmt.Sprintf("$%s$\n\n", text)
	case n.Data == "footer" && hasClass(n, "page-footer"):
		return fmt.Sprintf("---\n*%s*\n\n", text)
	case n.Data == "header" && hasClass(n, "page-header"):
		return fmt.Sprintf("*%s*\n---\n\n", text)
	case n.Data == "table" && hasClass(n, "data-table"):
		return convertTable(n)
	default:
		return ""
	}
}

// convertTable renders a table as a pipe table padded to the widest row.
func convertTable(n *html.Node) string {
	var rows [][]string
	maxCells := 0
	for _, tr := range findAll(n, "tr") {
		var cells []string
		for _, td := range findAll(tr, "td") {
			cells = append(cells, strings.TrimSpace(textContent(td)))
		}
		if len(cells) > maxCells {
			maxCells = len(cells)
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 || maxCells == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("| " + strings.Repeat(" | ", maxCells-1) + " |\n")
	b.WriteString("| " + strings.TrimSuffix(strings.Repeat("--- | ", maxCells), " ") + "\n")
	for _, cells := range rows {
		b.WriteString("| " + strings.Join(cells, " | "))
		b.WriteString(strings.Repeat(" | ", maxCells-len(cells)))
		b.WriteString(" |\n")
	}
	b.WriteString("\n")
	return b.String()
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findByClass(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

// findAll collects descendant elements with the given tag name.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
			continue
		}
		out = append(out, findAll(c, tag)...)
	}
	return out
}
