package dashboard

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, pages map[string]int) string {
	t.Helper()
	root := t.TempDir()
	for docPath, n := range pages {
		dir := filepath.Join(root, docPath)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for i := 1; i <= n; i++ {
			name := filepath.Join(dir, strconv.Itoa(i)+".html")
			require.NoError(t, os.WriteFile(name, []byte("<div></div>"), 0o644))
		}
	}
	return root
}

func TestCollect(t *testing.T) {
	root := buildTree(t, map[string]int{
		"bookA/doc1": 3,
		"bookA/doc2": 2,
		"bookB/doc1": 1,
		"bookC/doc1": 0, // empty document directory does not count
	})

	stats, err := Collect(root)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Identifiers)
	assert.Equal(t, 3, stats.Documents)
	assert.Equal(t, 6, stats.Pages)
}

func TestCollectEmptyTree(t *testing.T) {
	stats, err := Collect(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestWrite(t *testing.T) {
	root := buildTree(t, map[string]int{"book/doc": 2})

	require.NoError(t, Write(root))

	data, err := os.ReadFile(filepath.Join(root, "dashboard.txt"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Processing Statistics")
	assert.Contains(t, text, "Identifiers with processed documents: 1")
	assert.Contains(t, text, "Total documents processed: 1")
	assert.Contains(t, text, "Total pages processed: 2")
	assert.Contains(t, text, "Last updated: ")
}
