package archive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/metadata/somebook", r.URL.Path)
		_, _ = w.Write([]byte(`{"files":[
			{"name":"somebook.pdf","format":"Text PDF","size":"1234"},
			{"name":"somebook_bw.pdf","format":"Text PDF","size":"999"},
			{"name":"somebook_djvu.txt","format":"DjVuTXT","size":"10"}
		]}`))
	}))
	defer srv.Close()

	c := NewClientWithBase(srv.URL)
	files, err := c.Files(context.Background(), "somebook")
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "somebook.pdf", files[0].Name)
	assert.Equal(t, "Text PDF", files[0].Format)
}

func TestFilesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClientWithBase(srv.URL).Files(context.Background(), "missing")
	assert.Error(t, err)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download/somebook/somebook.pdf", r.URL.Path)
		_, _ = w.Write([]byte("pdf bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "shelf", "somebook.pdf")
	err := NewClientWithBase(srv.URL).Download(context.Background(), "somebook", "somebook.pdf", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))

	// No temp files left next to the destination.
	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDownloadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "doc.pdf")
	err := NewClientWithBase(srv.URL).Download(context.Background(), "id", "doc.pdf", dest)
	require.Error(t, err)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEligiblePDF(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"book.pdf", true},
		{"Book.PDF", true},
		{"book_bw.pdf", false},
		{"book_text.pdf", false},
		{"book.djvu", false},
		{"book.pdf.txt", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EligiblePDF(tt.name), tt.name)
	}
}
