// Package archive talks to archive.org: listing an identifier's files,
// downloading documents, and tracking per-identifier harvest status.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultBaseURL = "https://archive.org"

// File is one entry of an identifier's file listing.
type File struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Size   string `json:"size"`
}

// Client is a thin archive.org API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client against archive.org.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
}

// NewClientWithBase creates a client against a specific base URL, used by
// tests to point at a local server.
func NewClientWithBase(baseURL string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// Files lists the files of an identifier via the metadata API.
func (c *Client) Files(ctx context.Context, identifier string) ([]File, error) {
	url := fmt.Sprintf("%s/metadata/%s", c.baseURL, identifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %s: %w", identifier, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata for %s: unexpected status %s", identifier, resp.Status)
	}

	var payload struct {
		Files []File `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding metadata for %s: %w", identifier, err)
	}
	return payload.Files, nil
}

// Download fetches one file of an identifier into destPath. The write is
// atomic: content lands in a temp file and is renamed into place.
func (c *Client) Download(ctx context.Context, identifier, name, destPath string) error {
	url := fmt.Sprintf("%s/download/%s/%s", c.baseURL, identifier, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s/%s: %w", identifier, name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s/%s: unexpected status %s", identifier, name, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(destPath), "download-*.tmp")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("downloading %s/%s: %w", identifier, name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), destPath)
}

// EligiblePDF reports whether a file is a primary PDF worth processing.
// Derived variants carrying _bw or _text suffixes are skipped.
func EligiblePDF(name string) bool {
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return false
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return !strings.HasSuffix(base, "_bw") && !strings.HasSuffix(base, "_text")
}
