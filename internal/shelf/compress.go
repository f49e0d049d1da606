// Package shelf compresses finished per-document output folders.
package shelf

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CompressDir zips the contents of dir into "<dir>.zip" next to it and
// removes the original directory on success.
func CompressDir(dir string) (string, error) {
	zipPath := dir + ".zip"
	if err := writeZip(dir, zipPath); err != nil {
		_ = os.Remove(zipPath)
		return "", err
	}
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("removing %s after compression: %w", dir, err)
	}
	return zipPath, nil
}

func writeZip(dir, zipPath string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}

	w := zip.NewWriter(out)
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		f, err := w.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = src.Close() }()
		_, err = io.Copy(f, src)
		return err
	})
	if err != nil {
		_ = w.Close()
		_ = out.Close()
		return fmt.Errorf("zipping %s: %w", dir, err)
	}
	if err := w.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
