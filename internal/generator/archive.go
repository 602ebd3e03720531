package generator

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteArchive streams every existing file in paths into a ZIP written to
// w, in order, each stored under its base name. Missing files are skipped.
// The names actually added are returned.
func WriteArchive(w io.Writer, paths []string) ([]string, error) {
	archive := zip.NewWriter(w)
	added := make([]string, 0, len(paths))

	for _, path := range paths {
		ok, err := addArchiveEntry(archive, path)
		if err != nil {
			archive.Close()
			return added, err
		}
		if ok {
			added = append(added, filepath.Base(path))
		}
	}

	if err := archive.Close(); err != nil {
		return added, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return added, nil
}

func addArchiveEntry(archive *zip.Writer, path string) (bool, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("Generated PDF missing, skipped from archive", "path", path)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return false, fmt.Errorf("failed to build archive header for %s: %w", path, err)
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	entry, err := archive.CreateHeader(header)
	if err != nil {
		return false, fmt.Errorf("failed to add %s to archive: %w", path, err)
	}
	if _, err := io.Copy(entry, file); err != nil {
		return false, fmt.Errorf("failed to write %s to archive: %w", path, err)
	}
	return true, nil
}
