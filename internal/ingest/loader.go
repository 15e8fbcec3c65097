package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/repolens/repolens/internal/analysis"
)

// MaxFileSize bounds what gets read into memory; larger files are skipped
// rather than truncated.
const MaxFileSize = 1 << 20 // 1 MiB

// Load walks a local repository directory and returns analyzable file
// records in walk order. Paths are repo-relative with forward slashes.
// Unreadable files are skipped; only a failed walk of the root is an error.
func Load(root string) ([]analysis.FileRecord, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", root)
	}

	var records []analysis.FileRecord
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if ignoredDirectories[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if IsIgnoredPath(rel) || !IsAllowedFile(rel) {
			return nil
		}
		if fi, err := d.Info(); err != nil || fi.Size() > MaxFileSize {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if IsBinary(raw) {
			return nil
		}

		records = append(records, analysis.FileRecord{
			Path:    rel,
			Content: DecodeText(raw),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return records, nil
}
