// Package discovery enumerates candidate fixture files for a test mode.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
)

// Collect recursively walks dir and returns every regular file whose
// extension is in exts. filepath.WalkDir visits entries in lexical order at
// every level, so the same tree always yields the same ordered list
// regardless of filesystem iteration order. Any unreadable entry aborts the
// walk: a broken fixture tree is a configuration error, not a test failure.
func Collect(dir string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking fixture tree %s: %w", dir, err)
	}
	return files, nil
}
