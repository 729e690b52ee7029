// Package fileutil provides file system utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath returns path unchanged when it exists. Otherwise it looks
// for an entry in the same directory whose name matches case-insensitively,
// so SQUARE.RBL finds square.rbl on case-sensitive file systems.
//
// If several entries match, the first in directory order wins.
func ResolvePath(path string) (string, error) {
	_, err := os.Stat(path)
	if err == nil {
		return path, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	found, ferr := FindFileCaseInsensitive(dir, name)
	if ferr != nil {
		return "", fmt.Errorf("%w: %s", fs.ErrNotExist, path)
	}
	return found, nil
}

// FindFileCaseInsensitive searches dir for a regular file named filename,
// ignoring case.
func FindFileCaseInsensitive(dir, filename string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), filename) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s)", filename, dir)
}
