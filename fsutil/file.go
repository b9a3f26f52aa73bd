// Package fsutil wraps the whole-file and directory operations the rest of
// the module is built on.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDir is returned by EnsureDir when part of the path exists as a file.
var ErrNotDir = errors.New("not a directory")

// ReadFile loads the entire named file.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	return data, nil
}

// WriteFile stores data as the complete content of the named file,
// creating or truncating it.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return nil
}

// EnsureDir creates every missing directory along path. It fails with
// ErrNotDir if an existing element of the path is not a directory.
func EnsureDir(path string) error {
	path = filepath.Clean(path)
	for dir := path; ; {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("failed to create directory '%s': '%s': %w", path, dir, ErrNotDir)
			}
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", path, err)
	}
	return nil
}

func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// Extension returns the part of the last path element after its final
// dot, without the dot, or "" if there is none. Both slash and backslash
// separate path elements. A dot at the very start of path does not count.
func Extension(path string) string {
	for i := len(path) - 1; i > 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
		if isSeparator(path[i]) {
			break
		}
	}
	return ""
}

// FileName returns the part of path after the last slash or backslash.
func FileName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
