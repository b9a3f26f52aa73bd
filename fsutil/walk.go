package fsutil

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a file found by Walk.
type Entry struct {
	Path string
	Info fs.FileInfo
}

// Walk lists the files below root in directory order. Directories are not
// listed themselves; with recursive set their contents are listed in place
// of them. Names consisting only of dots are skipped.
//
// A directory that cannot be read produces a single error value; the walk
// continues with the next entry. Breaking out of the range loop stops it.
func Walk(root string, recursive bool) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		walkDir(root, recursive, yield)
	}
}

func walkDir(dir string, recursive bool, yield func(Entry, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return yield(Entry{Path: dir}, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.Trim(name, ".") == "" {
			continue
		}
		path := filepath.Join(dir, name)
		if entry.IsDir() {
			if recursive && !walkDir(path, recursive, yield) {
				return false
			}
			continue
		}
		info, err := entry.Info()
		if !yield(Entry{Path: path, Info: info}, err) {
			return false
		}
	}
	return true
}
