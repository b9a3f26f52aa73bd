package lineparse

import (
	"bytes"
	"iter"
)

// Lines returns the lines of buf, split at "\n" with a preceding "\r"
// removed. The text after the last newline is a line only if it is not
// empty. The returned slices share buf.
func Lines(buf []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		data := buf
		for len(data) > 0 {
			line, rest, found := bytes.Cut(data, []byte{'\n'})
			if !yield(bytes.TrimSuffix(line, []byte{'\r'})) || !found {
				return
			}
			data = rest
		}
	}
}
