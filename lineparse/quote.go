// Package lineparse holds quote-aware transforms for single lines or whole
// text buffers, a tokenizer that splits a line into arguments, and the
// scalar conversions used on the resulting tokens.
//
// The transforms work in place: they shift the kept bytes to the front of
// the buffer and return it shortened, so len(result) is the new length.
// A double quote toggles quoting; characters inside a quoted span are never
// treated as special, and an unterminated quote runs to the end of the buffer.
package lineparse

const quoteChar = '"'

type quoteState uint8

const (
	unquoted quoteState = iota
	quoted
)

func (q quoteState) toggle() quoteState {
	if q == quoted {
		return unquoted
	}
	return quoted
}
