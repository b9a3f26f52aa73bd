package lineparse

import "bytes"

// RemoveChars deletes every unquoted occurrence of the bytes in chars.
// Quote characters are always kept.
//
//	RemoveChars(line, " \t") // drop spaces and tabs outside quotes
func RemoveChars(buf []byte, chars string) []byte {
	state := unquoted
	j := 0
	for _, c := range buf {
		if c == quoteChar {
			state = state.toggle()
		} else if state == unquoted && IsChar(c, chars) {
			continue
		}
		buf[j] = c
		j++
	}
	return buf[:j]
}

// CollapseRuns replaces each unquoted run of bytes from chars with a single
// to. Runs at the start of the buffer are dropped, as is a to left at its end.
//
//	CollapseRuns(line, " \t", ' ') // spaces and tabs to single spaces
func CollapseRuns(buf []byte, chars string, to byte) []byte {
	state := unquoted
	j := 0
	for _, c := range buf {
		if c == quoteChar {
			state = state.toggle()
		} else if state == unquoted && IsChar(c, chars) {
			if j == 0 || buf[j-1] == to {
				continue
			}
			c = to
		}
		buf[j] = c
		j++
	}
	if j > 0 && buf[j-1] == to {
		j--
	}
	return buf[:j]
}

// StripComments deletes every unquoted comment opened by start and closed
// by end, markers included. An empty end makes start a line comment that
// stops before the next "\n" or "\r\n". Quotes inside a comment are ignored.
//
//	StripComments(text, "/*", "*/")
//	StripComments(text, "//", "")
func StripComments(buf []byte, start, end string) []byte {
	return stripComments(buf, start, end, false)
}

// StripCommentsKeepLines is StripComments that leaves the "\n" of every
// removed comment in place, so the text after a comment stays on the line
// it came from.
func StripCommentsKeepLines(buf []byte, start, end string) []byte {
	return stripComments(buf, start, end, true)
}

func stripComments(buf []byte, start, end string, keepLines bool) []byte {
	if start == "" {
		return buf
	}
	open, closing := []byte(start), []byte(end)

	state := unquoted
	inComment := false
	j := 0
	for i := 0; i < len(buf); i++ {
		if inComment {
			if len(closing) == 0 {
				if !lineBreakAt(buf, i) {
					continue
				}
				inComment = false
			} else {
				if bytes.HasPrefix(buf[i:], closing) {
					i += len(closing) - 1
					inComment = false
				} else if keepLines && buf[i] == '\n' {
					buf[j] = '\n'
					j++
				}
				continue
			}
		}

		c := buf[i]
		if c == quoteChar {
			state = state.toggle()
		}
		if state == unquoted && bytes.HasPrefix(buf[i:], open) {
			i += len(open) - 1
			inComment = true
			continue
		}
		buf[j] = c
		j++
	}
	return buf[:j]
}

func lineBreakAt(buf []byte, i int) bool {
	return buf[i] == '\n' || buf[i] == '\r' && i+1 < len(buf) && buf[i+1] == '\n'
}

// Trim removes leading and trailing bytes found in chars. Quotes get no
// special treatment here.
//
//	Trim([]byte("  asd asd! "), " ") // "asd asd!"
func Trim(buf []byte, chars string) []byte {
	i := 0
	for i < len(buf) && IsChar(buf[i], chars) {
		i++
	}
	n := copy(buf, buf[i:])
	for n > 0 && IsChar(buf[n-1], chars) {
		n--
	}
	return buf[:n]
}

// UnwrapQuotes removes one pair of double quotes when the buffer both
// starts and ends with one. Buffers shorter than two bytes are returned as is.
func UnwrapQuotes(buf []byte) []byte {
	n := len(buf)
	if n < 2 || buf[0] != quoteChar || buf[n-1] != quoteChar {
		return buf
	}
	copy(buf, buf[1:n-1])
	return buf[:n-2]
}
