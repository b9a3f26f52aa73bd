package lineparse

// Tokenize splits buf into tokens separated by any single byte of delims.
// Delimiters inside quotes do not split, and adjacent delimiters produce
// empty tokens. A token that consists of exactly one quoted span is
// returned without its quotes; tokens with more quotes keep all of them.
// Tokens are sub-slices of buf, which is not modified.
//
// With maxTokens > 0 at most that many tokens are returned. If more input
// follows, rest holds the unconsumed remainder starting at the next token,
// ready for another call. Otherwise, and always when maxTokens is 0, rest
// is nil. A final token whose quote is never closed is not returned.
func Tokenize(buf []byte, delims string, maxTokens int) (tokens [][]byte, rest []byte) {
	state := unquoted
	start := 0
	quoteStart, quoteEnd := -1, -1
	spans := 0

	for i := 0; i <= len(buf); i++ {
		atEnd := i == len(buf)
		if !atEnd && buf[i] == quoteChar {
			if state == unquoted {
				quoteStart = i
			} else {
				quoteEnd = i
				spans++
			}
			state = state.toggle()
			continue
		}
		if state == quoted || !atEnd && !IsChar(buf[i], delims) {
			continue
		}

		if maxTokens != 0 && len(tokens) == maxTokens {
			return tokens, buf[start:]
		}
		token := buf[start:i]
		if spans == 1 && quoteStart == start && quoteEnd == i-1 {
			token = buf[start+1 : i-1]
		}
		tokens = append(tokens, token)
		start = i + 1
		spans = 0
	}
	return tokens, nil
}

// TokenizeString is Tokenize for strings.
func TokenizeString(s, delims string, maxTokens int) (tokens []string, rest string) {
	raw, tail := Tokenize([]byte(s), delims, maxTokens)
	tokens = make([]string, len(raw))
	for i, t := range raw {
		tokens[i] = string(t)
	}
	return tokens, string(tail)
}
