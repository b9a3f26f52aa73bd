// Package deffile reads definition files: plain text where each line holds
// a key followed by its arguments, e.g.
//
//	// a 640x480 gray image
//	width  640
//	height width * 3 / 4
//	title  "Test card"
//
// Which characters separate tokens and mark comments is set by
// config.ParserOptions.
package deffile

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"

	"FormatKit/config"
	"FormatKit/fsutil"
	"FormatKit/lineparse"
	"FormatKit/textenc"
)

// ErrNotFound is returned when a key is not defined.
var ErrNotFound = errors.New("deffile: key not defined")

// Entry is one non-empty line of a definition file.
type Entry struct {
	Line int // 1-based line in the source text
	Key  string
	Args []string
}

// Document is a parsed definition file.
type Document struct {
	Entries []Entry
	index   map[string]int // lower-case key to the last entry with it
}

// Load reads and parses a definition file, converting it from
// cfg.Encoding to UTF-8 first.
func Load(path string, cfg config.Config) (*Document, error) {
	enc, err := textenc.Lookup(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	data, err := fsutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err = textenc.ToUTF8(data, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc, err := Parse(data, cfg.Parser)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse splits data into entries. data is modified in place.
func Parse(data []byte, opts config.ParserOptions) (*Document, error) {
	if opts.Delimiters == "" {
		return nil, errors.New("deffile: no delimiters configured")
	}
	if opts.BlockCommentStart != "" {
		if opts.BlockCommentEnd == "" {
			return nil, errors.New("deffile: block comment has no end marker")
		}
		data = lineparse.StripCommentsKeepLines(data, opts.BlockCommentStart, opts.BlockCommentEnd)
	}

	// Blanks around a delimiter belong to it, and repeated delimiters
	// count once, so "a ,, b" has two tokens.
	separators := opts.Whitespace + opts.Delimiters
	doc := &Document{index: make(map[string]int)}
	n := 0
	for line := range lineparse.Lines(data) {
		n++
		// Per line, so a quote left open cannot hide later comments.
		line = lineparse.StripComments(line, opts.LineComment, "")
		line = lineparse.CollapseRuns(line, separators, opts.Delimiters[0])
		if len(line) == 0 {
			continue
		}
		if bytes.Count(line, []byte{'"'})%2 != 0 {
			log.Printf("Warning: line %d ends inside a quote, its last token is ignored", n)
		}

		tokens, rest := lineparse.Tokenize(line, opts.Delimiters, opts.MaxTokens)
		if len(tokens) == 0 {
			continue
		}
		e := Entry{Line: n, Key: string(tokens[0])}
		for _, t := range tokens[1:] {
			e.Args = append(e.Args, string(t))
		}
		if len(rest) > 0 {
			e.Args = append(e.Args, string(rest))
		}
		doc.add(e)
	}
	return doc, nil
}

func (d *Document) add(e Entry) {
	key := strings.ToLower(e.Key)
	if prev, ok := d.index[key]; ok {
		log.Printf("Warning: '%s' on line %d overrides line %d", e.Key, e.Line, d.Entries[prev].Line)
	}
	d.index[key] = len(d.Entries)
	d.Entries = append(d.Entries, e)
}

// Lookup returns the last entry with the given key, ignoring case.
func (d *Document) Lookup(key string) (Entry, bool) {
	i, ok := d.index[strings.ToLower(key)]
	if !ok {
		return Entry{}, false
	}
	return d.Entries[i], true
}

// Keys returns the distinct keys in order of first appearance.
func (d *Document) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, e := range d.Entries {
		k := strings.ToLower(e.Key)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// String returns the arguments of key joined by single spaces.
func (d *Document) String(key string) (string, error) {
	e, ok := d.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return strings.Join(e.Args, " "), nil
}

// Bool interprets the first argument of key with lineparse.ToBool.
// A key given without arguments is true.
func (d *Document) Bool(key string) (bool, error) {
	e, ok := d.Lookup(key)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if len(e.Args) == 0 {
		return true, nil
	}
	return lineparse.ToBool(e.Args[0]), nil
}

// Int returns the leading number of the first argument of key.
func (d *Document) Int(key string) (int64, error) {
	e, ok := d.Lookup(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if len(e.Args) == 0 {
		return 0, fmt.Errorf("'%s' on line %d has no value", e.Key, e.Line)
	}
	return lineparse.ToInt(e.Args[0]), nil
}

// SetDefault adds an entry for key unless the document already defines it.
func (d *Document) SetDefault(key string, args ...string) {
	if _, ok := d.Lookup(key); ok {
		return
	}
	d.add(Entry{Key: key, Args: args})
}
