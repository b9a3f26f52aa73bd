package deffile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FormatKit/config"
)

const card = `// test card
width   640   // pixels
height  width * 3 / 4
/* depth and
   fill */ bpp 1
fill	128
title   "Test  card"
tags    gray  small
visible
`

func parse(t *testing.T, text string, opts config.ParserOptions) *Document {
	t.Helper()
	doc, err := Parse([]byte(text), opts)
	require.NoError(t, err)
	return doc
}

func TestParse(t *testing.T) {
	doc := parse(t, card, config.Default().Parser)

	want := []Entry{
		{Line: 2, Key: "width", Args: []string{"640"}},
		{Line: 3, Key: "height", Args: []string{"width", "*", "3", "/", "4"}},
		{Line: 5, Key: "bpp", Args: []string{"1"}},
		{Line: 6, Key: "fill", Args: []string{"128"}},
		{Line: 7, Key: "title", Args: []string{"Test  card"}},
		{Line: 8, Key: "tags", Args: []string{"gray", "small"}},
		{Line: 9, Key: "visible"},
	}
	if diff := cmp.Diff(want, doc.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"width", "height", "bpp", "fill", "title", "tags", "visible"}, doc.Keys())
}

func TestParseDelimiters(t *testing.T) {
	opts := config.Default().Parser
	opts.Delimiters = ","
	opts.LineComment = "#"
	opts.BlockCommentStart, opts.BlockCommentEnd = "", ""

	doc := parse(t, "name, \"a,b\" ,c # note\r\n\r\n,,\n", opts)
	want := []Entry{{Line: 1, Key: "name", Args: []string{"a,b", "c"}}}
	if diff := cmp.Diff(want, doc.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMaxTokens(t *testing.T) {
	opts := config.Default().Parser
	opts.MaxTokens = 2
	doc := parse(t, "title A long   title here\n", opts)

	s, err := doc.String("title")
	require.NoError(t, err)
	assert.Equal(t, "A long title here", s)
	e, _ := doc.Lookup("title")
	assert.Equal(t, []string{"A", "long title here"}, e.Args)
}

func TestParseRejects(t *testing.T) {
	opts := config.Default().Parser
	opts.Delimiters = ""
	_, err := Parse([]byte("a b"), opts)
	assert.Error(t, err)

	opts = config.Default().Parser
	opts.BlockCommentEnd = ""
	_, err = Parse([]byte("a b"), opts)
	assert.Error(t, err)
}

func TestUnterminatedQuote(t *testing.T) {
	doc := parse(t, "\"open\nkey \"value\n", config.Default().Parser)
	_, ok := doc.Lookup("open")
	assert.False(t, ok)
	e, ok := doc.Lookup("key")
	require.True(t, ok)
	assert.Empty(t, e.Args)
}

func TestOpenQuoteKeepsLaterComments(t *testing.T) {
	doc := parse(t, "title \"open\n// comment\nwidth 5 // px\n", config.Default().Parser)

	want := []Entry{
		{Line: 1, Key: "title"},
		{Line: 3, Key: "width", Args: []string{"5"}},
	}
	if diff := cmp.Diff(want, doc.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestLineNumbersAfterBlockComments(t *testing.T) {
	doc := parse(t, "/* a\nb\nc */\nwidth 5\nheight /* x\n */ 7\n", config.Default().Parser)

	want := []Entry{
		{Line: 4, Key: "width", Args: []string{"5"}},
		{Line: 5, Key: "height"},
		{Line: 6, Key: "7"},
	}
	if diff := cmp.Diff(want, doc.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	doc := parse(t, "Size 1\nsize 2\n", config.Default().Parser)

	e, ok := doc.Lookup("SIZE")
	require.True(t, ok)
	assert.Equal(t, 2, e.Line)
	assert.Equal(t, []string{"Size"}, doc.Keys())

	_, err := doc.String("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = doc.Int("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = doc.Bool("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTypedValues(t *testing.T) {
	doc := parse(t, card, config.Default().Parser)

	n, err := doc.Int("fill")
	require.NoError(t, err)
	assert.EqualValues(t, 128, n)

	b, err := doc.Bool("visible")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = doc.Int("visible")
	assert.Error(t, err)

	doc.SetDefault("fill", "7")
	doc.SetDefault("border", "0")
	n, _ = doc.Int("fill")
	assert.EqualValues(t, 128, n)
	b, err = doc.Bool("border")
	require.NoError(t, err)
	assert.False(t, b)
}

func TestEval(t *testing.T) {
	doc := parse(t, card+"area width*height\nstride RowStride(width, 24)\n", config.Default().Parser)

	tests := map[string]float64{
		"width":  640,
		"height": 480,
		"area":   640 * 480,
		"stride": 1920,
	}
	for key, want := range tests {
		got, err := doc.Eval(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
}

func TestEvalErrors(t *testing.T) {
	doc := parse(t, "a b + 1\nb a * 2\nc missing\nd 1 +\ne title\ntitle x\n", config.Default().Parser)

	_, err := doc.Eval("a")
	assert.Error(t, err)
	_, err = doc.Eval("c")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = doc.Eval("d")
	assert.Error(t, err)
	_, err = doc.Eval("e")
	assert.Error(t, err)
	_, err = doc.Eval("none")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecode(t *testing.T) {
	doc := parse(t, card, config.Default().Parser)

	var got struct {
		Width   int
		BPP     int `mapstructure:"bpp"`
		Fill    uint8
		Title   string
		Tags    []string
		Visible bool
		Missing string
	}
	require.NoError(t, doc.Decode(&got))
	assert.Equal(t, 640, got.Width)
	assert.Equal(t, 1, got.BPP)
	assert.EqualValues(t, 128, got.Fill)
	assert.Equal(t, "Test  card", got.Title)
	assert.Equal(t, []string{"gray", "small"}, got.Tags)
	assert.True(t, got.Visible)
	assert.Empty(t, got.Missing)

	var bad struct{ Width bool }
	assert.Error(t, doc.Decode(&bad))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.def")
	// "café" in Windows-1252
	require.NoError(t, os.WriteFile(path, []byte("title caf\xe9\n"), 0644))

	cfg := config.Default()
	cfg.Encoding = "windows-1252"
	doc, err := Load(path, cfg)
	require.NoError(t, err)
	s, err := doc.String("title")
	require.NoError(t, err)
	assert.Equal(t, "café", s)

	cfg.Encoding = "klingon"
	_, err = Load(path, cfg)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.def"), config.Default())
	assert.Error(t, err)
}
