package lineparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func asStrings(tokens [][]byte) []string {
	res := make([]string, len(tokens))
	for i, t := range tokens {
		res[i] = string(t)
	}
	return res
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		in     string
		delims string
		max    int
		want   []string
		rest   string
		more   bool
	}{
		{"a b c d", " ", 2, []string{"a", "b"}, "c d", true},
		{"a b c d", " ", 0, []string{"a", "b", "c", "d"}, "", false},
		{"a b", " ", 2, []string{"a", "b"}, "", false},
		{"a b ", " ", 2, []string{"a", "b"}, "", true},
		{`cmd "arg one" x`, " ", 0, []string{"cmd", "arg one", "x"}, "", false},
		{`a "b"c "d""e"`, " ", 0, []string{"a", `"b"c`, `"d""e"`}, "", false},
		{`x"y z"`, " ", 0, []string{`x"y z"`}, "", false},
		{`""`, " ", 0, []string{""}, "", false},
		{"a  b", " ", 0, []string{"a", "", "b"}, "", false},
		{"a,b;c", ",;", 0, []string{"a", "b", "c"}, "", false},
		{"", " ", 0, []string{""}, "", false},
		{`a "b c`, " ", 0, []string{"a"}, "", false},
		{`"a b" c d`, " ", 1, []string{"a b"}, "c d", true},
	}
	for _, test := range cases {
		tokens, rest := Tokenize([]byte(test.in), test.delims, test.max)
		if d := cmp.Diff(test.want, asStrings(tokens)); d != "" {
			t.Errorf("Tokenize(%q, %q, %d) tokens (-want +got):\n%s", test.in, test.delims, test.max, d)
		}
		if (rest != nil) != test.more || string(rest) != test.rest {
			t.Errorf("Tokenize(%q, %q, %d) rest = %q (nil: %t), want %q",
				test.in, test.delims, test.max, rest, rest == nil, test.rest)
		}
	}
}

func TestTokenizeChained(t *testing.T) {
	buf := []byte("a b c d e")
	var all []string
	for calls := 0; buf != nil; calls++ {
		if calls > 5 {
			t.Fatal("remainder never ran out")
		}
		var tokens [][]byte
		tokens, buf = Tokenize(buf, " ", 2)
		all = append(all, asStrings(tokens)...)
	}
	if d := cmp.Diff([]string{"a", "b", "c", "d", "e"}, all); d != "" {
		t.Errorf("chained tokens (-want +got):\n%s", d)
	}
}

func TestTokenizeSharesBuffer(t *testing.T) {
	buf := []byte(`one "two"`)
	tokens, _ := Tokenize(buf, " ", 0)
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	buf[5] = 'T'
	if string(tokens[1]) != "Two" {
		t.Errorf("token does not alias the buffer: %q", tokens[1])
	}
	if string(buf) != `one "Two"` {
		t.Errorf("buffer was modified: %q", buf)
	}
}

func TestTokenizeString(t *testing.T) {
	tokens, rest := TokenizeString("x y z", " ", 1)
	if d := cmp.Diff([]string{"x"}, tokens); d != "" {
		t.Errorf("tokens (-want +got):\n%s", d)
	}
	if rest != "y z" {
		t.Errorf("rest = %q", rest)
	}
}

func TestLines(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a\r\nb\n\nc", []string{"a", "b", "", "c"}},
		{"a\n", []string{"a"}},
		{"\n", []string{""}},
		{"", nil},
		{"single", []string{"single"}},
	}
	for _, test := range cases {
		var got []string
		for line := range Lines([]byte(test.in)) {
			got = append(got, string(line))
		}
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("Lines(%q) (-want +got):\n%s", test.in, d)
		}
	}

	var seen []string
	for line := range Lines([]byte("1\n2\n3\n")) {
		seen = append(seen, string(line))
		if string(line) == "2" {
			break
		}
	}
	if d := cmp.Diff([]string{"1", "2"}, seen); d != "" {
		t.Errorf("stopping early (-want +got):\n%s", d)
	}
}
