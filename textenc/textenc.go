// Package textenc converts text between legacy Windows code pages, UTF-8
// and UTF-16.
package textenc

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Lookup finds an encoding by its WHATWG label, e.g. "windows-1252",
// "latin1" or "ibm866". The empty name and "utf-8" return nil, meaning
// the text needs no conversion.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding '%s': %w", name, err)
	}
	return enc, nil
}

// ForCodePage returns the encoding for a Windows code page number.
// UTF-8 (65001) returns nil; unknown pages fall back to Windows-1252.
func ForCodePage(cp int) encoding.Encoding {
	switch cp {
	case 437:
		return charmap.CodePage437
	case 850:
		return charmap.CodePage850
	case 866:
		return charmap.CodePage866
	case 1250: // Central European
		return charmap.Windows1250
	case 1251: // Cyrillic
		return charmap.Windows1251
	case 1252:
		return charmap.Windows1252
	case 65001:
		return nil
	default:
		return charmap.Windows1252
	}
}

// ToUTF8 decodes b from enc. A nil enc returns b unchanged.
func ToUTF8(b []byte, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return b, nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("failed to decode text: %w", err)
	}
	return out, nil
}

// ToUTF16 encodes s as little endian UTF-16 without a byte order mark.
// Invalid UTF-8 in s is replaced by U+FFFD.
func ToUTF16(s string) []byte {
	enc := encoding.ReplaceUnsupported(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder())
	out, err := enc.String(s)
	if err != nil {
		// UTF-16 can represent every rune, so this cannot happen.
		panic(err)
	}
	return []byte(out)
}
