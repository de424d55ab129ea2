// Package encoding prepares user-supplied strings for the glyph atlas.
package encoding

import (
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Replacement stands in for runes the atlas does not bake.
const Replacement = '?'

// sub is the charmap substitution byte for unencodable runes.
const sub = 0x1a

// ToLatin1 maps s onto the runes the glyph atlas bakes (Latin-1).
// Decomposed sequences are composed first, so "é" stays "é".
// Anything else becomes Replacement.
func ToLatin1(s string) string {
	s = norm.NFC.String(s)

	enc := xencoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return s
	}
	for i, c := range b {
		if c == sub {
			b[i] = Replacement
		}
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return s
	}
	return string(out)
}

// IsLatin1 reports whether every rune of s survives ToLatin1 unchanged.
func IsLatin1(s string) bool {
	for _, r := range s {
		if r > 0xff || r == sub {
			return false
		}
	}
	return true
}
