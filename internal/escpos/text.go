// internal/escpos/text.go
package escpos

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// codePage maps the German letters to their WPC1252 byte values. Every
// other rune is sent as its low byte.
var codePage = map[rune]byte{
	'ä': 0xE4,
	'ö': 0xF6,
	'ü': 0xFC,
	'Ä': 0xC4,
	'Ö': 0xD6,
	'Ü': 0xDC,
	'ß': 0xDF,
}

// pictographic covers emoji and symbol pictographs, misc symbols and
// dingbats, variation selectors, tag characters and the zero-width joiner.
var pictographic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200D, Hi: 0x200D, Stride: 1},
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1},
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1FAFF, Stride: 1},
		{Lo: 0xE0000, Hi: 0xE007F, Stride: 1},
	},
}

var punctuation = map[rune]rune{
	'–': '-',  // en dash
	'—': '-',  // em dash
	'―': '-',  // horizontal bar
	'‘': '\'', // left single quote
	'’': '\'', // right single quote
	'“': '"',  // left double quote
	'”': '"',  // right double quote
}

// Translate converts text to printer code page bytes. Strip and normalize
// before calling it; this is the last step before the bytes hit the wire.
func Translate(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := codePage[r]; ok {
			out = append(out, b)
			continue
		}
		out = append(out, byte(r))
	}
	return out
}

// StripPictographic removes emoji and related code points, then collapses
// runs of whitespace and trims the result.
func StripPictographic(s string) string {
	stripped, _, err := transform.String(runes.Remove(runes.In(pictographic)), s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(stripped), " ")
}

// NormalizePunctuation maps typographic dashes and quotes to ASCII.
func NormalizePunctuation(s string) string {
	normalized, _, err := transform.String(runes.Map(func(r rune) rune {
		if repl, ok := punctuation[r]; ok {
			return repl
		}
		return r
	}), s)
	if err != nil {
		return s
	}
	return normalized
}

// CleanTitle prepares a title or label for printing.
func CleanTitle(s string) string {
	return NormalizePunctuation(StripPictographic(s))
}
