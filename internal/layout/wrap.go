// internal/layout/wrap.go
package layout

import (
	"strings"
	"unicode/utf8"
)

// Wrap greedily breaks text into lines of at most maxWidth characters.
// Words are never split: a single word longer than maxWidth gets a line
// of its own. Runs of whitespace collapse to one space.
func Wrap(text string, maxWidth int) []string {
	var lines []string
	var line strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case lineLen == 0:
			line.WriteString(word)
			lineLen = wordLen
		case lineLen+1+wordLen <= maxWidth:
			line.WriteByte(' ')
			line.WriteString(word)
			lineLen += 1 + wordLen
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
			lineLen = wordLen
		}
	}

	if lineLen > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
