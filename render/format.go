package render

import (
	"fmt"
	"strings"
)

// FormatK renders a score in thousands with one decimal, the way scores
// are read out in chat: 61234 becomes "61.2K".
func FormatK(v int) string {
	return fmt.Sprintf("%.1fK", float64(v)/1000.0)
}

// Wrap breaks text into lines of at most width runes, indenting every
// continuation line. Words longer than the width stay on their own line.
func Wrap(text string, width int, indent string) string {
	if width <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen = len(word)
			continue
		}
		if lineLen+1+len(word) > width {
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString(word)
			lineLen = len(indent) + len(word)
			continue
		}
		b.WriteString(" ")
		b.WriteString(word)
		lineLen += 1 + len(word)
	}
	return b.String()
}
