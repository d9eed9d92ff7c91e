package utils

import (
	"strings"
	"unicode"
)

// TitleCase uppercases the first letter of every word. Used for turning
// column identifiers like "total ventas" into display headers.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startWord := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			startWord = true
			b.WriteRune(r)
			continue
		}
		if startWord {
			b.WriteRune(unicode.ToUpper(r))
			startWord = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
