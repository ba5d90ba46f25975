package generate

import (
	"strings"
	"unicode/utf8"
)

// TitleCase uppercases the first character of every space-delimited word and
// leaves the rest of each word as is.
//
// Only single spaces separate words, so "ivory  coast" keeps its empty middle
// word and "guinea-bissau" becomes "Guinea-bissau".
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(w[:size]) + w[size:]
	}
	return strings.Join(words, " ")
}
