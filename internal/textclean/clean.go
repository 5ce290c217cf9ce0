// Package textclean normalises free text before vectorisation.
package textclean

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Clean lower-cases text, removes punctuation and digits, drops English
// stopwords and collapses whitespace. Empty input yields an empty string.
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = lower.String(norm.NFKC.String(text))

	stripped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsPunct(r), unicode.IsSymbol(r), unicode.IsDigit(r):
			return -1
		default:
			return r
		}
	}, text)

	words := strings.Fields(stripped)
	kept := words[:0]
	for _, word := range words {
		if IsStopword(word) {
			continue
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

// IsStopword reports whether word is in the English stopword list. The word is
// expected to be lower case.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
