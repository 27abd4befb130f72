package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// FitWidth cuts s so it fits a NUL-terminated buffer of width bytes.
// Anything after an embedded NUL is dropped and the cut never splits a rune.
func FitWidth(s string, width int) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	limit := width - 1
	if limit < 0 {
		limit = 0
	}
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// FoldKey strips every whitespace character and case-folds the rest, so
// "Ann Lee", "ann  lee" and "ANN LEE" share one key.
func FoldKey(s string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return cases.Fold().String(stripped)
}
