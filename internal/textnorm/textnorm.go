// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm canonicalizes titles and identifiers for comparison.
// Normalized forms are used only as comparison keys; the original text on
// a record is never overwritten.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text and removes combining marks, so that
// "matemática" and "matematica" compare equal.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Identifier returns the canonical form of a DOI: trimmed, lowercased,
// with any "doi:" token or doi.org URL prefix removed. Empty input maps
// to the empty string.
func Identifier(doi string) string {
	s := strings.ToLower(strings.TrimSpace(doi))
	s = strings.TrimPrefix(s, "https://doi.org/")
	s = strings.TrimPrefix(s, "http://doi.org/")
	s = strings.TrimPrefix(s, "doi:")
	return strings.TrimSpace(s)
}

// Title returns the canonical form of a title: lowercased, diacritics
// stripped, every run of non-alphanumeric characters collapsed to a
// single space.
func Title(title string) string {
	s := strings.ToLower(title)
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		} else {
			space = true
		}
	}
	return b.String()
}
