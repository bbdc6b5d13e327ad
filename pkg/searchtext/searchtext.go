// Copyright (c) 2026 AtharHuda. All rights reserved.

// Package searchtext folds Unicode strings into a canonical form for
// substring search.
//
// # Usage
//
// Khatma search matches Arabic titles and names typed with or without
// diacritics (tashkeel) and with interchangeable letter forms (أ/إ/آ vs ا,
// ة vs ه, ى vs ي). This package normalizes both the query and the indexed
// fields so those variants compare equal.
package searchtext

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// arabicFold maps interchangeable Arabic letter forms onto one canonical rune.
var arabicFold = map[rune]rune{
	'أ': 'ا',
	'إ': 'ا',
	'آ': 'ا',
	'ٱ': 'ا',
	'ة': 'ه',
	'ى': 'ي',
}

// Fold converts an arbitrary Unicode string into its canonical search form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes combined characters).
// 2. Removes combining marks (Arabic tashkeel, Latin accents).
// 3. Unifies interchangeable Arabic letter forms.
// 4. Lowercases and collapses surrounding whitespace.
func Fold(s string) string {
	// 1. Normalize and strip combining marks
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Unify letter variants
	result = strings.Map(func(r rune) rune {
		if folded, ok := arabicFold[r]; ok {
			return folded
		}
		return r
	}, result)

	// 3. Case and whitespace
	return strings.TrimSpace(strings.ToLower(result))
}

// Contains reports whether haystack contains needle after both are folded.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	folded := Fold(needle)
	if folded == "" {
		return true
	}
	return strings.Contains(Fold(haystack), folded)
}

// isMn reports whether r is a Unicode non-spacing mark (tashkeel, accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
