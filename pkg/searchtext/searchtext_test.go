// Copyright (c) 2026 AtharHuda. All rights reserved.

package searchtext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atharhuda/atharhuda/pkg/searchtext"
)

/*
TestFold verifies diacritic stripping and Arabic letter-form unification.
*/
func TestFold(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain_latin", "Ramadan", "ramadan"},
		{"surrounding_space", "  ختمة  ", "ختمة"},
		{"tashkeel_stripped", "سُبْحَانَ", "سبحان"},
		{"alef_forms_unified", "أحمد إبراهيم آل", "احمد ابراهيم ال"},
		{"teh_marbuta_unified", "ختمة", "ختمه"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, searchtext.Fold(tt.input))
		})
	}
}

/*
TestContains checks folded substring matching as used by khatma search.
*/
func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		matches  bool
	}{
		{"exact", "ختمة شهر رمضان", "رمضان", true},
		{"variant_alef", "عبدالله بن أحمد", "احمد", true},
		{"with_tashkeel_query", "سبحان الله", "سُبْحَان", true},
		{"empty_needle_matches_all", "anything", "", true},
		{"no_match", "ختمة الوالد", "رمضان", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, searchtext.Contains(tt.haystack, tt.needle))
		})
	}
}
