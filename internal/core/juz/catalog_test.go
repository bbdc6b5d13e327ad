// Copyright (c) 2026 AtharHuda. All rights reserved.

package juz_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharhuda/atharhuda/internal/core/juz"
)

/*
TestName checks known juz names and the fail-soft numeral fallback.
*/
func TestName(t *testing.T) {
	tests := []struct {
		name     string
		number   int
		expected string
	}{
		{"first", 1, "الم"},
		{"middle", 15, "سبحان الذي"},
		{"last", 30, "عمّ"},
		{"below_range", 0, "0"},
		{"above_range", 31, "31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, juz.Name(tt.number))
		})
	}
}

/*
TestSurahs verifies catalog coverage and the empty fallback.
*/
func TestSurahs(t *testing.T) {
	// Every juz in range has at least one surah.
	for number := 1; number <= juz.Count; number++ {
		t.Run("juz_"+strconv.Itoa(number), func(t *testing.T) {
			assert.NotEmpty(t, juz.Surahs(number))
		})
	}

	t.Run("out_of_range_is_empty", func(t *testing.T) {
		assert.Empty(t, juz.Surahs(31))
		assert.Empty(t, juz.Surahs(-1))
	})

	t.Run("known_contents", func(t *testing.T) {
		first := juz.Surahs(1)
		require.Len(t, first, 2)
		assert.Equal(t, "الفاتحة", first[0])

		// The thirtieth juz spans the short surahs.
		assert.Len(t, juz.Surahs(30), 37)
	})
}

/*
TestSurahs_ReturnsCopy ensures callers cannot corrupt the catalog.
*/
func TestSurahs_ReturnsCopy(t *testing.T) {
	list := juz.Surahs(2)
	require.NotEmpty(t, list)
	list[0] = "mutated"

	assert.Equal(t, "البقرة", juz.Surahs(2)[0])
}

/*
TestValid covers the boundary arithmetic.
*/
func TestValid(t *testing.T) {
	assert.True(t, juz.Valid(1))
	assert.True(t, juz.Valid(30))
	assert.False(t, juz.Valid(0))
	assert.False(t, juz.Valid(31))
}
