package kmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Split(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		delim    string
		expected []string
	}{
		{
			name:     "empty source",
			src:      "",
			delim:    "`",
			expected: []string{""},
		},
		{
			name:     "source shorter than delim",
			src:      "a",
			delim:    "abc",
			expected: []string{"a"},
		},
		{
			name:     "no delim present",
			src:      "abcdef",
			delim:    "`",
			expected: []string{"abcdef"},
		},
		{
			name:     "single delim",
			src:      "S`e",
			delim:    "`",
			expected: []string{"S", "e"},
		},
		{
			name:     "multiple fragments",
			src:      "a`b`c`d",
			delim:    "`",
			expected: []string{"a", "b", "c", "d"},
		},
		{
			name:     "consecutive delimiters yield empty fragments",
			src:      "a``b",
			delim:    "`",
			expected: []string{"a", "", "b"},
		},
		{
			name:     "trailing delimiter yields trailing empty fragment",
			src:      "a`b`",
			delim:    "`",
			expected: []string{"a", "b", ""},
		},
		{
			name:     "leading delimiter yields leading empty fragment",
			src:      "`a`b",
			delim:    "`",
			expected: []string{"", "a", "b"},
		},
		{
			name:     "multi-character delimiter",
			src:      "a -> b | c -> d",
			delim:    " | ",
			expected: []string{"a -> b", "c -> d"},
		},
		{
			name:     "only delimiters",
			src:      "```",
			delim:    "`",
			expected: []string{"", "", "", ""},
		},
		{
			name:     "overlapping candidates use leftmost non-overlapping match",
			src:      "aaaa",
			delim:    "aa",
			expected: []string{"", "", ""},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Split(tc.src, tc.delim)

			assert.Equal(tc.expected, actual)
		})
	}
}
