// Package kmp implements the Knuth-Morris-Pratt string matching algorithm
// and a delimiter-split helper built on top of it.
package kmp

// Split splits src on every non-overlapping, leftmost occurrence of delim
// and returns the fragments between the matches, including empty ones. If
// src is shorter than delim, Split returns a single-element slice containing
// src unmodified. Consecutive delimiters produce empty fragments between
// them, and a delimiter at the very end of src produces a trailing empty
// fragment.
func Split(src, delim string) []string {
	if len(src) < len(delim) {
		return []string{src}
	}
	if len(delim) == 0 {
		return []string{src}
	}

	matches := search(src, delim)

	frags := make([]string, 0, len(matches)+1)
	prev := 0
	for _, idx := range matches {
		frags = append(frags, src[prev:idx])
		prev = idx + len(delim)
	}
	frags = append(frags, src[prev:])

	return frags
}

// search returns the starting indexes of every non-overlapping, leftmost
// occurrence of pattern in s, using the Knuth-Morris-Pratt algorithm.
func search(s, pattern string) []int {
	lps := prefixTable(pattern)

	var matches []int
	i, j := 0, 0
	for i < len(s) {
		if s[i] == pattern[j] {
			i++
			j++
		}

		if j == len(pattern) {
			matches = append(matches, i-j)
			j = 0
		} else if i < len(s) && s[i] != pattern[j] {
			if j != 0 {
				j = lps[j-1]
			} else {
				i++
			}
		}
	}

	return matches
}

// prefixTable builds the "longest proper prefix that is also a suffix"
// table used by the KMP search to skip re-comparisons on a mismatch.
func prefixTable(pattern string) []int {
	lps := make([]int, len(pattern))

	length := 0
	i := 1
	for i < len(pattern) {
		if pattern[i] == pattern[length] {
			length++
			lps[i] = length
			i++
		} else if length != 0 {
			length = lps[length-1]
		} else {
			lps[i] = 0
			i++
		}
	}

	return lps
}
