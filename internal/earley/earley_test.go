package earley

import (
	"strings"
	"testing"

	"github.com/dekarrin/cfgrec/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Load(strings.NewReader(src))
	require.NoError(t, err)
	return g
}

func mustNew(t *testing.T, src string) *Recognizer {
	t.Helper()
	r, err := New(mustLoad(t, src))
	require.NoError(t, err)
	return r
}

func Test_Parse_nullableABC(t *testing.T) {
	src := "S`e\n" +
		"A`B`C\n" +
		"a`b`c\n" +
		"S -> A`B`C\n" +
		"A -> a | e\n" +
		"B -> b | e\n" +
		"C -> c | e\n"
	r := mustNew(t, src)

	for _, word := range []string{"", "a", "b", "c", "abc", "ac", "bc", "ab"} {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.True(t, ok, "expected %q to be accepted", word)
	}

	for _, word := range []string{"d", "ba", "cab", "aa"} {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.False(t, ok, "expected %q to be rejected", word)
	}
}

// S -> a S b | e: the classic ambiguity-free a^n b^n language.
func Test_Parse_anbn(t *testing.T) {
	src := "S`e\n\na`b\nS -> a`S`b | e\n"
	r := mustNew(t, src)

	accept := []string{"", "ab", "aabb", "aaabbb"}
	for _, word := range accept {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.True(t, ok, "expected %q to be accepted", word)
	}

	reject := []string{"a", "b", "ba", "aab", "abb", "aaabb"}
	for _, word := range reject {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.False(t, ok, "expected %q to be rejected", word)
	}
}

// ambiguous palindrome grammar over {a,b}: P -> a P a | b P b | a | b | e.
func Test_Parse_palindromes(t *testing.T) {
	src := "P`e\n\na`b\nP -> a`P`a | b`P`b | a | b | e\n"
	r := mustNew(t, src)

	accept := []string{"", "a", "b", "aa", "bb", "aba", "abba", "abaaba"}
	for _, word := range accept {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.True(t, ok, "expected palindrome %q to be accepted", word)
	}

	reject := []string{"ab", "ba", "abb", "aab"}
	for _, word := range reject {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.False(t, ok, "expected non-palindrome %q to be rejected", word)
	}
}

// balanced parentheses: S -> ( S ) S | e.
func Test_Parse_balancedParens(t *testing.T) {
	src := "S`e\n\n(`)\nS -> (`S`)`S | e\n"
	r := mustNew(t, src)

	accept := []string{"", "()", "()()", "(())", "(()())", "((()))"}
	for _, word := range accept {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.True(t, ok, "expected %q to be accepted", word)
	}

	reject := []string{"(", ")", ")(", "(()", "())("}
	for _, word := range reject {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.False(t, ok, "expected %q to be rejected", word)
	}
}

// three matched bracket families sharing one recursive structure:
// S -> ( S ) S | [ S ] S | { S } S | e.
func Test_Parse_threeBracketFamilies(t *testing.T) {
	src := "S`e\n\n(`)`[`]`{`}\nS -> (`S`)`S | [`S`]`S | {`S`}`S | e\n"
	r := mustNew(t, src)

	accept := []string{"", "()", "[]", "{}", "([])", "{[()]}", "()[]{}", "([]{})"}
	for _, word := range accept {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.True(t, ok, "expected %q to be accepted", word)
	}

	reject := []string{"(]", "([)]", "{[(]}", "((]"}
	for _, word := range reject {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.False(t, ok, "expected %q to be rejected", word)
	}
}

// escaped terminals: the word is built from the literal pipe, backslash,
// and back-tick characters, exercising the loader's escape handling through
// to recognition.
func Test_Parse_escapedTerminals(t *testing.T) {
	src := "S`e\n\na`\\|`\\\\`\\`\n" +
		"S -> a | \\| | \\\\ | `\\`\n"
	r := mustNew(t, src)

	for _, word := range []string{"a", "|", `\`, "`"} {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.True(t, ok, "expected %q to be accepted", word)
	}

	ok, err := r.Parse("a|")
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_New_rejectsEmptyGrammar(t *testing.T) {
	_, err := New(grammar.New())
	require.Error(t, err)
}
