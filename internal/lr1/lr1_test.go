package lr1

import (
	"strings"
	"testing"

	"github.com/dekarrin/cfgrec/internal/cfgerrors"
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

// the textbook "E -> E + T | T ; T -> T * F | F ; F -> ( E ) | id" family,
// reduced to single-character terminals since the loader's terminal
// alphabet is one character per symbol.
const exprGrammarSrc = "E`e\n" +
	"T`F\n" +
	"+`*`(`)`i\n" +
	"E -> E`+`T | T\n" +
	"T -> T`*`F | F\n" +
	"F -> (`E`) | i\n"

func Test_LR1_expressionGrammar(t *testing.T) {
	g := mustLoad(t, exprGrammarSrc)
	r, err := New(g, 1)
	require.NoError(t, err)

	accept := []string{"i", "i+i", "i*i", "i+i*i", "(i+i)*i", "((i))"}
	for _, word := range accept {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.True(t, ok, "expected %q to be accepted", word)
	}

	reject := []string{"", "+", "i+", "(i", "i)", "i+*i", "(i+i"}
	for _, word := range reject {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.False(t, ok, "expected %q to be rejected", word)
	}
}

func Test_LR1_rejectsAmbiguousGrammar(t *testing.T) {
	// the classic dangling-else-shaped ambiguity collapsed to single
	// characters: S -> a S | a S b | e, which is not LR(1): on seeing
	// "b" after a completed inner S the parser cannot decide whether to
	// shift that b or reduce S -> a S.
	src := "S`e\n\na`b\nS -> a`S | a`S`b | e\n"
	g := mustLoad(t, src)

	_, err := New(g, 1)
	require.Error(t, err)
	assert.True(t, cfgerrors.IsConflict(err))
}

func Test_LR1_balancedParens(t *testing.T) {
	src := "S`e\n\n(`)\nS -> (`S`)`S | e\n"
	g := mustLoad(t, src)
	r, err := New(g, 1)
	require.NoError(t, err)

	accept := []string{"", "()", "()()", "(())", "(()())"}
	for _, word := range accept {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.True(t, ok, "expected %q to be accepted", word)
	}

	reject := []string{"(", ")", ")(", "(()"}
	for _, word := range reject {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.False(t, ok, "expected %q to be rejected", word)
	}
}

func Test_LR1_anbn(t *testing.T) {
	src := "S`e\n\na`b\nS -> a`S`b | e\n"
	g := mustLoad(t, src)
	r, err := New(g, 1)
	require.NoError(t, err)

	for _, word := range []string{"", "ab", "aabb", "aaabbb"} {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.True(t, ok, "expected %q to be accepted", word)
	}

	for _, word := range []string{"a", "b", "ba", "aab", "abb"} {
		ok, err := r.Parse(word)
		require.NoError(t, err)
		assert.False(t, ok, "expected %q to be rejected", word)
	}
}

func Test_New_rejectsEmptyGrammar(t *testing.T) {
	_, err := New(grammar.New(), 1)
	require.Error(t, err)
}

func Test_New_refusesLookaheadOtherThanOne(t *testing.T) {
	g := mustLoad(t, exprGrammarSrc)
	for _, k := range []int{0, 2, 3} {
		_, err := New(g, k)
		require.Error(t, err)
		assert.True(t, cfgerrors.IsNotImplemented(err), "k=%d should report not implemented", k)
	}
}

func Test_Table_String_rendersNonEmpty(t *testing.T) {
	g := mustLoad(t, exprGrammarSrc)
	r, err := New(g, 1)
	require.NoError(t, err)

	s := r.Table().String()
	assert.NotEmpty(t, s)
	assert.Contains(t, s, "acc")
}
