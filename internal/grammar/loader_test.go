package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nullableGrammarSrc = "S`e\n" +
	"A`B`C\n" +
	"a`b`c\n" +
	"S -> A`B`C\n" +
	"A -> a | e\n" +
	"B -> b | e\n" +
	"C -> c | e\n"

func Test_Load_basic(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g, err := Load(strings.NewReader(nullableGrammarSrc))
	require.NoError(err)
	require.NotNil(g)

	sID, ok := g.IDOf("S")
	require.True(ok)
	assert.Equal(Start, sID)

	eID, ok := g.IDOf("e")
	require.True(ok)
	assert.Equal(Epsilon, eID)

	aID, ok := g.IDOf("A")
	require.True(ok)
	assert.Equal(3, aID)

	bID, ok := g.IDOf("B")
	require.True(ok)
	assert.Equal(4, bID)

	cID, ok := g.IDOf("C")
	require.True(ok)
	assert.Equal(5, cID)

	aTermID, ok := g.IDOf("a")
	require.True(ok)
	assert.Equal(-1, aTermID)

	auxID, ok := g.IDOf(AuxiliaryName)
	require.True(ok)
	assert.Equal(Auxiliary, auxID)

	assert.ElementsMatch([]int{-1, -2, -3}, g.Terminals())
	assert.Equal([]int{Start, 3, 4, 5}, g.NonTerminals())

	auxRules := g.Rules(Auxiliary)
	require.Len(auxRules, 1)
	assert.Equal(Production{Start}, auxRules[0])

	sRules := g.Rules(Start)
	require.Len(sRules, 1)
	assert.Equal(Production{aID, bID, cID}, sRules[0])

	aRules := g.Rules(aID)
	require.Len(aRules, 2)
	assert.Equal(Production{aTermID}, aRules[0])
	assert.True(aRules[1].IsEpsilon())
}

func Test_Load_singleNonTerminal(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	src := "S`e\n\na\nS -> a\n"
	g, err := Load(strings.NewReader(src))
	require.NoError(err)
	assert.Equal([]int{Start}, g.NonTerminals())
}

func Test_Load_escapes(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	// terminals: a, pipe, backslash, back-tick
	src := "S`e\n\na`\\|`\\\\`\\`\n" +
		"S -> a | \\| | \\\\ | `\\`\n"
	g, err := Load(strings.NewReader(src))
	require.NoError(err)

	pipeID, ok := g.IDOf("|")
	require.True(ok)
	backslashID, ok := g.IDOf(`\`)
	require.True(ok)
	backtickID, ok := g.IDOf("`")
	require.True(ok)

	rules := g.Rules(Start)
	require.Len(rules, 4)
	assert.Equal(Production{pipeID}, rules[1])
	assert.Equal(Production{backslashID}, rules[2])
	assert.Equal(Production{backtickID}, rules[3])
}

func Test_Load_adjacentTerminalsNoSeparator(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	src := "S`e\n\na`b`c\nS -> abc\n"
	g, err := Load(strings.NewReader(src))
	require.NoError(err)

	aID, _ := g.IDOf("a")
	bID, _ := g.IDOf("b")
	cID, _ := g.IDOf("c")

	rules := g.Rules(Start)
	require.Len(rules, 1)
	assert.Equal(Production{aID, bID, cID}, rules[0])
}

func Test_Load_nonterminalMustBeDelimited(t *testing.T) {
	require := require.New(t)

	src := "S`e\n\na\nS -> aS\n"
	_, err := Load(strings.NewReader(src))
	require.Error(err)
}

func Test_Load_missingRuleForDeclaredNonTerminal(t *testing.T) {
	require := require.New(t)

	src := "S`e\nA\na\nS -> a\n"
	_, err := Load(strings.NewReader(src))
	require.Error(err)
}

func Test_Grammar_Validate_emptyGrammar(t *testing.T) {
	require := require.New(t)

	g := New()
	require.Error(g.Validate())
}
