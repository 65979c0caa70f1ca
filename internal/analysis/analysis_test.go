package analysis

import (
	"strings"
	"testing"

	"github.com/dekarrin/cfgrec/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nullableABCSrc = "S`e\n" +
	"A`B`C\n" +
	"a`b`c\n" +
	"S -> A`B`C\n" +
	"A -> a | e\n" +
	"B -> b | e\n" +
	"C -> c | e\n"

func mustLoad(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Load(strings.NewReader(src))
	require.NoError(t, err)
	return g
}

func Test_ComputeNullable(t *testing.T) {
	assert := assert.New(t)
	g := mustLoad(t, nullableABCSrc)

	n := ComputeNullable(g)

	aID, _ := g.IDOf("A")
	bID, _ := g.IDOf("B")
	cID, _ := g.IDOf("C")

	assert.True(n.Has(aID))
	assert.True(n.Has(bID))
	assert.True(n.Has(cID))
	assert.True(n.Has(grammar.Start), "S is nullable since A, B, and C all are")
	assert.True(n.Has(grammar.Auxiliary))
}

func Test_ComputeNullable_noEpsilons(t *testing.T) {
	assert := assert.New(t)
	src := "S`e\n\na`b\nS -> ab\n"
	g := mustLoad(t, src)

	n := ComputeNullable(g)

	assert.False(n.Has(grammar.Start))
}

func Test_ComputeFirst(t *testing.T) {
	assert := assert.New(t)
	g := mustLoad(t, nullableABCSrc)

	n := ComputeNullable(g)
	f := ComputeFirst(g, n)

	aID, _ := g.IDOf("A")
	aTermID, _ := g.IDOf("a")
	bTermID, _ := g.IDOf("b")
	cTermID, _ := g.IDOf("c")

	assert.True(f.Of(aID).Has(aTermID))

	sFirst := f.Of(grammar.Start)
	assert.True(sFirst.Has(aTermID))
	assert.True(sFirst.Has(bTermID))
	assert.True(sFirst.Has(cTermID))
}

func Test_FirstSets_OfSequence_allNullable(t *testing.T) {
	assert := assert.New(t)
	g := mustLoad(t, nullableABCSrc)

	n := ComputeNullable(g)
	f := ComputeFirst(g, n)

	aID, _ := g.IDOf("A")
	bID, _ := g.IDOf("B")

	seq := f.OfSequence([]int{aID, bID})
	assert.True(seq.Has(grammar.Epsilon), "A and B are both nullable so the sequence is too")
}

func Test_FirstSets_OfSequence_stopsAtFirstNonNullable(t *testing.T) {
	assert := assert.New(t)
	src := "S`e\n\na`b\nS -> ab\n"
	g := mustLoad(t, src)

	n := ComputeNullable(g)
	f := ComputeFirst(g, n)

	aTermID, _ := g.IDOf("a")
	bTermID, _ := g.IDOf("b")

	seq := f.OfSequence([]int{aTermID, bTermID})
	assert.True(seq.Has(aTermID))
	assert.False(seq.Has(bTermID))
	assert.False(seq.Has(grammar.Epsilon))
}
