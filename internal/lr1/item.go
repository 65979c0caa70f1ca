package lr1

import (
	"math"

	"github.com/dekarrin/cfgrec/internal/grammar"
)

// endOfInput is the lookahead symbol representing the end of the input
// word ("$" in the dragon-book notation). It is chosen far outside the
// range of symbol ids a loaded grammar can ever assign so it can never
// collide with a real terminal.
const endOfInput = math.MinInt32

// item is one LR(1) item: the dot position within the alt-th production of
// lhs, plus a single lookahead terminal. Productions are referenced by
// (lhs, alt) index into grammar.Grammar.Rules rather than by value, since a
// Production is a slice and so not usable as a map key; this is the
// concrete counterpart of the teacher's string-keyed item cache.
type item struct {
	lhs int
	alt int
	dot int
	la  int
}

func (it item) production(g *grammar.Grammar) grammar.Production {
	return g.Rules(it.lhs)[it.alt]
}

func (it item) complete(g *grammar.Grammar) bool {
	return it.dot >= it.production(g).Len()
}

// nextSymbol returns the symbol immediately after the dot. Only valid when
// !it.complete(g).
func (it item) nextSymbol(g *grammar.Grammar) int {
	return it.production(g)[it.dot]
}

func (it item) advanced() item {
	return item{lhs: it.lhs, alt: it.alt, dot: it.dot + 1, la: it.la}
}

// itemSet is an unordered set of items, as closure and goto both produce.
type itemSet map[item]bool

func newItemSet(items ...item) itemSet {
	s := make(itemSet, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}

func (s itemSet) add(it item) bool {
	if s[it] {
		return false
	}
	s[it] = true
	return true
}
