// Package earley implements the Earley chart recognizer from spec.md §4.5:
// it accepts any context-free grammar, including ambiguous or
// ε-producing ones, and answers only membership (no parse tree is built,
// per the Non-goals).
package earley

import (
	"github.com/dekarrin/cfgrec/internal/analysis"
	"github.com/dekarrin/cfgrec/internal/cfgerrors"
	"github.com/dekarrin/cfgrec/internal/grammar"
)

// item is one Earley situation: the dot position within a production of
// lhs, and the chart column in which that production was predicted. This
// mirrors the Situation the reference recognizer tracked, minus its
// pointer-sharing optimizations — equality here is by value, which is what
// lets a column's seen set dedup on it directly. alt is the index of the
// production within g.Rules(lhs), not the production itself: Production is
// a slice, and a slice field would make item incomparable and unusable as
// a map key, same trap internal/lr1/item.go avoids.
type item struct {
	lhs    int
	alt    int
	dot    int
	origin int
}

func (it item) production(g *grammar.Grammar) grammar.Production {
	return g.Rules(it.lhs)[it.alt]
}

func (it item) done(g *grammar.Grammar) bool {
	return it.dot >= it.production(g).Len()
}

// nextSymbol returns the symbol immediately after the dot. Only valid when
// !it.done(g).
func (it item) nextSymbol(g *grammar.Grammar) int {
	return it.production(g)[it.dot]
}

func (it item) advanced() item {
	return item{lhs: it.lhs, alt: it.alt, dot: it.dot + 1, origin: it.origin}
}

// column is one position of the chart: the set of items known to hold at
// that position, plus an index from "nonterminal currently after the dot"
// to the items waiting on it, so Complete doesn't have to rescan the whole
// column. This index is the Go counterpart of the reference parser's
// per-column SetD map.
type column struct {
	items     []item
	seen      map[item]bool
	waitingOn map[int][]item
	predicted map[int]bool
}

func newColumn() *column {
	return &column{
		seen:      map[item]bool{},
		waitingOn: map[int][]item{},
		predicted: map[int]bool{},
	}
}

func (c *column) add(it item) {
	if c.seen[it] {
		return
	}
	c.seen[it] = true
	c.items = append(c.items, it)
}

// Recognizer answers context-free grammar membership queries for a single
// loaded grammar, via the Earley algorithm.
type Recognizer struct {
	g        *grammar.Grammar
	nullable analysis.Nullable
}

// New builds a Recognizer for g, computing the nullable-symbol set it needs
// once up front.
func New(g *grammar.Grammar) (*Recognizer, error) {
	if g.Empty() {
		return nil, cfgerrors.ErrPrecondition
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Recognizer{g: g, nullable: analysis.ComputeNullable(g)}, nil
}

// Parse reports whether word is a member of the language the recognizer's
// grammar generates. word is read as a sequence of one-character
// terminals; a character the grammar never declared simply makes the word
// unrecognized, same as any other mismatch.
func (r *Recognizer) Parse(word string) (bool, error) {
	if r == nil || r.g == nil {
		return false, cfgerrors.ErrPrecondition
	}

	if word == "" {
		return r.nullable.Has(grammar.Start), nil
	}

	symbols := make([]int, len(word))
	for i, ch := range []byte(word) {
		id, ok := r.g.IDOf(string(ch))
		if !ok {
			return false, nil
		}
		symbols[i] = id
	}

	n := len(symbols)
	cols := make([]*column, n+1)
	for i := range cols {
		cols[i] = newColumn()
	}

	start := item{lhs: grammar.Auxiliary, alt: 0, dot: 0, origin: 0}
	cols[0].add(start)

	for i := 0; i <= n; i++ {
		col := cols[i]
		for k := 0; k < len(col.items); k++ {
			it := col.items[k]

			switch {
			case it.done(r.g):
				r.complete(it, cols, i)

			case r.g.IsNonTerminal(it.nextSymbol(r.g)):
				r.predict(it, cols, i)

			case i < n && it.nextSymbol(r.g) == symbols[i]:
				cols[i+1].add(it.advanced())
			}
		}
	}

	for _, it := range cols[n].items {
		if it.lhs == grammar.Auxiliary && it.done(r.g) && it.origin == 0 {
			return true, nil
		}
	}
	return false, nil
}

// complete advances every item in it.origin's column that was waiting on
// it.lhs, recording the results in the current column i.
func (r *Recognizer) complete(it item, cols []*column, i int) {
	origin := cols[it.origin]
	for _, waiting := range origin.waitingOn[it.lhs] {
		cols[i].add(waiting.advanced())
	}
}

// predict handles an item whose dot sits before a nonterminal: it
// registers the item as waiting on that nonterminal in the current column,
// expands the nonterminal's non-ε productions into new column-i items (the
// first time the nonterminal is predicted in this column), and — since
// ε-productions are never expanded into items directly — bypasses the dot
// past the nonterminal immediately when it is nullable.
func (r *Recognizer) predict(it item, cols []*column, i int) {
	sym := it.nextSymbol(r.g)
	col := cols[i]

	col.waitingOn[sym] = append(col.waitingOn[sym], it)

	if r.nullable.Has(sym) {
		col.add(it.advanced())
	}

	if col.predicted[sym] {
		return
	}
	col.predicted[sym] = true

	for altIdx, alt := range r.g.Rules(sym) {
		if alt.IsEpsilon() {
			continue
		}
		col.add(item{lhs: sym, alt: altIdx, dot: 0, origin: i})
	}
}
