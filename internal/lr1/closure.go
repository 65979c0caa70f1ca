package lr1

import (
	"github.com/dekarrin/cfgrec/internal/analysis"
	"github.com/dekarrin/cfgrec/internal/grammar"
)

// closure computes the LR(1) closure of items, per Algorithm 4.56's closure
// step: repeatedly, for every item [A -> α.Bβ, a] with B a nonterminal, add
// [B -> .γ, b] for every production B -> γ and every b in FIRST(βa), until
// nothing changes.
func closure(g *grammar.Grammar, first *analysis.FirstSets, items itemSet) itemSet {
	out := make(itemSet, len(items))
	for it := range items {
		out[it] = true
	}

	changed := true
	for changed {
		changed = false
		for it := range out {
			if it.complete(g) {
				continue
			}
			b := it.nextSymbol(g)
			if !g.IsNonTerminal(b) {
				continue
			}

			rest := it.production(g)[it.dot+1:]
			lookaheads := lookaheadsFor(first, rest, it.la)

			for altIdx, alt := range g.Rules(b) {
				_ = alt
				for la := range lookaheads {
					newItem := item{lhs: b, alt: altIdx, dot: 0, la: la}
					if out.add(newItem) {
						changed = true
					}
				}
			}
		}
	}

	return out
}

// lookaheadsFor computes FIRST(rest + [la]): FIRST(rest) if rest cannot
// derive ε, or FIRST(rest) (minus ε) union {la} if it can (including the
// case where rest is itself empty).
func lookaheadsFor(first *analysis.FirstSets, rest grammar.Production, la int) analysis.SymbolSet {
	out := first.OfSequence(rest)
	if out.Has(grammar.Epsilon) {
		delete(out, grammar.Epsilon)
		out.Add(la)
	}
	return out
}

// gotoSet computes GOTO(items, x): advance every item whose dot precedes x,
// then close the result.
func gotoSet(g *grammar.Grammar, first *analysis.FirstSets, items itemSet, x int) itemSet {
	moved := itemSet{}
	for it := range items {
		if it.complete(g) {
			continue
		}
		if it.nextSymbol(g) == x {
			moved.add(it.advanced())
		}
	}
	if len(moved) == 0 {
		return nil
	}
	return closure(g, first, moved)
}
