// Package analysis computes the grammar properties the two recognizers
// build on top of the loaded grammar.Grammar: the nullable-symbol set
// (spec.md §4.3) used by the Earley predictor's epsilon bypass, and the
// FIRST sets (spec.md §4.4) used to build LR(1) lookaheads.
package analysis

import "github.com/dekarrin/cfgrec/internal/grammar"

// Nullable is the set of nonterminal ids that can derive the empty string.
type Nullable map[int]bool

// ComputeNullable returns the nullable set for g by fixpoint iteration: a
// nonterminal is nullable if it has an ε-production, or a production all of
// whose symbols are themselves nullable. Terminals are never nullable.
func ComputeNullable(g *grammar.Grammar) Nullable {
	n := Nullable{}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.AllNonTerminals() {
			if n[nt] {
				continue
			}
			for _, rhs := range g.Rules(nt) {
				if rhs.IsEpsilon() || allNullable(rhs, n) {
					n[nt] = true
					changed = true
					break
				}
			}
		}
	}

	return n
}

func allNullable(rhs grammar.Production, n Nullable) bool {
	for _, sym := range rhs {
		if sym < 0 || !n[sym] {
			return false
		}
	}
	return true
}

// Has reports whether sym is known to derive ε. Terminals and unlisted
// nonterminals report false.
func (n Nullable) Has(sym int) bool {
	return n[sym]
}
