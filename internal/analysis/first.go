package analysis

import "github.com/dekarrin/cfgrec/internal/grammar"

// FirstSets maps every symbol id (terminal or nonterminal) to its FIRST set:
// FIRST(terminal) is just that terminal; FIRST(A) is the union, over every
// production of A, of the FIRST sets of that production's symbols up to and
// including its first non-nullable one. The sets hold terminal ids only: ε
// is never added to them, not even for a nullable nonterminal. Whether a
// symbol derives ε is answered by the Nullable set the FirstSets was built
// from, and OfSequence adds ε for a sequence whose symbols are all nullable.
type FirstSets struct {
	bySymbol map[int]SymbolSet
	nullable Nullable
}

// ComputeFirst builds the FIRST sets for every symbol in g, given its
// already-computed nullable set.
func ComputeFirst(g *grammar.Grammar, nullable Nullable) *FirstSets {
	f := &FirstSets{bySymbol: map[int]SymbolSet{}, nullable: nullable}

	for _, t := range g.Terminals() {
		f.bySymbol[t] = SymbolSet{t: true}
	}
	for _, nt := range g.AllNonTerminals() {
		f.bySymbol[nt] = NewSymbolSet()
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.AllNonTerminals() {
			for _, rhs := range g.Rules(nt) {
				if rhs.IsEpsilon() {
					continue
				}
				for _, sym := range rhs {
					if f.bySymbol[nt].Union(f.bySymbol[sym]) {
						changed = true
					}
					if !f.derivesEpsilon(sym) {
						break
					}
				}
			}
		}
	}

	return f
}

func (f *FirstSets) derivesEpsilon(sym int) bool {
	return sym > 0 && f.nullable.Has(sym)
}

// Of returns the FIRST set of a single symbol (terminal or nonterminal).
func (f *FirstSets) Of(sym int) SymbolSet {
	return f.bySymbol[sym]
}

// OfSequence returns FIRST of a whole symbol sequence alpha: the union of
// FIRST of each symbol up to and including the first non-nullable one, plus
// ε itself (represented by grammar.Epsilon) if every symbol in alpha is
// nullable.
func (f *FirstSets) OfSequence(alpha []int) SymbolSet {
	out := NewSymbolSet()
	allNullable := true

	for _, sym := range alpha {
		out.Union(f.bySymbol[sym])
		if !f.derivesEpsilon(sym) {
			allNullable = false
			break
		}
	}

	if allNullable {
		out.Add(grammar.Epsilon)
	}

	return out
}
