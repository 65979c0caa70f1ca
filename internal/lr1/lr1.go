// Package lr1 implements the canonical LR(1) recognizer from spec.md §4.6
// and §4.7: it accepts exactly the LR(1) grammars, refusing any other
// grammar with a *cfgerrors.ConflictError naming the shift/reduce or
// reduce/reduce conflict that proved it isn't one.
package lr1

import (
	"github.com/dekarrin/cfgrec/internal/cfgerrors"
	"github.com/dekarrin/cfgrec/internal/grammar"
)

// Recognizer answers context-free grammar membership queries for a single
// loaded grammar, via a constructed canonical LR(1) table.
type Recognizer struct {
	g     *grammar.Grammar
	table *Table
}

// New builds a Recognizer for g using k symbols of lookahead. Only k == 1
// (canonical LR(1)) is implemented; any other k returns a
// *cfgerrors.NotImplementedError. It returns a *cfgerrors.ConflictError if
// g is not LR(1).
func New(g *grammar.Grammar, k int) (*Recognizer, error) {
	if k != 1 {
		return nil, cfgerrors.NewNotImplemented("LR(%d) construction; only LR(1) (k=1) is supported", k)
	}
	if g.Empty() {
		return nil, cfgerrors.ErrPrecondition
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	table, err := Construct(g)
	if err != nil {
		return nil, err
	}

	return &Recognizer{g: g, table: table}, nil
}

// Table returns the constructed parse table, mainly so a caller can render
// it (Table.String) or hand it to internal/tablecache for persistence.
func (r *Recognizer) Table() *Table {
	return r.table
}

// Parse reports whether word is a member of the language the recognizer's
// grammar generates, by driving the shift-reduce-accept automaton over the
// constructed table. This is Algorithm 4.44, "LR-parsing algorithm," from
// the purple dragon book, simplified to a boolean accept/reject with no
// parse-tree construction, per spec.md's Non-goals.
func (r *Recognizer) Parse(word string) (bool, error) {
	if r == nil || r.g == nil {
		return false, cfgerrors.ErrPrecondition
	}

	symbols := make([]int, len(word))
	for i, ch := range []byte(word) {
		id, ok := r.g.IDOf(string(ch))
		if !ok {
			return false, nil
		}
		symbols[i] = id
	}

	stack := []int{r.table.initial}
	pos := 0

	nextSymbol := func() int {
		if pos < len(symbols) {
			return symbols[pos]
		}
		return endOfInput
	}

	a := nextSymbol()
	for {
		s := stack[len(stack)-1]
		act, ok := r.table.action[s][a]
		if !ok {
			return false, nil
		}

		switch act.kind {
		case actionShift:
			stack = append(stack, act.state)
			pos++
			a = nextSymbol()

		case actionReduce:
			prod := r.g.Rules(act.lhs)[act.alt]
			stack = stack[:len(stack)-prod.Len()]
			t := stack[len(stack)-1]
			j, ok := r.table.goTo[t][act.lhs]
			if !ok {
				return false, nil
			}
			stack = append(stack, j)

		case actionAccept:
			return true, nil

		default:
			return false, nil
		}
	}
}
