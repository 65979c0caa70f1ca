package lr1

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/cfgrec/internal/analysis"
	"github.com/dekarrin/cfgrec/internal/cfgerrors"
	"github.com/dekarrin/cfgrec/internal/grammar"
)

type actionKind int

const (
	actionError actionKind = iota
	actionShift
	actionReduce
	actionAccept
)

// action is one ACTION-table entry, per Algorithm 4.56 step 2.
type action struct {
	kind  actionKind
	state int // for actionShift
	lhs   int // for actionReduce
	alt   int // for actionReduce
}

func (a action) equal(o action) bool {
	return a.kind == o.kind && a.state == o.state && a.lhs == o.lhs && a.alt == o.alt
}

// Table is a constructed canonical LR(1) parse table: a numbered collection
// of states plus ACTION and GOTO, as built by Algorithm 4.56, "Construction
// of canonical-LR parsing tables."
type Table struct {
	g        *grammar.Grammar
	states   []itemSet
	action   []map[int]action
	goTo     []map[int]int
	initial  int
}

// Construct builds the canonical LR(1) table for g, or returns a
// *cfgerrors.ConflictError describing the first shift/reduce or
// reduce/reduce conflict found, meaning g is not LR(1).
func Construct(g *grammar.Grammar) (*Table, error) {
	nullable := analysis.ComputeNullable(g)
	first := analysis.ComputeFirst(g, nullable)

	startItem := item{lhs: grammar.Auxiliary, alt: 0, dot: 0, la: endOfInput}
	start := closure(g, first, newItemSet(startItem))

	t := &Table{g: g, initial: 0}
	keys := map[string]int{start.sortedKey(g): 0}
	t.states = append(t.states, start)

	for i := 0; i < len(t.states); i++ {
		for _, x := range symbolsAfterDot(g, t.states[i]) {
			next := gotoSet(g, first, t.states[i], x)
			if len(next) == 0 {
				continue
			}
			key := next.sortedKey(g)
			j, ok := keys[key]
			if !ok {
				j = len(t.states)
				t.states = append(t.states, next)
				keys[key] = j
			}
			t.recordTransition(i, x, j)
		}
	}

	if err := t.buildActionsAndGotos(); err != nil {
		return nil, err
	}

	return t, nil
}

// symbolsAfterDot returns, in a deterministic order, every distinct symbol
// that appears immediately after the dot in some item of items.
func symbolsAfterDot(g *grammar.Grammar, items itemSet) []int {
	seen := map[int]bool{}
	var out []int
	for it := range items {
		if it.complete(g) {
			continue
		}
		sym := it.nextSymbol(g)
		if !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
	}
	sort.Ints(out)
	return out
}

func (t *Table) recordTransition(from, symbol, to int) {
	for len(t.goTo) <= from {
		t.goTo = append(t.goTo, nil)
	}
	if t.goTo[from] == nil {
		t.goTo[from] = map[int]int{}
	}
	t.goTo[from][symbol] = to
}

// buildActionsAndGotos derives ACTION and GOTO from the numbered canonical
// collection and its transitions, per Algorithm 4.56 step 2, detecting
// shift/reduce and reduce/reduce conflicts as it goes.
func (t *Table) buildActionsAndGotos() error {
	t.action = make([]map[int]action, len(t.states))
	goTo := make([]map[int]int, len(t.states))

	for i, items := range t.states {
		t.action[i] = map[int]action{}
		goTo[i] = map[int]int{}

		trans := map[int]int{}
		if i < len(t.goTo) && t.goTo[i] != nil {
			trans = t.goTo[i]
		}
		for sym, j := range trans {
			if t.g.IsNonTerminal(sym) {
				goTo[i][sym] = j
			}
		}

		for it := range items {
			if !it.complete(t.g) {
				sym := it.nextSymbol(t.g)
				if t.g.IsTerminal(sym) {
					if j, ok := trans[sym]; ok {
						if err := t.setAction(i, sym, action{kind: actionShift, state: j}); err != nil {
							return err
						}
					}
				}
				continue
			}

			if it.lhs == grammar.Auxiliary && it.la == endOfInput {
				if err := t.setAction(i, endOfInput, action{kind: actionAccept}); err != nil {
					return err
				}
				continue
			}

			if err := t.setAction(i, it.la, action{kind: actionReduce, lhs: it.lhs, alt: it.alt}); err != nil {
				return err
			}
		}
	}

	t.goTo = goTo
	return nil
}

// setAction installs newAct as state i's action on sym, unless an
// incompatible action is already there, in which case it reports the
// conflict. Two identical entries (e.g. the same reduction reached via two
// distinct items) are not a conflict.
func (t *Table) setAction(state, sym int, newAct action) error {
	existing, ok := t.action[state][sym]
	if !ok {
		t.action[state][sym] = newAct
		return nil
	}
	if existing.equal(newAct) {
		return nil
	}
	return t.conflictError(existing, newAct, sym)
}

func (t *Table) conflictError(a, b action, sym int) error {
	symName := t.terminalName(sym)

	describe := func(act action) string {
		switch act.kind {
		case actionShift:
			return "shift"
		case actionReduce:
			lhsName, _ := t.g.NameOf(act.lhs)
			return "reduce " + lhsName + " -> " + productionString(t.g, act.lhs, act.alt)
		case actionAccept:
			return "accept"
		default:
			return "error"
		}
	}

	switch {
	case a.kind == actionReduce && b.kind == actionShift, a.kind == actionShift && b.kind == actionReduce:
		reduceAct := a
		if a.kind == actionShift {
			reduceAct = b
		}
		return cfgerrors.NewConflictError("shift/reduce conflict on %q (shift or %s)", symName, describe(reduceAct))

	case a.kind == actionReduce && b.kind == actionReduce:
		return cfgerrors.NewConflictError("reduce/reduce conflict on %q (%s or %s)", symName, describe(a), describe(b))

	case a.kind == actionAccept || b.kind == actionAccept:
		other := b
		if b.kind == actionAccept {
			other = a
		}
		return cfgerrors.NewConflictError("accept/%s conflict on %q", describe(other), symName)

	default:
		return cfgerrors.NewConflictError("conflict on %q (%s or %s)", symName, describe(a), describe(b))
	}
}

func (t *Table) terminalName(sym int) string {
	if sym == endOfInput {
		return "$"
	}
	name, _ := t.g.NameOf(sym)
	return name
}

func productionString(g *grammar.Grammar, lhs, alt int) string {
	prod := g.Rules(lhs)[alt]
	if prod.IsEpsilon() {
		name, _ := g.NameOf(grammar.Epsilon)
		return name
	}
	s := ""
	for i, sym := range prod {
		if i > 0 {
			s += " "
		}
		name, _ := g.NameOf(sym)
		s += name
	}
	return s
}

// sortedKey renders items as a canonical, order-independent string so two
// equal item sets produce the same key regardless of Go's randomized map
// iteration order; used to dedup states during canonical-collection
// construction.
func (s itemSet) sortedKey(g *grammar.Grammar) string {
	entries := make([]string, 0, len(s))
	for it := range s {
		entries = append(entries, itemKey(it))
	}
	sort.Strings(entries)
	return strings.Join(entries, "|")
}

func itemKey(it item) string {
	return fmt.Sprintf("%d,%d,%d,%d", it.lhs, it.alt, it.dot, it.la)
}
