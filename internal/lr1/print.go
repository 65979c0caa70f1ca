package lr1

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// String renders the ACTION/GOTO table exactly as
// ictiobus/parse/clr1.go's canonicalLR1Table.String() does: one row per
// state, one column per terminal (plus "$") for ACTION and one column per
// nonterminal for GOTO, laid out with rosed's table support instead of
// hand-rolled column alignment.
func (t *Table) String() string {
	terms := t.g.Terminals()
	allTerms := make([]int, 0, len(terms)+1)
	allTerms = append(allTerms, terms...)
	allTerms = append(allTerms, endOfInput)

	nonTerms := t.g.NonTerminals()

	headers := []string{"S", "|"}
	for _, term := range allTerms {
		headers = append(headers, "A:"+t.terminalName(term))
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		name, _ := t.g.NameOf(nt)
		headers = append(headers, "G:"+name)
	}

	data := [][]string{headers}

	for i := range t.action {
		row := []string{fmt.Sprintf("%d", i), "|"}

		for _, term := range allTerms {
			cell := ""
			act, ok := t.action[i][term]
			if ok {
				switch act.kind {
				case actionAccept:
					cell = "acc"
				case actionReduce:
					lhsName, _ := t.g.NameOf(act.lhs)
					cell = fmt.Sprintf("r%s -> %s", lhsName, productionString(t.g, act.lhs, act.alt))
				case actionShift:
					cell = fmt.Sprintf("s%d", act.state)
				}
			}
			row = append(row, cell)
		}

		row = append(row, "|")

		for _, nt := range nonTerms {
			cell := ""
			if j, ok := t.goTo[i][nt]; ok {
				cell = fmt.Sprintf("%d", j)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
