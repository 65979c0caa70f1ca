package grammar

import (
	"io"
	"strings"
)

// escapedName returns how symbol id's name should be written literally in
// the grammar file format: plain for an ordinary single character, and the
// three escape forms from spec.md §4.2/§6 for pipe, backslash, and
// back-tick.
func (g *Grammar) escapedName(id int) string {
	name, _ := g.NameOf(id)
	switch name {
	case "|":
		return `\|`
	case `\`:
		return `\\`
	case "`":
		return `\` + "`"
	default:
		return name
	}
}

// Print renders g back to the four-section textual format it was loaded
// from. Naming order and whitespace are normalized but the recognized
// language is preserved; see spec.md §4.2 and the round-trip scenarios in
// §8.
func (g *Grammar) Print(w io.Writer) error {
	var sb strings.Builder

	startName, _ := g.NameOf(Start)
	epsName, _ := g.NameOf(Epsilon)
	sb.WriteString(startName)
	sb.WriteString(delim)
	sb.WriteString(epsName)
	sb.WriteByte('\n')

	extra := g.NonTerminals()[1:]
	names := make([]string, len(extra))
	for i, nt := range extra {
		names[i], _ = g.NameOf(nt)
	}
	sb.WriteString(strings.Join(names, delim))
	sb.WriteByte('\n')

	terms := g.Terminals()
	termNames := make([]string, len(terms))
	for i, t := range terms {
		termNames[i] = g.escapedName(t)
	}
	sb.WriteString(strings.Join(termNames, delim))
	sb.WriteByte('\n')

	for _, nt := range g.NonTerminals() {
		name, _ := g.NameOf(nt)
		sb.WriteString(name)
		sb.WriteString(arrow)
		sb.WriteString(g.printRules(nt))
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// printRules renders the " | "-joined right-hand sides of nonterminal nt,
// inserting a back-tick only between two nonterminals, between a
// nonterminal and a following terminal, or around an escaped literal
// back-tick — never between two plain single-character terminals.
func (g *Grammar) printRules(nt int) string {
	rhsStrings := make([]string, 0, len(g.rules[nt]))
	for _, rhs := range g.rules[nt] {
		if rhs.IsEpsilon() {
			name, _ := g.NameOf(Epsilon)
			rhsStrings = append(rhsStrings, name)
			continue
		}
		rhsStrings = append(rhsStrings, g.printRHS(rhs))
	}
	return strings.Join(rhsStrings, rulesDelim)
}

func (g *Grammar) printRHS(rhs Production) string {
	var sb strings.Builder

	prevNonTerm := false
	prevBacktick := false
	for i, sym := range rhs {
		name, _ := g.NameOf(sym)
		isEscaped := name == "|" || name == `\` || name == "`"
		isNonTerm := g.IsNonTerminal(sym)

		if i > 0 && (isNonTerm || prevNonTerm || isEscaped || prevBacktick) {
			sb.WriteString(delim)
		}

		sb.WriteString(g.escapedName(sym))

		prevNonTerm = isNonTerm
		prevBacktick = name == "`"
	}

	return sb.String()
}
