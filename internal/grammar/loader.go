package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/cfgrec/internal/kmp"
)

const (
	delim       = "`"
	rulesDelim  = " | "
	arrow       = " -> "
	pipeEscape  = `\|`
	slashEscape = `\\`
	slashOnly   = `\`
)

// Load reads a grammar from the four-section textual encoding described in
// spec.md §4.2 and returns the resulting Grammar, or a syntax error on the
// first violation found.
func Load(r io.Reader) (*Grammar, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, newSyntaxErrorAt("grammar file must have at least a header, nonterminal, and terminal line", "", -1)
	}

	g := New()

	startName, epsName, err := parseFirstLine(lines[0])
	if err != nil {
		return nil, err
	}
	g.addSymbol(Epsilon, epsName)
	g.addSymbol(Start, startName)
	g.nonTermOrder = append(g.nonTermOrder, Start)

	extraNonTerms, err := parseNonTermLine(lines[1])
	if err != nil {
		return nil, err
	}
	nextID := Start + 1
	for _, name := range extraNonTerms {
		if name == "" {
			return nil, newSyntaxErrorAt("empty nonterminal name", lines[1], -1)
		}
		g.addSymbol(nextID, name)
		g.nonTermOrder = append(g.nonTermOrder, nextID)
		nextID++
	}

	terms, err := parseTerminalLine(lines[2])
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, newSyntaxErrorAt("grammar must declare at least one terminal", lines[2], -1)
	}
	nextTermID := -1
	for _, name := range terms {
		g.addSymbol(nextTermID, name)
		g.termOrder = append(g.termOrder, nextTermID)
		nextTermID--
	}

	// the auxiliary start symbol is registered only after all user names
	// have been read, per spec.md §6: collisions with a user-declared
	// "AUXILIARY" nonterminal are never checked.
	g.addSymbol(Auxiliary, AuxiliaryName)
	g.addRule(Auxiliary, Production{Start})

	ruleLines := lines[3:]
	wantRules := len(g.nonTermOrder)
	if len(ruleLines) < wantRules {
		return nil, newSyntaxErrorAt(fmt.Sprintf("expected %d rule lines, found %d", wantRules, len(ruleLines)), "", -1)
	}
	for i, nt := range g.nonTermOrder {
		if err := parseRuleLine(g, nt, ruleLines[i]); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// parseFirstLine splits "<start>`<epsilon>" into its two names.
func parseFirstLine(line string) (start, eps string, err error) {
	parts := kmp.Split(line, delim)
	if len(parts) != 2 {
		return "", "", newSyntaxErrorAt("first line must be \"<start>`<epsilon>\"", line, -1)
	}
	if parts[0] == "" {
		return "", "", newSyntaxErrorAt("start nonterminal name may not be empty", line, 0)
	}
	if parts[1] == "" {
		return "", "", newSyntaxErrorAt("epsilon name may not be empty", line, len(parts[0])+1)
	}
	return parts[0], parts[1], nil
}

// parseNonTermLine splits the (possibly empty) list of additional
// nonterminal names.
func parseNonTermLine(line string) ([]string, error) {
	if line == "" {
		return nil, nil
	}
	parts := kmp.Split(line, delim)
	for i, p := range parts {
		if p == "" {
			return nil, newSyntaxErrorAt("empty nonterminal name", line, fragOffset(parts, i))
		}
	}
	return parts, nil
}

// fragOffset returns the byte offset of frags[i] within the line that was
// split on delim to produce frags.
func fragOffset(frags []string, i int) int {
	off := 0
	for _, f := range frags[:i] {
		off += len(f) + len(delim)
	}
	return off
}

// parseTerminalLine splits and decodes the terminal name list, expanding
// the \|, \\, and `` ` `` escapes described in spec.md §4.2.
func parseTerminalLine(line string) ([]string, error) {
	frags := kmp.Split(line, delim)

	var names []string
	i := 0
	for i < len(frags) {
		frag := frags[i]
		switch {
		case frag == pipeEscape:
			names = append(names, "|")
			i++
		case frag == slashEscape:
			names = append(names, `\`)
			i++
		case frag == slashOnly && i+1 < len(frags) && frags[i+1] == "":
			names = append(names, "`")
			i += 2
		case frag == "":
			return nil, newSyntaxErrorAt("empty symbol in terminal list", line, fragOffset(frags, i))
		case len(frag) > 1:
			return nil, newSyntaxErrorAt(fmt.Sprintf("terminal %q is longer than one character", frag), line, fragOffset(frags, i))
		default:
			names = append(names, frag)
			i++
		}
	}

	return names, nil
}

// parseRuleLine parses one "<lhs> -> <rhs1> | <rhs2> | ..." line and adds
// its productions to g under nonterminal lhs.
func parseRuleLine(g *Grammar, lhs int, line string) error {
	lhsName, _ := g.NameOf(lhs)
	prefix := lhsName + arrow
	if !strings.HasPrefix(line, prefix) {
		return newSyntaxErrorAt(fmt.Sprintf("expected rule for %q with a single space around the arrow", lhsName), line, 0)
	}
	rhsSection := line[len(prefix):]

	epsName, _ := g.NameOf(Epsilon)
	alts := kmp.Split(rhsSection, rulesDelim)

	for _, alt := range alts {
		if alt == "" {
			return newSyntaxErrorAt(fmt.Sprintf("empty right-hand side in rule for %q", lhsName), line, len(prefix))
		}
		if alt == epsName {
			g.addRule(lhs, Production{Epsilon})
			continue
		}
		rhs, err := parseRightHandSide(g, line, lhsName, alt)
		if err != nil {
			return err
		}
		g.addRule(lhs, rhs)
	}

	return nil
}

// parseRightHandSide parses a single non-epsilon alternative, recognizing
// explicit named tokens, runs of single-character terminals, and the three
// escape sequences, per spec.md §4.2 step 4.
func parseRightHandSide(g *Grammar, ruleLine, lhsName, alt string) (Production, error) {
	frags := kmp.Split(alt, delim)

	var rhs Production
	i := 0
	for i < len(frags) {
		frag := frags[i]
		switch {
		case frag == "":
			// an artifact of a leading, trailing, or doubled backtick
			// delimiter that carries no symbol of its own.
			i++

		case frag == pipeEscape:
			id, ok := g.IDOf("|")
			if !ok {
				return nil, newSyntaxErrorAt("'|' is not a declared terminal", ruleLine, 0)
			}
			rhs = append(rhs, id)
			i++

		case frag == slashEscape:
			id, ok := g.IDOf(`\`)
			if !ok {
				return nil, newSyntaxErrorAt("'\\' is not a declared terminal", ruleLine, 0)
			}
			rhs = append(rhs, id)
			i++

		case frag == slashOnly && i+1 < len(frags) && frags[i+1] == "":
			id, ok := g.IDOf("`")
			if !ok {
				return nil, newSyntaxErrorAt("'`' is not a declared terminal", ruleLine, 0)
			}
			rhs = append(rhs, id)
			i += 2

		default:
			if id, ok := g.IDOf(frag); ok {
				rhs = append(rhs, id)
				i++
				continue
			}

			run, err := parseTerminalRun(g, ruleLine, frag)
			if err != nil {
				return nil, err
			}
			rhs = append(rhs, run...)
			i++
		}
	}

	if len(rhs) == 0 {
		return nil, newSyntaxErrorAt(fmt.Sprintf("empty right-hand side in rule for %q", lhsName), ruleLine, 0)
	}

	return rhs, nil
}

// parseTerminalRun scans a backtick-free fragment character by character,
// since adjacent single-character terminals need no separator, decoding
// inline \| and \\ escapes as it goes.
func parseTerminalRun(g *Grammar, ruleLine, frag string) (Production, error) {
	var run Production
	j := 0
	for j < len(frag) {
		c := frag[j]
		if c == '\\' && j+1 < len(frag) && (frag[j+1] == '|' || frag[j+1] == '\\') {
			name := string(frag[j+1])
			id, ok := g.IDOf(name)
			if !ok {
				return nil, newSyntaxErrorAt(fmt.Sprintf("%q is not a declared terminal", name), ruleLine, j)
			}
			run = append(run, id)
			j += 2
			continue
		}

		name := string(c)
		id, ok := g.IDOf(name)
		if !ok {
			return nil, newSyntaxErrorAt(fmt.Sprintf("unknown symbol %q; nonterminals must be back-tick delimited", name), ruleLine, j)
		}
		if g.IsNonTerminal(id) {
			return nil, newSyntaxErrorAt(fmt.Sprintf("nonterminal %q must be back-tick delimited", name), ruleLine, j)
		}
		run = append(run, id)
		j++
	}
	return run, nil
}
