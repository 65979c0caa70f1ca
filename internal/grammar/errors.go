package grammar

import (
	"fmt"

	"github.com/dekarrin/cfgrec/internal/cfgerrors"
)

func newEmptyGrammarError() error {
	return cfgerrors.NewSyntaxError("grammar has no declared symbols")
}

func newNoRulesError(name string) error {
	return cfgerrors.NewSyntaxError(fmt.Sprintf("nonterminal %q has no rules", name))
}

func newMixedEpsilonError(name string) error {
	return cfgerrors.NewSyntaxError(fmt.Sprintf("epsilon appears mixed with other symbols in a rule of %q", name))
}

func newUndeclaredSymbolError(id int) error {
	return cfgerrors.NewSyntaxError(fmt.Sprintf("right-hand side references undeclared symbol id %d", id))
}

func newSyntaxErrorAt(msg, rule string, column int) error {
	return cfgerrors.NewSyntaxErrorAt(msg, rule, column)
}
