// Package cfgerrors defines the failable error kinds surfaced by the
// grammar loader and the LR(1) constructor, along with the legacy process
// exit codes they were once reported with.
package cfgerrors

import (
	"errors"
	"fmt"
)

// Exit statuses the reference implementation reported on a process exit.
// The library packages never call os.Exit; cmd/cfgshell exits with these
// statuses, through ExitCodeFor, when its grammar fails to load.
const (
	ExitIncorrectGrammarInput = 11
	ExitGrammarNotLR1         = 2
	ExitNotImplemented        = 12
)

// ErrPrecondition is returned (wrapped) when Parse is called on a parser
// that has no grammar loaded.
var ErrPrecondition = errors.New("precondition violated: no grammar loaded")

// SyntaxError reports a malformed grammar file. Rule is the original rule
// text being parsed when the error was found, and Column is a 0-based
// offset into Rule where the problem was found; Column is -1 if the error
// is not attributable to a single column (e.g. a missing section).
type SyntaxError struct {
	Msg    string
	Rule   string
	Column int
}

func (e *SyntaxError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("grammar syntax error: %s", e.Msg)
	}
	if e.Column < 0 {
		return fmt.Sprintf("grammar syntax error: %s:\n%s", e.Msg, e.Rule)
	}
	return fmt.Sprintf("grammar syntax error: %s:\n%s\n%s^", e.Msg, e.Rule, pad(e.Column))
}

func pad(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// NewSyntaxError builds a SyntaxError with no column information.
func NewSyntaxError(msg string) error {
	return &SyntaxError{Msg: msg, Column: -1}
}

// NewSyntaxErrorAt builds a SyntaxError that points a caret at column within
// rule.
func NewSyntaxErrorAt(msg, rule string, column int) error {
	return &SyntaxError{Msg: msg, Rule: rule, Column: column}
}

// ConflictError reports a shift/reduce or reduce/reduce conflict found
// during canonical LR(1) table construction; the grammar is not LR(1).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("grammar is not LR(1): %s", e.Msg)
}

// NewConflictError builds a ConflictError.
func NewConflictError(msg string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(msg, args...)}
}

// NotImplementedError reports a request for an unsupported construction,
// namely LR(k) for any k other than 1.
type NotImplementedError struct {
	Msg string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Msg)
}

// NewNotImplemented builds a NotImplementedError.
func NewNotImplemented(msg string, args ...interface{}) error {
	return &NotImplementedError{Msg: fmt.Sprintf(msg, args...)}
}

// IsSyntax returns whether err is (or wraps) a *SyntaxError.
func IsSyntax(err error) bool {
	var target *SyntaxError
	return errors.As(err, &target)
}

// IsConflict returns whether err is (or wraps) a *ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsNotImplemented returns whether err is (or wraps) a *NotImplementedError.
func IsNotImplemented(err error) bool {
	var target *NotImplementedError
	return errors.As(err, &target)
}

// ExitCodeFor maps an error returned by this module to the legacy process
// exit status it corresponds to, or 0 if err is nil, or 1 for any other
// error.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case IsSyntax(err):
		return ExitIncorrectGrammarInput
	case IsConflict(err):
		return ExitGrammarNotLR1
	case IsNotImplemented(err):
		return ExitNotImplemented
	default:
		return 1
	}
}
