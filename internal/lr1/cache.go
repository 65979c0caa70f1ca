package lr1

import "github.com/dekarrin/cfgrec/internal/grammar"

// NewTableForCache returns an empty Table suitable as the target of
// rezi.DecBinary, for internal/tablecache to decode a previously-cached
// table into.
func NewTableForCache() *Table {
	return &Table{}
}

// FromCachedTable builds a Recognizer from a grammar and a Table decoded by
// internal/tablecache, skipping Construct entirely. The caller is
// responsible for ensuring table was actually built from the same grammar
// source as g; internal/tablecache guarantees this by keying its cache on
// a hash of the grammar source text.
func FromCachedTable(g *grammar.Grammar, table *Table) *Recognizer {
	table.g = g
	return &Recognizer{g: g, table: table}
}
