package grammar

import (
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadFile opens path and loads a Grammar from its contents, per Load. A
// leading UTF-8 byte-order mark is stripped before the four-section loader
// ever sees a byte; this is a concern of this file-opening front door, not
// of the recognizers, and never touches the words later tested for
// membership (spec.md §1's Non-goal on Unicode normalization is about
// recognized input, not about sniffing the encoding of the grammar file
// itself).
func LoadFile(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := transform.NewReader(f, unicode.UTF8BOM.NewDecoder())
	return Load(r)
}
