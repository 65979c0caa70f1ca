// Package tablecache persists constructed LR(1) parse tables to disk, keyed
// by a content hash of the grammar source that produced them, so that
// internal/server (and so cmd/cfgserver) does not pay Construct's
// canonical-collection cost again for a grammar it has already validated in
// a prior run. cmd/cfgshell does not use this cache.
package tablecache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/cfgrec/internal/grammar"
	"github.com/dekarrin/cfgrec/internal/lr1"
	"github.com/dekarrin/rezi"
)

// Cache is a directory of rezi-encoded LR(1) tables, one file per distinct
// grammar source.
type Cache struct {
	dir string
}

// Open returns a Cache rooted at dir, creating dir if it does not exist.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0770); err != nil {
		return nil, fmt.Errorf("create table cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key returns the cache key for a grammar's source text: the hex-encoded
// SHA-256 digest of the exact bytes grammar.Load was given.
func Key(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".rezi")
}

// Get loads the cached table for key and attaches it to g, or reports a
// miss via ok=false. Callers must only pass a g that was loaded from the
// same source bytes key was computed from.
func (c *Cache) Get(key string, g *grammar.Grammar) (r *lr1.Recognizer, ok bool, err error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read cached table: %w", err)
	}

	table := lr1.NewTableForCache()
	if _, err := rezi.DecBinary(data, table); err != nil {
		return nil, false, fmt.Errorf("decode cached table: %w", err)
	}

	return lr1.FromCachedTable(g, table), true, nil
}

// Put stores r's table under key, overwriting any previous entry.
func (c *Cache) Put(key string, r *lr1.Recognizer) error {
	data := rezi.EncBinary(r.Table())
	if err := os.WriteFile(c.path(key), data, 0660); err != nil {
		return fmt.Errorf("write cached table: %w", err)
	}
	return nil
}

// BuildOrGet returns a Recognizer for g, reusing the cached table for
// source if one exists, and constructing + caching one otherwise.
func (c *Cache) BuildOrGet(source []byte, g *grammar.Grammar) (*lr1.Recognizer, error) {
	key := Key(source)

	if r, ok, err := c.Get(key, g); err != nil {
		return nil, err
	} else if ok {
		return r, nil
	}

	r, err := lr1.New(g, 1)
	if err != nil {
		return nil, err
	}

	if err := c.Put(key, r); err != nil {
		return nil, err
	}

	return r, nil
}
