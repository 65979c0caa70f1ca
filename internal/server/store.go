package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
)

// Sentinel errors the store returns; handlers.go checks for ErrNotFound with
// errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

// Store is the sqlite-backed persistence layer for named grammar sources
// and the API keys allowed to mutate them.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) the sqlite database at file and
// ensures its schema exists.
func OpenStore(file string) (*Store, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS grammars (
		name TEXT NOT NULL PRIMARY KEY,
		source TEXT NOT NULL,
		engine TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`)
	if err != nil {
		return nil, wrapDBError(err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS api_keys (
		id TEXT NOT NULL PRIMARY KEY,
		key_hash TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GrammarRecord is one stored grammar source and the engine it was last
// validated against.
type GrammarRecord struct {
	Name      string
	Source    string
	Engine    string
	UpdatedAt time.Time
}

// PutGrammar creates or overwrites the named grammar's source text.
func (s *Store) PutGrammar(ctx context.Context, name, source, engine string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO grammars (name, source, engine, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET source = excluded.source, engine = excluded.engine, updated_at = excluded.updated_at
	`, name, source, engine, time.Now().Unix())
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// GetGrammar fetches a stored grammar by name, or ErrNotFound.
func (s *Store) GetGrammar(ctx context.Context, name string) (GrammarRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT name, source, engine, updated_at FROM grammars WHERE name = ?`, name)

	var rec GrammarRecord
	var updatedAt int64
	if err := row.Scan(&rec.Name, &rec.Source, &rec.Engine, &updatedAt); err != nil {
		return GrammarRecord{}, wrapDBError(err)
	}
	rec.UpdatedAt = time.Unix(updatedAt, 0)
	return rec, nil
}

// DeleteGrammar removes a stored grammar by name. It is not an error to
// delete a name that does not exist.
func (s *Store) DeleteGrammar(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM grammars WHERE name = ?`, name)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// CreateAPIKey mints a new random API key, stores its bcrypt hash, and
// returns the raw key — the only time the caller will see it.
func (s *Store) CreateAPIKey(ctx context.Context) (id string, rawKey string, err error) {
	keyUUID, err := uuid.NewRandom()
	if err != nil {
		return "", "", fmt.Errorf("could not generate key id: %w", err)
	}
	rawUUID, err := uuid.NewRandom()
	if err != nil {
		return "", "", fmt.Errorf("could not generate key: %w", err)
	}
	rawKey = rawUUID.String()

	hash, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("could not hash key: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO api_keys (id, key_hash, created_at) VALUES (?, ?, ?)`,
		keyUUID.String(), string(hash), time.Now().Unix())
	if err != nil {
		return "", "", wrapDBError(err)
	}

	return keyUUID.String(), rawKey, nil
}

// VerifyAPIKey reports whether rawKey matches any stored key's hash, and
// if so, the id of that key.
func (s *Store) VerifyAPIKey(ctx context.Context, rawKey string) (id string, ok bool, err error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, key_hash FROM api_keys`)
	if err != nil {
		return "", false, wrapDBError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var rowID, hash string
		if err := rows.Scan(&rowID, &hash); err != nil {
			return "", false, wrapDBError(err)
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawKey)) == nil {
			return rowID, true, nil
		}
	}
	return "", false, nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
