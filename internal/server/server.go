// Package server exposes grammar membership-checking over HTTP: named
// grammars are stored in sqlite, API keys gate who may write them, and
// bearer tokens minted from those keys gate the mutating routes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dekarrin/cfgrec/internal/tablecache"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is a configured, ready-to-run cfgrec HTTP service.
type Server struct {
	router      chi.Router
	store       *Store
	tables      *tablecache.Cache
	jwtSecret   []byte
	unauthDelay time.Duration
}

// Config controls how New builds a Server.
type Config struct {
	// DBFile is the path to the sqlite database backing the grammar and
	// API key stores.
	DBFile string
	// JWTSecret signs and verifies bearer tokens minted from API keys.
	JWTSecret []byte
	// UnauthDelay is how long a route handler pauses before writing a 401
	// or 500 response, to deprioritize abusive traffic. Requests that the
	// bearer-token check rejects are answered with 401 without this pause.
	UnauthDelay time.Duration
}

// New builds a Server with its routes attached, opening (or creating) the
// configured sqlite database.
func New(cfg Config) (*Server, error) {
	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT secret must not be empty")
	}

	store, err := OpenStore(cfg.DBFile)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	tables, err := tablecache.Open(filepath.Dir(cfg.DBFile) + "/tablecache")
	if err != nil {
		return nil, fmt.Errorf("open table cache: %w", err)
	}

	unauthDelay := cfg.UnauthDelay
	if unauthDelay <= 0 {
		unauthDelay = time.Second
	}

	s := &Server{
		store:       store,
		tables:      tables,
		jwtSecret:   cfg.JWTSecret,
		unauthDelay: unauthDelay,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)

	r.Post("/tokens", s.endpoint(s.epCreateAPIKey))

	r.Route("/grammars/{name}", func(r chi.Router) {
		r.Get("/", s.endpoint(s.epGetGrammar))
		r.Post("/parse", s.endpoint(s.epParse))

		r.Group(func(r chi.Router) {
			r.Use(requireBearer(cfg.JWTSecret))
			r.Put("/", s.endpoint(s.epPutGrammar))
			r.Delete("/", s.endpoint(s.epDeleteGrammar))
		})
	})

	s.router = r
	return s, nil
}

// ServeHTTP lets Server be passed directly to http.Serve / httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// Close releases the server's database handle.
func (s *Server) Close() error {
	return s.store.Close()
}

// IssueTokenForKey validates rawKey against the stored API keys and, if
// valid, mints a bearer token for it. No HTTP route and no command in this
// module calls it; it is the only way to obtain a bearer token.
func (s *Server) IssueTokenForKey(ctx context.Context, rawKey string) (string, error) {
	id, ok, err := s.store.VerifyAPIKey(ctx, rawKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("invalid api key")
	}
	return issueToken(s.jwtSecret, id)
}
