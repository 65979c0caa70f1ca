package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/cfgrec"
	"github.com/dekarrin/cfgrec/internal/cfgerrors"
	"github.com/dekarrin/cfgrec/internal/grammar"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// endpointFunc is a handler that returns its result instead of writing
// directly, so endpoint can apply the same panic recovery, unauthorized
// throttling, and access logging to every route uniformly.
type endpointFunc func(req *http.Request) result

// endpoint wraps an endpointFunc into an http.HandlerFunc, grounded on the
// same pattern as the rest of the response stack: recover from panics as a
// 500, delay before responding to anything unauthorized or erroring, and
// log the outcome with the request's id.
func (s *Server) endpoint(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		reqID, _ := req.Context().Value(ctxRequestID).(string)

		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[%s] panic in handler: %v", reqID, rec)
				internalError("panic: %v", rec).write(w)
			}
		}()

		res := ep(req)

		if res.status == http.StatusUnauthorized || res.status == http.StatusInternalServerError {
			time.Sleep(s.unauthDelay)
		}

		log.Printf("[%s] %s %s -> %d (%s)", reqID, req.Method, req.URL.Path, res.status, res.internalMsg)
		res.write(w)
	}
}

// putGrammarRequest is the body of PUT /grammars/{name}.
type putGrammarRequest struct {
	Source string `json:"source"`
	Engine string `json:"engine"`
}

type grammarResponse struct {
	Name      string `json:"name"`
	Engine    string `json:"engine"`
	UpdatedAt int64  `json:"updated_at"`
}

type parseRequest struct {
	Engine string `json:"engine"`
	Word   string `json:"word"`
}

type parseResponse struct {
	Word    string `json:"word"`
	Engine  string `json:"engine"`
	Accepts bool   `json:"accepts"`
}

type apiKeyResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

func (s *Server) epCreateAPIKey(req *http.Request) result {
	id, rawKey, err := s.store.CreateAPIKey(req.Context())
	if err != nil {
		return internalError("create api key: %v", err)
	}
	return created(apiKeyResponse{ID: id, Key: rawKey}, "created api key %s", id)
}

func (s *Server) epPutGrammar(req *http.Request) result {
	name := chi.URLParam(req, "name")
	if name == "" {
		return badRequest("name must not be empty", "missing name param")
	}

	var body putGrammarRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("request body must be valid JSON", "decode body: %v", err)
	}
	if strings.TrimSpace(body.Source) == "" {
		return badRequest("source must not be empty", "empty source")
	}

	engine := cfgrec.Engine(body.Engine)
	if engine == "" {
		engine = cfgrec.EngineEarley
	}
	if engine != cfgrec.EngineEarley && engine != cfgrec.EngineLR1 {
		return badRequest("engine must be 'earley' or 'lr1'", "unknown engine %q", body.Engine)
	}

	if err := s.validateGrammar(body.Source, engine); err != nil {
		if cfgerrors.IsSyntax(err) || cfgerrors.IsConflict(err) {
			return badRequest(err.Error(), "grammar %q rejected: %v", name, err)
		}
		return internalError("validate grammar %q: %v", name, err)
	}

	if err := s.store.PutGrammar(req.Context(), name, body.Source, string(engine)); err != nil {
		return internalError("store grammar %q: %v", name, err)
	}

	return created(grammarResponse{Name: name, Engine: string(engine)}, "stored grammar %q (%s)", name, engine)
}

func (s *Server) epGetGrammar(req *http.Request) result {
	name := chi.URLParam(req, "name")
	rec, err := s.store.GetGrammar(req.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(fmt.Sprintf("no grammar named %q", name))
		}
		return internalError("get grammar %q: %v", name, err)
	}
	return ok(grammarResponse{Name: rec.Name, Engine: rec.Engine, UpdatedAt: rec.UpdatedAt.Unix()}, "fetched grammar %q", name)
}

func (s *Server) epDeleteGrammar(req *http.Request) result {
	name := chi.URLParam(req, "name")
	if _, err := s.store.GetGrammar(req.Context(), name); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(fmt.Sprintf("no grammar named %q", name))
		}
		return internalError("get grammar %q: %v", name, err)
	}
	if err := s.store.DeleteGrammar(req.Context(), name); err != nil {
		return internalError("delete grammar %q: %v", name, err)
	}
	return noContent("deleted grammar %q", name)
}

func (s *Server) epParse(req *http.Request) result {
	name := chi.URLParam(req, "name")

	rec, err := s.store.GetGrammar(req.Context(), name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(fmt.Sprintf("no grammar named %q", name))
		}
		return internalError("get grammar %q: %v", name, err)
	}

	var body parseRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("request body must be valid JSON", "decode body: %v", err)
	}

	engine := cfgrec.Engine(body.Engine)
	if engine == "" {
		engine = cfgrec.Engine(rec.Engine)
	}

	accepts, err := s.parse(rec.Source, engine, body.Word)
	if err != nil {
		if cfgerrors.IsSyntax(err) || cfgerrors.IsConflict(err) {
			return badRequest(err.Error(), "grammar %q unusable with engine %s: %v", name, engine, err)
		}
		return internalError("parse with grammar %q: %v", name, err)
	}

	return ok(parseResponse{Word: body.Word, Engine: string(engine), Accepts: accepts},
		"grammar %q word %q via %s -> %t", name, body.Word, engine, accepts)
}

func (s *Server) validateGrammar(source string, engine cfgrec.Engine) error {
	_, err := s.buildParser(source, engine)
	return err
}

func (s *Server) parse(source string, engine cfgrec.Engine, word string) (bool, error) {
	p, err := s.buildParser(source, engine)
	if err != nil {
		return false, err
	}
	return p.Parse(word)
}

func (s *Server) buildParser(source string, engine cfgrec.Engine) (cfgrec.Parser, error) {
	switch engine {
	case cfgrec.EngineLR1:
		g, err := grammar.Load(strings.NewReader(source))
		if err != nil {
			return nil, err
		}
		return s.tables.BuildOrGet([]byte(source), g)
	default:
		return cfgrec.NewEarleyParser(strings.NewReader(source))
	}
}

type ctxKey int

const ctxRequestID ctxKey = iota

// requestID tags every request with a uuid, mirroring the original
// server's reliance on google/uuid for identifying distinct entities.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(req.Context(), ctxRequestID, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}
