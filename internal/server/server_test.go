package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anbnSrc = "S`e\n\na`b\nS -> a`S`b | e\n"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "cfgrec.db")
	s, err := New(Config{DBFile: dbFile, JWTSecret: []byte("test-secret")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func mintToken(t *testing.T, s *Server) string {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/tokens", nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp apiKeyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	tok, err := s.IssueTokenForKey(context.Background(), resp.Key)
	require.NoError(t, err)
	return tok
}

func Test_PutGetParseGrammar(t *testing.T) {
	s := newTestServer(t)
	tok := mintToken(t, s)

	w := doJSON(t, s, http.MethodPut, "/grammars/anbn", putGrammarRequest{Source: anbnSrc, Engine: "earley"}, tok)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodGet, "/grammars/anbn", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got grammarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "anbn", got.Name)

	w = doJSON(t, s, http.MethodPost, "/grammars/anbn/parse", parseRequest{Word: "aabb"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var parsed parseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	assert.True(t, parsed.Accepts)

	w = doJSON(t, s, http.MethodPost, "/grammars/anbn/parse", parseRequest{Word: "aab"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	assert.False(t, parsed.Accepts)
}

func Test_PutGrammar_requiresAuth(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPut, "/grammars/anbn", putGrammarRequest{Source: anbnSrc}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func Test_PutGrammar_rejectsNonLR1ForLR1Engine(t *testing.T) {
	s := newTestServer(t)
	tok := mintToken(t, s)

	src := "S`e\n\na`b\nS -> a`S | a`S`b | e\n"
	w := doJSON(t, s, http.MethodPut, "/grammars/ambiguous", putGrammarRequest{Source: src, Engine: "lr1"}, tok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_DeleteGrammar(t *testing.T) {
	s := newTestServer(t)
	tok := mintToken(t, s)

	w := doJSON(t, s, http.MethodPut, "/grammars/anbn", putGrammarRequest{Source: anbnSrc}, tok)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/grammars/anbn", nil, tok)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, s, http.MethodGet, "/grammars/anbn", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_GetGrammar_unknownName(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, fmt.Sprintf("/grammars/%s", "nope"), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
