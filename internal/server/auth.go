package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// authKey is a key in a request's context populated by requireBearer.
type authKey int

const authKeyID authKey = iota

// issueToken mints a short-lived bearer token for the API key identified by
// keyID, signed with secret.
func issueToken(secret []byte, keyID string) (string, error) {
	claims := jwt.MapClaims{
		"iss": "cfgrec",
		"sub": keyID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(secret)
}

// requireBearer is middleware that validates an "Authorization: Bearer"
// JWT minted by issueToken and places the authenticated key id in the
// request context; it rejects the request with 401 otherwise.
func requireBearer(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			tokStr, err := bearerToken(req)
			if err != nil {
				unauthorized("%s", err).write(w)
				return
			}

			tok, err := jwt.Parse(tokStr, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("cfgrec"), jwt.WithLeeway(time.Minute))
			if err != nil || !tok.Valid {
				unauthorized("invalid token: %v", err).write(w)
				return
			}

			keyID, err := tok.Claims.GetSubject()
			if err != nil {
				unauthorized("token has no subject").write(w)
				return
			}

			ctx := context.WithValue(req.Context(), authKeyID, keyID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func bearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no Authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", fmt.Errorf("Authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}
