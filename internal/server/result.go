package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// errorResponse is the JSON body written for any non-2xx result.
type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// result is a pending HTTP response: a status code, a JSON body, and an
// internal message for server-side logging that is never sent to the
// caller. This is the same split `server/result.Result` makes, narrowed to
// the handful of response shapes this service's endpoints need.
type result struct {
	status      int
	internalMsg string
	body        interface{}
}

func ok(body interface{}, internalMsg string, args ...interface{}) result {
	return result{status: http.StatusOK, body: body, internalMsg: fmt.Sprintf(internalMsg, args...)}
}

func created(body interface{}, internalMsg string, args ...interface{}) result {
	return result{status: http.StatusCreated, body: body, internalMsg: fmt.Sprintf(internalMsg, args...)}
}

func noContent(internalMsg string, args ...interface{}) result {
	return result{status: http.StatusNoContent, internalMsg: fmt.Sprintf(internalMsg, args...)}
}

func badRequest(userMsg string, internalMsg string, args ...interface{}) result {
	return result{
		status:      http.StatusBadRequest,
		body:        errorResponse{Error: userMsg, Status: http.StatusBadRequest},
		internalMsg: fmt.Sprintf(internalMsg, args...),
	}
}

func notFound(userMsg string) result {
	return result{
		status:      http.StatusNotFound,
		body:        errorResponse{Error: userMsg, Status: http.StatusNotFound},
		internalMsg: "not found",
	}
}

func unauthorized(internalMsg string, args ...interface{}) result {
	return result{
		status:      http.StatusUnauthorized,
		body:        errorResponse{Error: "authentication required", Status: http.StatusUnauthorized},
		internalMsg: fmt.Sprintf(internalMsg, args...),
	}
}

func conflict(userMsg string, internalMsg string, args ...interface{}) result {
	return result{
		status:      http.StatusConflict,
		body:        errorResponse{Error: userMsg, Status: http.StatusConflict},
		internalMsg: fmt.Sprintf(internalMsg, args...),
	}
}

func internalError(internalMsg string, args ...interface{}) result {
	return result{
		status:      http.StatusInternalServerError,
		body:        errorResponse{Error: "an internal server error occurred", Status: http.StatusInternalServerError},
		internalMsg: fmt.Sprintf(internalMsg, args...),
	}
}

func (r result) write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.status)

	if r.status == http.StatusNoContent || r.body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(r.body); err != nil {
		fmt.Fprintf(w, `{"error":"failed to encode response"}`)
	}
}
