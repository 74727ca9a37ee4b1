// Package response provides shared response helpers for HTTP handlers. The
// bodies here are part of the client contract: error payloads are always
// {"error": <message>} and the retrieval 404 is plain text.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// InternalError writes a 500 response with a generic message. Backend error
// detail never reaches the client.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error.")
}

// Text writes a plain-text body with the given status.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// NotFound writes the plain-text 404 used for missing objects and unmatched
// routes alike.
func NotFound(w http.ResponseWriter) {
	Text(w, http.StatusNotFound, "Not found.")
}
