// Package httputil provides JSON request/response helpers shared by all
// HTTP handlers. Error bodies are `{"message": "..."}` so clients get a
// uniform shape across authorization, validation and server failures.
package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// MessageResponse is the standard error/notice body.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteMessage writes a `{message}` body with the given status.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Message: message})
}

// Unauthorized writes a 401 with the standard message body.
func Unauthorized(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 with the standard message body.
func Forbidden(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusForbidden, message)
}

// BadRequest writes a 400 with the standard message body.
func BadRequest(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusBadRequest, message)
}

// NotFound writes a 404 with the standard message body.
func NotFound(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusNotFound, message)
}

// Conflict writes a 409 with the standard message body.
func Conflict(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusConflict, message)
}

// InternalError writes a 500 with a generic message. Store and gateway
// failure detail is logged server-side, never sent to the caller.
func InternalError(w http.ResponseWriter, message string) {
	WriteMessage(w, http.StatusInternalServerError, message)
}

// ReadJSON decodes the request body into v.
func ReadJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}
