package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"notegate"
)

// ErrorResponse is the JSON error body. Every error the gateway returns
// uses this one-field shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes the response for a service error. Not-found and
// conflict conditions use fixed messages; anything else is surfaced
// verbatim as a 500 so the caller sees the store's failure.
func HandleError(w http.ResponseWriter, err error) {
	slog.Error("request error", "error", err)

	if errors.Is(err, notegate.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	if errors.Is(err, notegate.ErrConflict) {
		WriteError(w, http.StatusConflict, "Already exists")
		return
	}

	if errors.Is(err, notegate.ErrInvalidInput) {
		WriteError(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	WriteError(w, http.StatusInternalServerError, err.Error())
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
