package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"finanzapp/internal/core"
)

// Every API response uses the same envelope: {"status":"success","data":...}
// or {"status":"error","message":...}. Validation failures carry a per-field
// map under "errors".
type envelope struct {
	Status  string            `json:"status"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, envelope{Status: "success", Data: data})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, envelope{Status: "error", Message: msg})
}

// respondError maps domain errors onto HTTP statuses: per-field validation
// errors become 422, missing rows 404, anything else 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if fe, ok := core.AsFieldErrors(err); ok {
		respondJSON(w, http.StatusUnprocessableEntity, envelope{Status: "error", Errors: fe})
		return
	}
	if errors.Is(err, core.ErrNotFound) {
		respondMessage(w, http.StatusNotFound, err.Error())
		return
	}
	slog.ErrorContext(r.Context(), "Request failed",
		"method", r.Method, "url", r.URL.Path, "error", err)
	respondMessage(w, http.StatusInternalServerError, err.Error())
}

// decodeJSON reads the request body into dst. A malformed body is a client
// error, reported with the standard envelope.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
