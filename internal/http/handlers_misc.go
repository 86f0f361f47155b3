package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// handleStatus reports static service metadata.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{
		"service": "finanzapp",
		"status":  "running",
		"address": s.Addr,
	})
}

// handleEcho reads a JSON body and returns it inside the success envelope.
// Used as a connectivity smoke test by clients.
func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "failed to read body")
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	respondData(w, http.StatusOK, payload)
}

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// queryInt reads an integer query parameter, falling back when absent or bad.
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
