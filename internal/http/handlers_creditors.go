package http

import (
	"net/http"

	"finanzapp/internal/core"
)

func (s *Server) handleListCreditors(w http.ResponseWriter, r *http.Request) {
	creditors, err := s.store.ListCreditors(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, creditors)
}

func (s *Server) handleCreateCreditor(w http.ResponseWriter, r *http.Request) {
	var c core.Creditor
	if !decodeJSON(w, r, &c) {
		return
	}
	if err := c.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := s.store.CreateCreditor(r.Context(), c)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (s *Server) handleGetCreditor(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCreditor(r.Context(), pathID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCreditor(w http.ResponseWriter, r *http.Request) {
	var c core.Creditor
	if !decodeJSON(w, r, &c) {
		return
	}
	c.ID = pathID(r)
	if err := c.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.UpdateCreditor(r.Context(), c); err != nil {
		respondError(w, r, err)
		return
	}
	updated, err := s.store.GetCreditor(r.Context(), c.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCreditor(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCreditor(r.Context(), pathID(r)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
