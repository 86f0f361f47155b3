package http

import (
	"net/http"

	"finanzapp/internal/core"
)

func (s *Server) handleListDebtors(w http.ResponseWriter, r *http.Request) {
	debtors, err := s.store.ListDebtors(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, debtors)
}

func (s *Server) handleCreateDebtor(w http.ResponseWriter, r *http.Request) {
	var d core.Debtor
	if !decodeJSON(w, r, &d) {
		return
	}
	if err := d.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := s.store.CreateDebtor(r.Context(), d)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (s *Server) handleGetDebtor(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.GetDebtor(r.Context(), pathID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, d)
}

func (s *Server) handleUpdateDebtor(w http.ResponseWriter, r *http.Request) {
	var d core.Debtor
	if !decodeJSON(w, r, &d) {
		return
	}
	d.ID = pathID(r)
	if err := d.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.store.UpdateDebtor(r.Context(), d); err != nil {
		respondError(w, r, err)
		return
	}
	updated, err := s.store.GetDebtor(r.Context(), d.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDebtor(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteDebtor(r.Context(), pathID(r)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDebtorDebts(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, err := s.store.GetDebtor(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	debts, err := s.store.ListDebtsByDebtor(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, debts)
}
