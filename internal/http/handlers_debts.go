package http

import (
	"net/http"

	"finanzapp/internal/core"
)

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.store.ListDebts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, debts)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var d core.Debt
	if !decodeJSON(w, r, &d) {
		return
	}
	created, err := s.debts.CreateDebt(r.Context(), d)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (s *Server) handleGetDebt(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.GetDebt(r.Context(), pathID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, d)
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	var d core.Debt
	if !decodeJSON(w, r, &d) {
		return
	}
	d.ID = pathID(r)
	updated, err := s.debts.UpdateDebt(r.Context(), d)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteDebt(r.Context(), pathID(r)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDebtPayments(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, err := s.store.GetDebt(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	payments, err := s.store.ListDebtPayments(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, payments)
}

func (s *Server) handleRecordDebtPayment(w http.ResponseWriter, r *http.Request) {
	var p core.DebtPayment
	if !decodeJSON(w, r, &p) {
		return
	}
	p.DebtID = pathID(r)
	created, err := s.debts.RecordDebtPayment(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (s *Server) handleListInstallments(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, err := s.store.GetDebt(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	installments, err := s.store.ListInstallments(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, installments)
}

func (s *Server) handleCreateInstallment(w http.ResponseWriter, r *http.Request) {
	var in core.Installment
	if !decodeJSON(w, r, &in) {
		return
	}
	in.DebtID = pathID(r)
	if err := in.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	if _, err := s.store.GetDebt(r.Context(), in.DebtID); err != nil {
		respondError(w, r, err)
		return
	}
	created, err := s.store.CreateInstallment(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}
