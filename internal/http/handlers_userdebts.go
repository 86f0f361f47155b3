package http

import (
	"net/http"

	"finanzapp/internal/core"
)

func (s *Server) handleListUserDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.store.ListUserDebts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, debts)
}

func (s *Server) handleCreateUserDebt(w http.ResponseWriter, r *http.Request) {
	var d core.UserDebt
	if !decodeJSON(w, r, &d) {
		return
	}
	created, err := s.debts.CreateUserDebt(r.Context(), d)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (s *Server) handleGetUserDebt(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.GetUserDebt(r.Context(), pathID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, d)
}

func (s *Server) handleUpdateUserDebt(w http.ResponseWriter, r *http.Request) {
	var d core.UserDebt
	if !decodeJSON(w, r, &d) {
		return
	}
	d.ID = pathID(r)
	updated, err := s.debts.UpdateUserDebt(r.Context(), d)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteUserDebt(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteUserDebt(r.Context(), pathID(r)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListUserPayments(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, err := s.store.GetUserDebt(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	payments, err := s.store.ListUserPayments(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, payments)
}

// handleRecordUserPayment records a payment and returns both the payment and
// the reconciled debt so the caller sees the new balance without a second
// round trip.
func (s *Server) handleRecordUserPayment(w http.ResponseWriter, r *http.Request) {
	var p core.UserPayment
	if !decodeJSON(w, r, &p) {
		return
	}
	p.UserDebtID = pathID(r)
	payment, debt, err := s.debts.RecordUserPayment(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, map[string]any{
		"payment": payment,
		"debt":    debt,
	})
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, err := s.store.GetUserDebt(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	reminders, err := s.store.ListReminders(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, reminders)
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var rem core.Reminder
	if !decodeJSON(w, r, &rem) {
		return
	}
	rem.UserDebtID = pathID(r)
	created, err := s.debts.CreateReminder(r.Context(), rem)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}
