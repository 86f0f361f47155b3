package http

import (
	"net/http"
	"time"

	"finanzapp/internal/core"
)

// handleListBudgets returns the month's budget report. Defaults to the
// current calendar month.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		respondMessage(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}
	report, err := s.planning.MonthReport(r.Context(), year, month)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, report)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var b core.Budget
	if !decodeJSON(w, r, &b) {
		return
	}
	created, err := s.planning.CreateBudget(r.Context(), b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.planning.ListGoals(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, goals)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if !decodeJSON(w, r, &g) {
		return
	}
	created, err := s.planning.CreateGoal(r.Context(), g)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, created)
}
