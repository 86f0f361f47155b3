package http

import "net/http"

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.dashboard.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}

func (s *Server) handleRecentMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := s.dashboard.RecentMovements(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, movements)
}

func (s *Server) handleDashboardCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := s.dashboard.Charts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, charts)
}
