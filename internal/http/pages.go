package http

import (
	"log/slog"
	"net/http"
	"strings"
)

// handleHomePage renders the dashboard shell with the current stats.
func (s *Server) handleHomePage(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	stats, err := s.dashboard.Stats(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard stats for home page failed", "error", err)
	}

	data := struct {
		Title string
		Stats any
	}{Title: "Dashboard", Stats: stats}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "template", "index.html", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handlePlaceholderPage renders the under-construction shell for sections
// whose UI is not built yet. The API endpoints behind them are live.
func (s *Server) handlePlaceholderPage(name string) http.HandlerFunc {
	title := strings.ToUpper(name[:1]) + name[1:]
	return func(w http.ResponseWriter, r *http.Request) {
		if s.templates == nil {
			http.Error(w, "templates not loaded", http.StatusInternalServerError)
			return
		}
		data := struct {
			Title string
		}{Title: title}
		if err := s.templates.ExecuteTemplate(w, "under_construction.html", data); err != nil {
			slog.ErrorContext(r.Context(), "Template execution failed",
				"template", "under_construction.html", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
