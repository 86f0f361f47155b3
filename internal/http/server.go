// Package http exposes the REST API and the placeholder web pages.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"finanzapp/internal/services"
	"finanzapp/internal/storage"
	appweb "finanzapp/web"
)

type Server struct {
	http.Server
	store     *storage.Repository
	debts     *services.DebtService
	movements *services.MovementService
	dashboard *services.DashboardService
	planning  *services.PlanningService
	templates *template.Template
}

// NewServer wires routes and templates, returning a ready-to-run server.
func NewServer(addr string, store *storage.Repository,
	debts *services.DebtService, movements *services.MovementService,
	dashboard *services.DashboardService, planning *services.PlanningService) *Server {

	s := &Server{
		store:     store,
		debts:     debts,
		movements: movements,
		dashboard: dashboard,
		planning:  planning,
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	r := mux.NewRouter()
	r.Use(s.withRequestLog)

	r.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/test", s.handleEcho).Methods(http.MethodPost)

	api.HandleFunc("/debtors", s.handleListDebtors).Methods(http.MethodGet)
	api.HandleFunc("/debtors", s.handleCreateDebtor).Methods(http.MethodPost)
	api.HandleFunc("/debtors/{id:[0-9]+}", s.handleGetDebtor).Methods(http.MethodGet)
	api.HandleFunc("/debtors/{id:[0-9]+}", s.handleUpdateDebtor).Methods(http.MethodPut)
	api.HandleFunc("/debtors/{id:[0-9]+}", s.handleDeleteDebtor).Methods(http.MethodDelete)
	api.HandleFunc("/debtors/{id:[0-9]+}/debts", s.handleListDebtorDebts).Methods(http.MethodGet)

	api.HandleFunc("/debts", s.handleListDebts).Methods(http.MethodGet)
	api.HandleFunc("/debts", s.handleCreateDebt).Methods(http.MethodPost)
	api.HandleFunc("/debts/{id:[0-9]+}", s.handleGetDebt).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id:[0-9]+}", s.handleUpdateDebt).Methods(http.MethodPut)
	api.HandleFunc("/debts/{id:[0-9]+}", s.handleDeleteDebt).Methods(http.MethodDelete)
	api.HandleFunc("/debts/{id:[0-9]+}/payments", s.handleListDebtPayments).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id:[0-9]+}/payments", s.handleRecordDebtPayment).Methods(http.MethodPost)
	api.HandleFunc("/debts/{id:[0-9]+}/installments", s.handleListInstallments).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id:[0-9]+}/installments", s.handleCreateInstallment).Methods(http.MethodPost)

	api.HandleFunc("/creditors", s.handleListCreditors).Methods(http.MethodGet)
	api.HandleFunc("/creditors", s.handleCreateCreditor).Methods(http.MethodPost)
	api.HandleFunc("/creditors/{id:[0-9]+}", s.handleGetCreditor).Methods(http.MethodGet)
	api.HandleFunc("/creditors/{id:[0-9]+}", s.handleUpdateCreditor).Methods(http.MethodPut)
	api.HandleFunc("/creditors/{id:[0-9]+}", s.handleDeleteCreditor).Methods(http.MethodDelete)

	api.HandleFunc("/user-debts", s.handleListUserDebts).Methods(http.MethodGet)
	api.HandleFunc("/user-debts", s.handleCreateUserDebt).Methods(http.MethodPost)
	api.HandleFunc("/user-debts/{id:[0-9]+}", s.handleGetUserDebt).Methods(http.MethodGet)
	api.HandleFunc("/user-debts/{id:[0-9]+}", s.handleUpdateUserDebt).Methods(http.MethodPut)
	api.HandleFunc("/user-debts/{id:[0-9]+}", s.handleDeleteUserDebt).Methods(http.MethodDelete)
	api.HandleFunc("/user-debts/{id:[0-9]+}/payments", s.handleListUserPayments).Methods(http.MethodGet)
	api.HandleFunc("/user-debts/{id:[0-9]+}/payments", s.handleRecordUserPayment).Methods(http.MethodPost)
	api.HandleFunc("/user-debts/{id:[0-9]+}/reminders", s.handleListReminders).Methods(http.MethodGet)
	api.HandleFunc("/user-debts/{id:[0-9]+}/reminders", s.handleCreateReminder).Methods(http.MethodPost)

	api.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", s.handleCreateCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id:[0-9]+}", s.handleGetCategory).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id:[0-9]+}", s.handleUpdateCategory).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id:[0-9]+}", s.handleDeleteCategory).Methods(http.MethodDelete)
	api.HandleFunc("/categories/{id:[0-9]+}/subcategories", s.handleListSubcategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id:[0-9]+}/subcategories", s.handleCreateSubcategory).Methods(http.MethodPost)

	api.HandleFunc("/movements", s.handleListMovements).Methods(http.MethodGet)
	api.HandleFunc("/movements", s.handleCreateMovement).Methods(http.MethodPost)
	api.HandleFunc("/movements/{id:[0-9]+}", s.handleGetMovement).Methods(http.MethodGet)
	api.HandleFunc("/movements/{id:[0-9]+}", s.handleUpdateMovement).Methods(http.MethodPut)
	api.HandleFunc("/movements/{id:[0-9]+}", s.handleDeleteMovement).Methods(http.MethodDelete)

	api.HandleFunc("/budgets", s.handleListBudgets).Methods(http.MethodGet)
	api.HandleFunc("/budgets", s.handleCreateBudget).Methods(http.MethodPost)
	api.HandleFunc("/goals", s.handleListGoals).Methods(http.MethodGet)
	api.HandleFunc("/goals", s.handleCreateGoal).Methods(http.MethodPost)

	api.HandleFunc("/dashboard/stats", s.handleDashboardStats).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/movements", s.handleRecentMovements).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/charts", s.handleDashboardCharts).Methods(http.MethodGet)

	// Placeholder pages. The dashboard page is the only one with live data;
	// the rest render an under-construction shell.
	r.HandleFunc("/", s.handleHomePage).Methods(http.MethodGet)
	for _, page := range []string{"debtors", "creditors", "movements", "budgets", "goals"} {
		r.HandleFunc("/"+page, s.handlePlaceholderPage(page)).Methods(http.MethodGet)
	}

	s.Server = http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// withRequestLog tags each request with an ID, logs start and completion and
// sets the security headers.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type requestIDKey struct{}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		respondMessage(w, http.StatusServiceUnavailable, "database not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
