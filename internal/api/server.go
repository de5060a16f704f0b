// Package api serves the journal over a JSON HTTP interface.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crypto-trade-journal/internal/config"
	"crypto-trade-journal/internal/journal"
	"crypto-trade-journal/internal/news"
	"crypto-trade-journal/internal/store"

	"go.uber.org/zap"
)

// HeadlineSource provides the news feed.
type HeadlineSource interface {
	Headlines(ctx context.Context) ([]news.Headline, error)
}

// Server holds dependencies for the API endpoints.
type Server struct {
	log        *zap.Logger
	journal    *journal.Service
	store      *store.Store
	news       HeadlineSource
	apiKey     string
	corsOrigin string
	httpServer *http.Server
}

// NewServer wires the routes. news may be nil, in which case /api/news returns an empty list.
func NewServer(log *zap.Logger, cfg config.Server, svc *journal.Service, st *store.Store, headlines HeadlineSource) *Server {
	s := &Server{
		log:        log,
		journal:    svc,
		store:      st,
		news:       headlines,
		apiKey:     cfg.APIKey,
		corsOrigin: cfg.CORSOrigin,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler returns the full middleware and route stack.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Calculator
	mux.HandleFunc("POST /api/calc/preview", s.handlePreview)

	// Trades
	mux.HandleFunc("GET /api/trades", s.handleListTrades)
	mux.HandleFunc("POST /api/trades", s.handleCreateTrade)
	mux.HandleFunc("GET /api/trades/export", s.handleExportTrades)
	mux.HandleFunc("GET /api/trades/{id}", s.handleGetTrade)
	mux.HandleFunc("PUT /api/trades/{id}", s.handleUpdateTrade)
	mux.HandleFunc("DELETE /api/trades/{id}", s.handleDeleteTrade)

	// Statistics
	mux.HandleFunc("GET /api/stats/summary", s.handleSummary)
	mux.HandleFunc("GET /api/stats/breakdown/{group}", s.handleBreakdown)

	// Goals and notes
	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("PUT /api/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	mux.HandleFunc("GET /api/notes", s.handleListNotes)
	mux.HandleFunc("POST /api/notes", s.handleCreateNote)
	mux.HandleFunc("PUT /api/notes/{id}", s.handleUpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", s.handleDeleteNote)

	// Alerts and inbox
	mux.HandleFunc("GET /api/alerts", s.handleListAlerts)
	mux.HandleFunc("POST /api/alerts", s.handleCreateAlert)
	mux.HandleFunc("DELETE /api/alerts/{id}", s.handleDeleteAlert)
	mux.HandleFunc("GET /api/notifications", s.handleListNotifications)
	mux.HandleFunc("GET /api/notifications/unread", s.handleUnreadCount)
	mux.HandleFunc("POST /api/notifications/{id}/read", s.handleMarkRead)
	mux.HandleFunc("POST /api/notifications/read-all", s.handleMarkAllRead)

	mux.HandleFunc("GET /api/news", s.handleNews)

	// Health check (no auth required)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.logMiddleware(corsMiddleware(s.authMiddleware(userMiddleware(mux)), s.corsOrigin))
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("Starting web server", zap.String("address", s.httpServer.Addr), zap.Bool("auth", s.apiKey != ""))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := s.store.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		s.log.Error("Health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if s.news == nil {
		writeJSON(w, http.StatusOK, []news.Headline{})
		return
	}
	items, err := s.news.Headlines(r.Context())
	if err != nil {
		s.log.Error("Failed to load news", zap.Error(err))
		writeError(w, http.StatusBadGateway, "failed to load news")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
