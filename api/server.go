// Package api provides the HTTP REST API server for ApexAnalysis.
//
// It exposes endpoints for running a full ticker analysis and for reading
// the underlying price history and candidate news.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/apexlabs/apexanalysis/internal/config"
	"github.com/apexlabs/apexanalysis/internal/datasource"
	"github.com/apexlabs/apexanalysis/pkg/models"
	"github.com/apexlabs/apexanalysis/pkg/utils"
)

// Runner executes a full ticker analysis.
type Runner interface {
	RunAnalysis(ctx context.Context, ticker, period string) *models.Report
}

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    *config.Config
	runner Runner
	market datasource.MarketDataSource
	news   datasource.NewsFeedSource
	log    *logrus.Logger
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, runner Runner, market datasource.MarketDataSource, news datasource.NewsFeedSource, log *logrus.Logger) *Server {
	srv := &Server{
		cfg:    cfg,
		runner: runner,
		market: market,
		news:   news,
		log:    log,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	s.log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(180 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/ohlcv/{ticker}", s.handleOHLCV)
		r.Get("/news/{ticker}", s.handleNews)
	})

	return r
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AnalyzeRequest is the JSON body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Ticker string `json:"ticker"`
	Period string `json:"period,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if utils.NormalizeTicker(req.Ticker) == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	period := req.Period
	if period == "" {
		period = s.cfg.Analysis.DefaultPeriod
	}

	report := s.runner.RunAnalysis(r.Context(), req.Ticker, period)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleOHLCV(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	period := r.URL.Query().Get("period")
	if period == "" {
		period = s.cfg.Analysis.DefaultPeriod
	}

	candles, err := s.market.GetHistory(r.Context(), ticker, period)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("price history: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, candles)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	limit := s.cfg.News.NumArticles
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}

	articles, err := s.news.GetCandidates(r.Context(), ticker, limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("news candidates: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
