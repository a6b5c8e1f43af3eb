// Package api provides the HTTP surface over the analysis engine. It
// handles ingestion and serialization only; all derivation lives in the
// decision packages.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"migration-cost/db/clickhouse"
	"migration-cost/decision/analysis"
	"migration-cost/decision/cost"
	"migration-cost/decision/discovery"
	"migration-cost/pkg/api"
	"migration-cost/pkg/platform"
)

// Config holds server configuration.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxRequestSize: 10 * 1024 * 1024, // 10MB
		CORSOrigins:    []string{"*"},
	}
}

// Server is the HTTP API server. The run store is optional; without it
// the history endpoints report unavailable.
type Server struct {
	httpServer *http.Server
	engine     *analysis.Engine
	store      *clickhouse.Store
	config     *Config
	logger     *slog.Logger
}

// NewServer creates the API server around an engine and optional store.
func NewServer(engine *analysis.Engine, store *clickhouse.Store, config *Config, logger *slog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine: engine,
		store:  store,
		config: config,
		logger: logger,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/v1/runs", s.handleListRuns)
	mux.HandleFunc("/api/v1/runs/", s.handleGetRun)

	handler := s.corsMiddleware(s.loggingMiddleware(platform.APIKeyMiddleware(mux)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("API server starting", "port", s.config.Port)
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts the server and drains on SIGINT/SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		s.logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"elapsed", time.Since(start).String(),
		)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		allowed := false
		for _, o := range s.config.CORSOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// HEALTH ENDPOINTS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			s.jsonError(w, http.StatusServiceUnavailable, "run store not ready")
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

// =============================================================================
// ANALYZE ENDPOINT
// =============================================================================

// AnalyzeRequest is the API request for a migration analysis.
type AnalyzeRequest struct {
	Servers []api.ServerAnalysis `json:"servers"`
	Roadmap *api.RoadmapInput    `json:"roadmap,omitempty"`

	// PlanRoadmap generates a timeline when none is supplied.
	PlanRoadmap bool   `json:"planRoadmap"`
	StartDate   string `json:"startDate,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	for _, issue := range discovery.ValidateInventory(req.Servers) {
		s.logger.Warn("inventory issue", "code", issue.Code, "server", issue.ServerID, "message", issue.Message)
	}

	engineReq := analysis.AnalyzeRequest{
		Input: api.AnalysisInput{
			Servers: req.Servers,
			Roadmap: req.Roadmap,
		},
		PlanRoadmap: req.PlanRoadmap,
	}

	if req.StartDate != "" {
		start, err := time.Parse(api.DateLayout, req.StartDate)
		if err != nil {
			s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid startDate: %v", err))
			return
		}
		engineReq.Start = start
	}

	result, err := s.engine.Analyze(engineReq)
	if err != nil {
		if err == cost.ErrEmptyPortfolio {
			s.jsonError(w, http.StatusBadRequest, "no servers in request")
			return
		}
		s.jsonError(w, http.StatusInternalServerError, fmt.Sprintf("analysis failed: %v", err))
		return
	}

	if s.store != nil {
		if err := s.store.SaveRun(r.Context(), result); err != nil {
			// History is best-effort; the analysis itself succeeded.
			s.logger.Warn("failed to persist analysis run", "error", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// =============================================================================
// RUN HISTORY ENDPOINTS
// =============================================================================

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.jsonError(w, http.StatusServiceUnavailable, "run history not configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		fmt.Sscanf(raw, "%d", &limit)
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list runs: %v", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.jsonError(w, http.StatusServiceUnavailable, "run history not configured")
		return
	}

	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/v1/runs/"))
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	result, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get run: %v", err))
		return
	}
	if result == nil {
		s.jsonError(w, http.StatusNotFound, "run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
