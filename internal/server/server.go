// Package server exposes the aggregation engine over HTTP for
// collaborators that deliver records via API instead of files.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/lead"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/store"
)

// AggregateRequest is the POST /v1/aggregate payload.
type AggregateRequest struct {
	Profiles []model.ProfileRecord `json:"profiles"`
	Websites []model.WebsiteRecord `json:"websites"`
}

// AggregateResponse carries the finished leads and run summary.
type AggregateResponse struct {
	RunID   string           `json:"run_id,omitempty"`
	Leads   []model.Lead     `json:"leads"`
	Summary model.RunSummary `json:"summary"`
}

// Server routes aggregation requests to the engine.
type Server struct {
	engine *lead.Engine
	store  store.Store // optional; nil disables run persistence
}

// New creates the HTTP handler. The store may be nil.
func New(engine *lead.Engine, st store.Store, cfg config.ServerConfig) http.Handler {
	s := &Server{engine: engine, store: st}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	if cfg.RateLimitPerSec > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateBurst)))
	}

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/aggregate", s.handleAggregate)
	r.Get("/v1/runs", s.handleListRuns)

	return r
}

// rateLimit rejects requests beyond the configured request budget.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	var req AggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Profiles) == 0 {
		writeError(w, http.StatusBadRequest, "profiles is required")
		return
	}

	leads, summary, err := s.engine.Aggregate(req.Profiles, req.Websites)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := AggregateResponse{Leads: leads, Summary: summary}
	if s.store != nil {
		run, storeErr := s.store.CreateRun(r.Context(), "api", summary, leads)
		if storeErr != nil {
			zap.L().Warn("server: failed to persist run", zap.Error(storeErr))
		} else {
			resp.RunID = run.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run history not configured")
		return
	}
	filter := store.RunFilter{Source: r.URL.Query().Get("source"), Limit: 50}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}
	runs, err := s.store.ListRuns(r.Context(), filter)
	if err != nil {
		zap.L().Error("server: list runs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
