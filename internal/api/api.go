// Package api implements the HTTP surface uldserver exposes: solve
// requests backed by the request cache/store, and a metrics endpoint.
// Routed with github.com/go-chi/chi/v5.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/piwi3910/uldsolve/internal/cache"
	"github.com/piwi3910/uldsolve/internal/metrics"
	"github.com/piwi3910/uldsolve/internal/model"
	"github.com/piwi3910/uldsolve/internal/solve"
)

// Server holds the dependencies the HTTP handlers need: the request
// store, the solver configuration baseline, and a logger.
type Server struct {
	store  cache.Store
	cfg    model.SolverConfig
	logger *log.Logger
}

// NewServer builds a Server backed by store, using cfg as the
// baseline solver configuration for every request.
func NewServer(store cache.Store, cfg model.SolverConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: store, cfg: cfg, logger: logger}
}

// Routes returns the chi router implementing the request/response API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/", s.handleHealth)
	r.Post("/api", s.handleSolve)
	r.Post("/api/request", s.handleGetRequest)
	r.Get("/api/requests", s.handleListRequests)
	r.Post("/api/metrics", s.handleMetrics)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// solveRequestBody is the wire shape of a solve request: a package and
// ULD manifest plus an optional mock flag that skips the genetic
// search in favor of the constructive placer.
type solveRequestBody struct {
	Packages []model.Package `json:"packages"`
	ULDs     []model.ULD     `json:"ulds"`
	Mock     bool            `json:"mock,omitempty"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var body solveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "decode request body: "+err.Error())
		return
	}

	canonical, err := json.Marshal(body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "canonicalize request: "+err.Error())
		return
	}
	hash, err := cache.HashRequest(body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash request: "+err.Error())
		return
	}

	ctx := r.Context()
	existing, err := s.store.GetByHash(ctx, hash)
	if err == nil {
		if existing.Status == cache.StatusCompleted {
			writeJSON(w, http.StatusOK, map[string]any{
				"status": "processed",
				"result": json.RawMessage(existing.Result),
			})
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{
			"status":     "processing",
			"request_id": existing.ID,
		})
		return
	}

	req, err := s.store.Insert(ctx, hash, canonical)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "insert request: "+err.Error())
		return
	}

	go s.runSolve(req.ID, body)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":     "processing",
		"request_id": req.ID,
	})
}

func (s *Server) runSolve(requestID int64, body solveRequestBody) {
	ctx := context.Background()

	var plan solve.Plan
	var err error
	if body.Mock {
		plan, err = solve.SolveFast(body.Packages, body.ULDs, s.cfg)
	} else {
		plan, err = solve.Solve(body.Packages, body.ULDs, s.cfg)
	}
	var infeasible *model.InfeasibleError
	if errors.As(err, &infeasible) {
		s.logger.Warn("solve infeasible", "request_id", requestID, "unplaced_priority", infeasible.UnplacedPriorityIDs)
	} else if err != nil {
		s.logger.Error("solve failed", "request_id", requestID, "err", err)
		return
	}

	result, err := json.Marshal(plan)
	if err != nil {
		s.logger.Error("marshal solve result", "request_id", requestID, "err", err)
		return
	}
	if err := s.store.Complete(ctx, requestID, result); err != nil {
		s.logger.Error("complete request", "request_id", requestID, "err", err)
	}
}

type requestLookupBody struct {
	ID int64 `json:"id"`
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	var body requestLookupBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "decode request body: "+err.Error())
		return
	}

	requests, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list requests: "+err.Error())
		return
	}

	for _, req := range requests {
		if req.ID != body.ID {
			continue
		}
		if req.Status != cache.StatusCompleted {
			writeJSON(w, http.StatusMovedPermanently, map[string]string{"status": "not_ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "processed",
			"result": json.RawMessage(req.Result),
		})
		return
	}
	writeError(w, http.StatusNotFound, "request not found")
}

type requestSummary struct {
	ID        int64        `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Status    cache.Status `json:"status"`
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list requests: "+err.Error())
		return
	}

	summaries := make([]requestSummary, len(requests))
	for i, req := range requests {
		summaries[i] = requestSummary{ID: req.ID, Timestamp: req.Timestamp, Status: req.Status}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// metricsRequestBody supplies the ULD and placements a metrics report
// is computed over, mirroring the original server's metrics request.
type metricsRequestBody struct {
	ULD        model.ULD         `json:"uld"`
	Packages   []model.Package   `json:"packages"`
	Placements []model.Placement `json:"placements"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var body metricsRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "decode request body: "+err.Error())
		return
	}

	packsByID := make(map[string]model.Package, len(body.Packages))
	for _, pk := range body.Packages {
		packsByID[pk.ID] = pk
	}

	report := metrics.Compute(body.ULD, body.Placements, packsByID)
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
