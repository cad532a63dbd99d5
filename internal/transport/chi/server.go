// Package chi exposes the candidate search pipeline over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hirelink/talentsearch/internal/domain"
	"github.com/hirelink/talentsearch/internal/domain/prefs"
	healthuc "github.com/hirelink/talentsearch/internal/usecase/health"
	"github.com/hirelink/talentsearch/internal/usecase/recommend"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the candidate search HTTP API.
type Server struct {
	candidates    *recommend.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	candidates *recommend.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		candidates: candidates,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingNotFound, http.StatusNotFound, codeEmbeddingNotFound),
		sentinelHandler(domain.ErrVectorization, http.StatusBadGateway, codeVectorizationError),
		sentinelHandler(domain.ErrSearchTimeout, http.StatusGatewayTimeout, codeSearchTimeout),
	}
	return s
}

// Routes mounts all handlers onto a router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/candidates/recommended/{jobID}", s.RecommendedCandidates)
	r.Get("/api/v1/candidates/search", s.SearchCandidates)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// RecommendedCandidates handles GET /api/v1/candidates/recommended/{jobID}.
func (s *Server) RecommendedCandidates(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if _, err := uuid.Parse(jobID); err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "jobId must be a valid UUID")
		return
	}

	page, pageSize, ok := parsePaging(w, r)
	if !ok {
		return
	}
	filters, ok := parseFilters(w, r)
	if !ok {
		return
	}

	result, err := s.candidates.Recommend(r.Context(), jobID, page, pageSize, filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// SearchCandidates handles GET /api/v1/candidates/search.
func (s *Server) SearchCandidates(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := parsePaging(w, r)
	if !ok {
		return
	}
	filters, ok := parseFilters(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("q")

	result, err := s.candidates.Search(r.Context(), query, page, pageSize, filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// parsePaging reads the required page/pageSize query parameters. Absent or
// non-numeric values are rejected before any downstream call; range checks
// live in the usecase.
func parsePaging(w http.ResponseWriter, r *http.Request) (page, pageSize int, ok bool) {
	page, ok = queryInt(w, r, "page")
	if !ok {
		return 0, 0, false
	}
	pageSize, ok = queryInt(w, r, "pageSize")
	if !ok {
		return 0, 0, false
	}
	return page, pageSize, true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, name+" is required")
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, name+" must be an integer")
		return 0, false
	}
	return v, true
}

// parseFilters builds the preference filter set from query parameters.
func parseFilters(w http.ResponseWriter, r *http.Request) (prefs.Set, bool) {
	q := r.URL.Query()
	var filters []prefs.Filter

	if jobType := q.Get("jobType"); jobType != "" {
		f, err := prefs.NewJobType(jobType)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return prefs.Set{}, false
		}
		filters = append(filters, f)
	}

	if remote := q.Get("remote"); remote != "" {
		v, err := strconv.ParseBool(remote)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "remote must be a boolean")
			return prefs.Set{}, false
		}
		filters = append(filters, prefs.NewRemoteWork(v))
	}

	if location := q.Get("location"); location != "" {
		f, err := prefs.NewLocation(location)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return prefs.Set{}, false
		}
		filters = append(filters, f)
	}

	if maxSalary := q.Get("maxSalary"); maxSalary != "" {
		v, err := strconv.Atoi(maxSalary)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "maxSalary must be an integer")
			return prefs.Set{}, false
		}
		f, err := prefs.NewSalaryCeiling(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return prefs.Set{}, false
		}
		filters = append(filters, f)
	}

	set, err := prefs.NewSet(filters...)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return prefs.Set{}, false
	}
	return set, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrEmbeddingNotFound,
		domain.ErrVectorization,
		domain.ErrSearchTimeout,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
