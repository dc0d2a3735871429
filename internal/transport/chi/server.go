// Package chi exposes the ranking pipeline over HTTP with a chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/qbet/internal/domain"
	"github.com/kailas-cloud/qbet/internal/domain/search/filter"
	logpkg "github.com/kailas-cloud/qbet/internal/logger"
	healthuc "github.com/kailas-cloud/qbet/internal/usecase/health"
	searchuc "github.com/kailas-cloud/qbet/internal/usecase/search"
	"github.com/kailas-cloud/qbet/internal/usecase/stats"
)

const (
	// DefaultMaxQueryLength bounds the free-text query, in runes.
	DefaultMaxQueryLength = 500
	maxBodyBytes          = 64 << 10
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Options tune request validation and response shaping.
type Options struct {
	MaxQueryLength int
	TopSkills      int
}

// BatchSearcher runs several queries in one call.
type BatchSearcher interface {
	Run(ctx context.Context, queries []string, extra filter.Expression) ([]searchuc.Result, error)
}

// Server serves the search API.
type Server struct {
	search        *searchuc.Service
	batch         BatchSearcher
	catalog       searchuc.CandidateSource
	health        *healthuc.Service
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	catalog searchuc.CandidateSource,
	health *healthuc.Service,
	opts Options,
	logger *zap.Logger,
) *Server {
	if opts.MaxQueryLength <= 0 {
		opts.MaxQueryLength = DefaultMaxQueryLength
	}
	if opts.TopSkills <= 0 {
		opts.TopSkills = stats.DefaultTopSkills
	}
	s := &Server{
		search:  search,
		catalog: catalog,
		health:  health,
		opts:    opts,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusServiceUnavailable, codeUnavailable),
		sentinelHandler(domain.ErrRecognizerUnavailable, http.StatusBadGateway, codeBadGateway),
	}
	return s
}

// WithBatch enables POST /v1/search/batch.
func (s *Server) WithBatch(b BatchSearcher) *Server {
	s.batch = b
	return s
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.validateQuery(req.Query); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	extra, err := req.Filters.expression()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(s.search.Search(r.Context(), req.Query, extra)))
}

// SearchBatch handles POST /v1/search/batch.
func (s *Server) SearchBatch(w http.ResponseWriter, r *http.Request) {
	if s.batch == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "batch search is disabled")
		return
	}

	var req BatchSearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	r = r.WithContext(logpkg.With(r.Context(), zap.Int("batch_size", len(req.Queries))))
	for i, q := range req.Queries {
		if err := s.validateQuery(q); err != nil {
			s.handleDomainError(w, r, fmt.Errorf("queries[%d]: %w", i, err))
			return
		}
	}
	extra, err := req.Filters.expression()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results, err := s.batch.Run(r.Context(), req.Queries, extra)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	resp := BatchSearchResponse{Results: make([]SearchResponse, len(results))}
	for i, res := range results {
		resp.Results[i] = toSearchResponse(res)
	}
	writeJSON(w, http.StatusOK, resp)
}

func toSearchResponse(res searchuc.Result) SearchResponse {
	return SearchResponse{
		Intent: IntentToBody(res.Intent),
		Items:  CandidatesToBody(res.Items),
		Stats:  res.Stats,
	}
}

// decodeBody decodes a bounded JSON body into v, rejecting unknown fields.
// On failure it writes the 400 answer and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// ListCandidates handles GET /v1/candidates?limit=N.
func (s *Server) ListCandidates(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid format for parameter limit")
		return
	}
	if limit != nil && *limit < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be non-negative")
		return
	}

	cands, err := s.catalog.Candidates(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	total := len(cands)
	if limit != nil && *limit < total {
		cands = cands[:*limit]
	}
	writeJSON(w, http.StatusOK, CandidateListResponse{Items: CandidatesToBody(cands), Total: total})
}

// Stats handles GET /v1/stats?top=N over the whole catalog.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	var top *int
	if err := runtime.BindQueryParameter("form", true, false, "top", r.URL.Query(), &top); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid format for parameter top")
		return
	}
	topN := s.opts.TopSkills
	if top != nil {
		if *top < 0 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "top must be non-negative")
			return
		}
		topN = *top
	}

	cands, err := s.catalog.Candidates(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Compute(cands, topN))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) validateQuery(q string) error {
	if !utf8.ValidString(q) {
		return fmt.Errorf("%w: query is not valid UTF-8", domain.ErrInvalidQuery)
	}
	if n := utf8.RuneCountInString(q); n > s.opts.MaxQueryLength {
		return fmt.Errorf("%w: query has %d characters, maximum is %d",
			domain.ErrInvalidQuery, n, s.opts.MaxQueryLength)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a client-safe message. Validation errors are built
// from request data and returned in full; everything else collapses to its sentinel.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) || errors.Is(err, domain.ErrInvalidFilter) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrSourceUnavailable,
		domain.ErrRecognizerUnavailable,
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

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContextOr(r.Context(), s.logger)
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}
