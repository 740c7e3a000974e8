// Package chi contains the HTTP transport: request decoding, validation,
// and domain error mapping for the rag-search API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/RajputKashish/endee-rag-search/internal/domain"
	healthuc "github.com/RajputKashish/endee-rag-search/internal/usecase/health"
	ingestuc "github.com/RajputKashish/endee-rag-search/internal/usecase/ingest"
	searchuc "github.com/RajputKashish/endee-rag-search/internal/usecase/search"
)

// ServiceName identifies this service in health responses.
const ServiceName = "rag-search"

// topK bounds for /query.
const (
	defaultTopK = 5
	minTopK     = 1
	maxTopK     = 50
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server carries the HTTP handlers for the rag-search API.
type Server struct {
	ingest        *ingestuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	webDir        string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ingest *ingestuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	webDir string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ingest: ingest,
		search: search,
		health: health,
		webDir: webDir,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNoDocuments, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderError),
		sentinelHandler(domain.ErrIndexNotFound, http.StatusBadGateway, codeVectorStoreError),
		sentinelHandler(domain.ErrVectorStoreError, http.StatusBadGateway, codeVectorStoreError),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/ingest", s.Ingest)
	r.Post("/query", s.Query)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, status, healthResponse{
		Status:  string(report.Status),
		Service: ServiceName,
		Checks:  checks,
	})
}

// Root handles GET /. Serves the local search page when present,
// otherwise a placeholder.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	page := filepath.Join(s.webDir, "index.html")
	if data, err := os.ReadFile(page); err == nil {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<h1>RAG Search API</h1><p>Use /health, /ingest, /query</p>"))
}

// Ingest handles POST /ingest.
func (s *Server) Ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "No documents provided")
		return
	}

	docs := make([]domain.Document, len(req.Documents))
	for i, d := range req.Documents {
		doc, err := domain.NewDocument(d.ID, d.Text, d.Meta)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		docs[i] = doc
	}

	count, err := s.ingest.Ingest(r.Context(), docs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{Status: "ok", Ingested: count})
}

// Query handles POST /query. topK bounds are enforced here, before any
// embedding work happens.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.QueryText == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query_text is required")
		return
	}

	topK := defaultTopK
	if req.TopK != nil {
		topK = *req.TopK
		if topK < minTopK || topK > maxTopK {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "top_k must be between 1 and 50")
			return
		}
	}

	matches, err := s.search.Query(r.Context(), req.QueryText, topK, domain.Filter(req.Filters))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]queryResult, len(matches))
	for i, m := range matches {
		results[i] = queryResult{ID: m.ID, Similarity: m.Similarity, Meta: m.Meta}
	}

	writeJSON(w, http.StatusOK, queryResponse{Results: results})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeSentinels are domain errors whose text is safe to expose to clients.
var safeSentinels = []error{
	domain.ErrNoDocuments,
	domain.ErrIndexNotFound,
	domain.ErrEmbeddingProviderError,
	domain.ErrVectorStoreError,
}

func safeDomainMessage(err error) string {
	for _, s := range safeSentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
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
