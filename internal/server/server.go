// Package server exposes the lookup flow over HTTP. The mux is constructed
// explicitly and handed to the caller; there is no package-level state.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/kapu/number-lookup-go/internal/domain"
	"github.com/kapu/number-lookup-go/internal/phone"
	"github.com/kapu/number-lookup-go/internal/service/database"
	"github.com/kapu/number-lookup-go/internal/service/lookup"
	"go.uber.org/zap"
)

const healthNote = "lightweight number search (net/http+goquery)"

// HistoryReader serves the optional /history endpoint.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]database.HistoryEntry, error)
}

type Server struct {
	lookup      *lookup.Service
	history     HistoryReader
	countryCode string
	logger      *zap.Logger
}

func New(lookupSvc *lookup.Service, countryCode string, logger *zap.Logger) *Server {
	return &Server{
		lookup:      lookupSvc,
		countryCode: countryCode,
		logger:      logger,
	}
}

// WithHistory enables the /history endpoint.
func (s *Server) WithHistory(h HistoryReader) *Server {
	s.history = h
	return s
}

// Routes builds the request handler: an explicit mux wrapped in CORS and
// request-logging middleware.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("POST /search", s.handleQuickSearch)
	mux.HandleFunc("GET /history", s.handleHistory)

	return s.withCORS(s.withLogging(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, map[string]any{"ok": true, "note": healthNote}, http.StatusOK)
}

// handleSearch is the scraping variant: normalize, run the full platform
// pass, return the aggregated report.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("number")
	if raw == "" {
		respondJSON(w, map[string]string{"error": "missing number parameter, e.g. /search?number=919876543210"}, http.StatusBadRequest)
		return
	}

	normalized := phone.Normalize(raw, s.countryCode)
	if normalized == "" {
		respondJSON(w, map[string]string{"error": "invalid number"}, http.StatusBadRequest)
		return
	}

	report := s.lookup.Lookup(r.Context(), domain.Query{Raw: raw, Normalized: normalized})
	respondJSON(w, report, http.StatusOK)
}

// handleQuickSearch is the link-building variant: no fetching, just the
// constructed profile URLs.
func (s *Server) handleQuickSearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Number string `json:"number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, map[string]string{"error": "invalid JSON body"}, http.StatusBadRequest)
		return
	}

	normalized := phone.Normalize(body.Number, s.countryCode)
	if normalized == "" {
		respondJSON(w, map[string]string{"error": "missing or invalid number"}, http.StatusBadRequest)
		return
	}

	respondJSON(w, map[string]any{"results": s.lookup.QuickLinks(normalized)}, http.StatusOK)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondJSON(w, map[string]string{"error": "history is disabled"}, http.StatusNotFound)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("History query failed", zap.Error(err))
		respondJSON(w, map[string]string{"error": "history unavailable"}, http.StatusInternalServerError)
		return
	}

	respondJSON(w, map[string]any{"entries": entries}, http.StatusOK)
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
