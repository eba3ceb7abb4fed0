// Package api serves generation, augmentation and evaluation over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aadhamashraf/intentgen/internal/profile"
	"github.com/aadhamashraf/intentgen/internal/service"
)

const (
	serviceName    = "Intent-Based Network Generation API"
	serviceVersion = "2.0.0"

	// maxBodyBytes bounds request bodies; /evaluate accepts whole datasets.
	maxBodyBytes = 32 << 20
)

type Server struct {
	router   chi.Router
	datasets service.DatasetService
	evals    service.EvaluationService
	registry *profile.Registry
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer wires the routes. A nil logger discards request logs; a nil
// registry serves the built-in profiles.
func NewServer(datasets service.DatasetService, evals service.EvaluationService, reg *profile.Registry, logger *slog.Logger) *Server {
	if reg == nil {
		reg = profile.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		router:   chi.NewRouter(),
		datasets: datasets,
		evals:    evals,
		registry: reg,
		logger:   logger,
		now:      time.Now,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/profiles", s.handleProfiles)
	s.router.Post("/generate", s.handleGenerate)
	s.router.Post("/augment", s.handleAugment)
	s.router.Post("/evaluate", s.handleEvaluate)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"dur", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	} else {
		s.logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads a JSON body into dst. An empty body leaves dst unchanged.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
