// Package server exposes the report pipeline over HTTP for drafting, review and publishing.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ToroData/ai-radar-linkedin/report"
	"github.com/ToroData/ai-radar-linkedin/store"
)

const defaultRunTimeout = 15 * time.Minute

// Server exposes the review workflow over HTTP. Live drafts are kept in memory.
type Server struct {
	pipeline   *report.Pipeline
	archive    store.Store
	results    *resultStore
	logger     *zap.Logger
	runTimeout time.Duration
	server     *http.Server
}

// resultStore keeps drafts whose review session is still live.
type resultStore struct {
	mu      sync.Mutex
	results map[string]*report.Result
	order   []string
}

func newResultStore() *resultStore {
	return &resultStore{results: make(map[string]*report.Result)}
}

func (s *resultStore) set(res *report.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[res.ID]; !ok {
		s.order = append(s.order, res.ID)
	}
	s.results[res.ID] = res
}

func (s *resultStore) get(id string) (*report.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.results[id]
	return res, ok
}

// list returns live results newest first.
func (s *resultStore) list() []*report.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*report.Result, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.results[s.order[i]])
	}
	return out
}

// New builds a server around pipeline. The pipeline's archive, if any, serves
// reports from earlier processes.
func New(pipeline *report.Pipeline, logger *zap.Logger) (*Server, error) {
	if pipeline == nil {
		return nil, errors.New("report pipeline required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		pipeline:   pipeline,
		archive:    pipeline.Archive,
		results:    newResultStore(),
		logger:     logger,
		runTimeout: defaultRunTimeout,
	}, nil
}

// Routes returns the router with the report API, /health and /metrics mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logMiddleware)

	r.Route("/api/reports", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/preview", s.handlePreview)
		r.Post("/{id}/revise", s.handleRevise)
		r.Post("/{id}/publish", s.handlePublish)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", s.handleHealth)
	return r
}

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
