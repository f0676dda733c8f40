// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the scoring pipelines over HTTP.
//
// Routes:
//
//	POST /calculate_basic_score          financial profile → {score, risk_category, risk_color}
//	POST /calculate_psychometric_score   questionnaire → {psychometric_score, ...}
//	POST /calculate_news_credit_score    {query} → {news_sentiment_score, ...} or {error}
//	POST /assess                         applicant → assessment
//	GET  /health
//	GET  /metrics
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pdiddy/credit-engine/internal/assess"
	"github.com/pdiddy/credit-engine/internal/metrics"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8000"

// DefaultRequestTimeout bounds one request when none is configured.
const DefaultRequestTimeout = 60 * time.Second

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Config holds server dependencies and settings.
type Config struct {
	Server  types.ServerConfig
	Version string
	Log     zerolog.Logger
	Metrics *metrics.Recorder

	// News scores news queries. Nil disables the news route (503).
	News assess.NewsScorer

	// Assessor runs whole-applicant assessments. When nil one is built
	// from News and Metrics.
	Assessor *assess.Assessor
}

// Server is the HTTP transport.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	validate *validator.Validate

	version  string
	metrics  *metrics.Recorder
	news     assess.NewsScorer
	assessor *assess.Assessor
}

// New builds a Server with middleware and routes installed.
func New(cfg Config) *Server {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Assessor == nil {
		cfg.Assessor = assess.New(cfg.News, cfg.Log, assess.WithMetrics(cfg.Metrics))
	}

	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		validate: newValidator(),
		version:  cfg.Version,
		metrics:  cfg.Metrics,
		news:     cfg.News,
		assessor: cfg.Assessor,
	}

	s.setupMiddleware(cfg.Server.RequestTimeout)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware(timeout time.Duration) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(timeout))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Post("/calculate_basic_score", s.handleFinancial)
	s.router.Post("/calculate_psychometric_score", s.handlePsychometric)
	s.router.Post("/calculate_news_credit_score", s.handleNews)
	s.router.Post("/assess", s.handleAssess)
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens and serves until Shutdown. It returns http.ErrServerClosed
// after a graceful shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Str("version", s.version).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		reqLog := s.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		next.ServeHTTP(ww, r.WithContext(reqLog.WithContext(r.Context())))

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(route, status)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
