// Package server serves the web dashboard: pages for logging hands,
// browsing history and viewing statistics, a JSON API mirroring them, and a
// WebSocket feed that refreshes open dashboards. Every page render re-reads
// the backing file; there is no cache.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokertracker/internal/store"
)

//go:embed templates
var templateFiles embed.FS

// Server wires the store, the aggregate views and the live-refresh hub
// behind an HTTP mux.
type Server struct {
	cfg        Settings
	logger     zerolog.Logger
	store      *store.Store
	hub        *Hub
	validator  *Validator
	templates  *template.Template
	clock      quartz.Clock
	httpServer *http.Server
}

// Option configures optional server collaborators.
type Option func(*Server)

// WithClock overrides the clock used for export filenames.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// New creates a dashboard server around the given store.
func New(logger zerolog.Logger, st *store.Store, cfg Settings, opts ...Option) (*Server, error) {
	templates, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger.With().Str("component", "server").Logger(),
		store:     st,
		hub:       NewHub(logger),
		validator: validator,
		templates: templates,
		clock:     quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the routed HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /log", s.handleLogForm)
	mux.HandleFunc("POST /log", s.handleLogSubmit)
	mux.HandleFunc("GET /history", s.handleHistory)
	mux.HandleFunc("GET /history.csv", s.handleHistoryCSV)
	mux.HandleFunc("GET /api/hands", s.handleAPIHands)
	mux.HandleFunc("POST /api/hands", s.handleAPIHandsCreate)
	mux.HandleFunc("GET /api/stats", s.handleAPIStats)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.hub.HandleWS)
	return mux
}

// Start runs the hub and serves HTTP on the given address, blocking until
// the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	go s.hub.Run()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info().Str("address", addr).Str("data_file", s.store.Path()).Msg("Starting dashboard server")
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and disconnects WebSocket clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
