// Package api provides the REST status API for the hunter agent.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ternarybob/hunter/internal/agent"
	"github.com/ternarybob/hunter/internal/analyzer"
	"github.com/ternarybob/hunter/internal/config"
	"github.com/ternarybob/hunter/internal/notify"
	"github.com/ternarybob/hunter/internal/store"
)

// Server represents the API server.
type Server struct {
	cfg      *config.Config
	router   chi.Router
	store    *store.Store
	poller   *agent.Poller
	analyzer *analyzer.Analyzer
	notifier *notify.Notifier
	started  time.Time
}

// NewServer creates a new API server.
func NewServer(cfg *config.Config, st *store.Store, p *agent.Poller, a *analyzer.Analyzer, n *notify.Notifier) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		poller:   p,
		analyzer: a,
		notifier: n,
		started:  time.Now().UTC(),
	}

	s.setupRouter()
	return s
}

// setupRouter configures all routes.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/status", s.handleStatus)

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", s.handleListAccounts)
		r.Get("/{id}", s.handleGetAccount)
	})

	s.router = r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
