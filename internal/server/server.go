package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/config"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/market"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/storage"
)

// Config holds server dependencies.
type Config struct {
	Port      int
	Log       zerolog.Logger
	Store     *storage.Store
	Provider  market.PriceProvider
	AppConfig *config.Config
	StaticDir string
}

// Server is the HTTP front of the paper trader. Every request loads the
// flat-file state fresh, applies at most one ledger operation and writes
// the state back; nothing is cached between requests.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	store    *storage.Store
	provider market.PriceProvider
	cfg      *config.Config
	now      func() time.Time
}

// New creates the HTTP server with routes and middleware configured.
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		store:    cfg.Store,
		provider: cfg.Provider,
		cfg:      cfg.AppConfig,
		now:      time.Now,
	}

	s.setupMiddleware()
	s.setupRoutes(cfg.StaticDir)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes(staticDir string) {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/picks", s.handleGetPicks)
		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", s.handleGetPortfolio)
			r.Get("/value", s.handleGetValue)
			r.Post("/buy", s.handleBuy)
			r.Post("/sell", s.handleSell)
		})
	})

	if staticDir != "" {
		s.router.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the handler tree, used by httptest in the handler tests.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}
