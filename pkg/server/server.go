package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/coursebook/pkg/catalog"
	"github.com/vango-dev/coursebook/pkg/middleware"
	"github.com/vango-dev/coursebook/pkg/search"
)

// Server is the coursebook HTTP/WebSocket server.
type Server struct {
	store  *catalog.Store
	engine *search.Engine
	config *Config

	router   chi.Router
	upgrader websocket.Upgrader

	metrics *middleware.Metrics
	tracing func(http.Handler) http.Handler

	mu       sync.Mutex
	sessions map[string]*liveSession

	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the server configuration. Unset fields take defaults.
func WithConfig(c *Config) Option {
	return func(s *Server) {
		s.config = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics enables Prometheus request and session metrics.
func WithMetrics(m *middleware.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTracing installs a tracing middleware, usually middleware.Tracing().
func WithTracing(mw func(http.Handler) http.Handler) Option {
	return func(s *Server) {
		s.tracing = mw
	}
}

// WithEngine overrides the search engine built from the store.
func WithEngine(e *search.Engine) Option {
	return func(s *Server) {
		s.engine = e
	}
}

// New creates a Server over store.
func New(store *catalog.Store, opts ...Option) *Server {
	s := &Server{
		store:    store,
		sessions: make(map[string]*liveSession),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.config = s.config.withDefaults()
	s.logger = s.logger.With("component", "server")
	if s.engine == nil {
		s.engine = search.NewEngine(store)
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  s.config.ReadBufferSize,
		WriteBufferSize: s.config.WriteBufferSize,
		CheckOrigin:     s.config.CheckOrigin,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if s.tracing != nil {
		r.Use(s.tracing)
	}
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/taxonomy", s.handleTaxonomy)
		r.Get("/courses", s.handleCourses)
		r.Get("/courses/highlights", s.handleHighlights)
		r.Get("/courses/{id}", s.handleCourse)
	})
	r.Get("/live/search", s.HandleLive)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound(r.URL.Path))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router returns the underlying router so callers can mount extra
// endpoints such as /metrics.
func (s *Server) Router() chi.Router {
	return s.router
}

// Run listens on addr and blocks until ctx is cancelled or the listener
// fails. Cancellation triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", addr, "courses", s.store.Len())
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes live sessions and gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := make([]*liveSession, 0, len(s.sessions))
	for _, ls := range s.sessions {
		sessions = append(sessions, ls)
	}
	s.mu.Unlock()
	for _, ls := range sessions {
		ls.close(websocket.CloseGoingAway, "server shutting down")
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// SessionCount returns the number of open live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) addSession(ls *liveSession) {
	s.mu.Lock()
	s.sessions[ls.id] = ls
	s.mu.Unlock()
	s.metrics.SessionOpened()
}

func (s *Server) removeSession(ls *liveSession) {
	s.mu.Lock()
	_, ok := s.sessions[ls.id]
	delete(s.sessions, ls.id)
	s.mu.Unlock()
	if ok {
		s.metrics.SessionClosed()
	}
}
