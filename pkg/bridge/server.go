package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/pathstack-dev/pathstack/pkg/router"
)

// Server bridges a router to HTTP/WebSocket clients.
type Server struct {
	router *router.Router
	logger *slog.Logger

	addr      string
	rateLimit rate.Limit
	rateBurst int

	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address for Run (default ":8990").
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit sets the per-session limit on inbound navigation
// commands (default 20/s, burst 10).
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(s *Server) {
		s.rateLimit = limit
		s.rateBurst = burst
	}
}

// WithCheckOrigin sets the WebSocket origin check. By default all
// origins are accepted; the bridge is meant for same-host development
// and internal tooling.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = check
	}
}

// New builds a bridge server over r.
func New(r *router.Router, opts ...Option) *Server {
	s := &Server{
		router:    r,
		logger:    slog.Default(),
		addr:      ":8990",
		rateLimit: rate.Limit(20),
		rateBurst: 10,
		sessions:  make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler: /healthz, /route, /navigate, /ws.
func (s *Server) Handler() http.Handler {
	m := chi.NewRouter()
	m.Get("/healthz", s.handleHealth)
	m.Get("/route", s.handleRoute)
	m.Post("/navigate", s.handleNavigate)
	m.Get("/ws", s.handleWS)
	return m
}

// Run serves until ctx is canceled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("bridge listening", "addr", s.addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.closeSessions()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshotRoute(s.router.Route())); err != nil {
		s.logger.Error("route encode failed", "error", err)
	}
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "invalid command", http.StatusBadRequest)
		return
	}
	if cmd.Path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	var opts []router.NavigateOption
	if cmd.Replace {
		opts = append(opts, router.WithReplace())
	}
	if err := s.router.Navigate(cmd.Path, opts...); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(s, conn)
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.logger.Info("session connected", "session", sess.id)

	go sess.writeLoop()
	sess.readLoop()

	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	s.logger.Info("session closed", "session", sess.id)
}

// closeSessions force-closes all live sessions during shutdown.
func (s *Server) closeSessions() {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}

// SessionCount returns the number of connected WebSocket sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
