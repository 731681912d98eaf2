package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// Server serves a Directory over HTTP. Construct with NewServer and mount
// Handler on any router.
type Server struct {
	dir          Directory
	logger       *slog.Logger
	pingInterval time.Duration
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPingInterval sets the time between WebSocket pings.
// Default: 30 seconds.
func WithPingInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.pingInterval = d
		}
	}
}

// WithWriteTimeout sets the maximum time to wait when sending a message.
// A client that cannot be written to within this window is dropped.
// Default: 10 seconds.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithCheckOrigin sets the WebSocket origin check. The default accepts
// same-origin requests and clients that send no Origin header.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}

// NewServer creates a Server over the given directory.
func NewServer(dir Directory, opts ...Option) *Server {
	s := &Server{
		dir:          dir,
		logger:       slog.Default(),
		pingInterval: 30 * time.Second,
		writeTimeout: 10 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns an http.Handler for mounting in external routers.
//
// Routes:
//   - GET /values: JSON object of every cell's current value
//   - GET /values/{name}: JSON value of one cell, 404 if unknown
//   - GET /watch: WebSocket change stream
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/debug/cells", live.NewServer(reg).Handler())
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/values", s.handleValues)
	r.Get("/values/{name}", s.handleValue)
	r.Get("/watch", s.handleWatch)
	return r
}

func (s *Server) handleValues(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.values()); err != nil {
		s.logger.Error("encode values failed", "error", err)
	}
}

func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	cell, ok := s.dir.Get(name)
	if !ok {
		http.Error(w, "unknown cell", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cell.GetAny()); err != nil {
		s.logger.Error("encode value failed", "error", err)
	}
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	newClient(s, conn).run()
}

// values captures the current value of every cell in the directory.
func (s *Server) values() map[string]any {
	values := make(map[string]any)
	for _, name := range s.dir.Names() {
		if cell, ok := s.dir.Get(name); ok {
			values[name] = cell.GetAny()
		}
	}
	return values
}
