package live

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub upgrades live connections and tracks their sessions until shutdown.
type Hub struct {
	cfg      Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewHub(cfg Config) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		cfg:    cfg,
		logger: cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// ServeHTTP upgrades the request and starts a session on the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.ctx.Err() != nil {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the request.
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s := newSession(h.ctx, conn, h.cfg)
	if !h.register(s) {
		_ = conn.Close()
		return
	}

	go func() {
		defer h.wg.Done()
		s.writePump()
	}()
	go func() {
		defer h.wg.Done()
		s.loop()
	}()
	go func() {
		defer h.wg.Done()
		defer h.unregister(s)
		s.readPump()
	}()
}

// register adds s and reserves its goroutines. It reports false once
// shutdown has begun.
func (h *Hub) register(s *Session) bool {
	h.mu.Lock()
	if h.ctx.Err() != nil {
		h.mu.Unlock()
		return false
	}
	h.sessions[s.ID] = s
	h.wg.Add(3)
	n := len(h.sessions)
	h.mu.Unlock()
	s.logger.Debug("live session opened", "sessions", n)
	return true
}

func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	n := len(h.sessions)
	h.mu.Unlock()
	s.logger.Debug("live session closed", "sessions", n)
}

// Len returns the number of open sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Shutdown closes every session and waits for their goroutines to exit or
// for ctx to be done.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.cancel()
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
