package web

import (
	"bufio"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/vbonduro/photowall/internal/imagecache"
	"github.com/vbonduro/photowall/internal/web/static"
)

// API is the part of the photo API server the handlers talk to directly.
type API interface {
	FetchImage(ctx context.Context, key string) (io.ReadCloser, string, error)
	Upload(ctx context.Context, contentType string, body io.Reader) error
}

// LiveHandler serves the /live WebSocket endpoint.
type LiveHandler interface {
	http.Handler
	Len() int
}

// Options are the settings pages are rendered with.
type Options struct {
	AdminPath  string
	Categories []string
	TimerStart time.Time
}

type Server struct {
	api       API
	cache     imagecache.Cache
	live      LiveHandler
	sessions  sessions.Store
	templates embed.FS
	opts      Options
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

func NewServer(api API, cache imagecache.Cache, live LiveHandler, store sessions.Store, tmpl embed.FS, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		api:       api,
		cache:     cache,
		live:      live,
		sessions:  store,
		templates: tmpl,
		opts:      opts,
		mux:       http.NewServeMux(),
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"inc": func(i int) int { return i + 1 },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleGallery)
	s.mux.HandleFunc("GET "+s.opts.AdminPath, s.handleAdmin)
	s.mux.Handle("GET /live", s.live)
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static.FS)))
	s.mux.HandleFunc("GET /uploads/{folder}/{file}", s.handleImage)
	s.mux.HandleFunc("POST /admin/upload", s.handleUpload)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// securityHeaders adds security headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self'; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the live endpoint take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is done and then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"status":"ok","live_sessions":%d}`, s.live.Len())
}

func closeWithLog(c io.Closer, what string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close "+what, "error", err)
	}
}
