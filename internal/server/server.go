// Package server delivers the browser front end and a read-only kinematics
// API over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/san-kum/twolink/internal/kinematics"
	"github.com/san-kum/twolink/internal/monitoring"
)

//go:embed static
var staticFS embed.FS

const shutdownTimeout = 5 * time.Second

type Config struct {
	Addr string
	// StaticDir serves files from disk instead of the embedded assets.
	StaticDir string
	// L1 and L2 are used when a request omits them.
	L1, L2 float64
}

type Server struct {
	cfg    Config
	server *http.Server
}

func New(cfg Config) (*Server, error) {
	if err := kinematics.ValidateLengths(cfg.L1, cfg.L2); err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg}
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/forward", s.handleForward)
	mux.HandleFunc("/api/inverse", s.handleInverse)
	mux.Handle("/", http.FileServer(s.assets()))
	return LoggingMiddleware(mux)
}

func (s *Server) assets() http.FileSystem {
	if s.cfg.StaticDir != "" {
		monitoring.Logf("serving static files from %s", s.cfg.StaticDir)
		return http.Dir(s.cfg.StaticDir)
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		monitoring.Logf("listening on %s", s.cfg.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	monitoring.Logf("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := s.server.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
		return err
	}
	return nil
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs method, URI, status and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf("[%d] %s %s %.2fms", lrw.statusCode, r.Method, r.RequestURI,
			float64(time.Since(start).Nanoseconds())/1e6)
	})
}
