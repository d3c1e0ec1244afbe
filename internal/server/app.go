package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielledeleo/gitleaf"
	"github.com/danielledeleo/gitleaf/blog"
	"github.com/danielledeleo/gitleaf/blog/service"
)

// App holds all application dependencies and services.
type App struct {
	Config *blog.Config
	Pages  service.PageService
}

// NewApp wires the page service for cfg. Templates come from the embedded
// defaults overlaid with <base_dir>/templates.
func NewApp(cfg *blog.Config) (*App, error) {
	pages, err := service.NewFromConfig(cfg, gitleaf.NewContentFS(cfg.BaseDir))
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Pages: pages}, nil
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// SlogLoggingMiddleware logs HTTP requests using slog
func SlogLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", wrapped.status,
			"size", wrapped.size,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}
