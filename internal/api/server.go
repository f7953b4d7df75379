// Package api exposes the articles engine over HTTP.
//
// The transport layer owns no article semantics: it parses requests,
// invokes engine operations, and maps typed failures to status codes.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/first-storm/henkaiki/internal/articles"
)

// Config holds server configuration.
type Config struct {
	// Addr is the host:port to listen on.
	Addr string
	// DefaultPageSize is used when a request paginates without a limit.
	DefaultPageSize int
	// Version is reported by the health endpoint.
	Version string
}

// Server is the HTTP front end over one articles engine.
type Server struct {
	httpServer      *http.Server
	router          *http.ServeMux
	engine          *articles.Articles
	defaultPageSize int
	version         string
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(cfg Config, engine *articles.Articles) *Server {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}

	s := &Server{
		router:          http.NewServeMux(),
		engine:          engine,
		defaultPageSize: cfg.DefaultPageSize,
		version:         cfg.Version,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      logRequests(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)

	s.router.HandleFunc("GET /api/v1/articles", s.handleListArticles)
	s.router.HandleFunc("GET /api/v1/articles/pages", s.handleArticlePages)
	s.router.HandleFunc("GET /api/v1/articles/{id}", s.handleGetArticle)
	s.router.HandleFunc("POST /api/v1/articles/{id}/refresh", s.handleRefreshArticle)

	s.router.HandleFunc("POST /api/v1/articles/index/refresh", s.handleRefreshIndex)

	s.router.HandleFunc("DELETE /api/v1/articles/cache", s.handleClearCache)
	s.router.HandleFunc("GET /api/v1/articles/cache/stats", s.handleCacheStats)
	s.router.HandleFunc("POST /api/v1/articles/cache/stats/reset", s.handleResetCacheStats)

	s.router.HandleFunc("GET /api/v1/articles/tags/{tag}", s.handleListByTag)
	s.router.HandleFunc("GET /api/v1/articles/tags/{tag}/pages", s.handleTagPages)

	s.router.HandleFunc("GET /api/v1/articles/search", s.handleSearch)
	s.router.HandleFunc("GET /api/v1/articles/search/pages", s.handleSearchPages)
}

// Handler returns the routed handler, exported for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("http server shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}

// logRequests logs every request with method, path, and duration.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}
