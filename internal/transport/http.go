// Package transport routes HTTP requests to the MCP endpoint.
package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/personalos/internal/logging"
)

// NewRouter mounts mcp at /mcp and adds a /health probe. Every request passes
// through panic recovery and the session and access-log middleware.
func NewRouter(mcp http.Handler, logger *slog.Logger) *chi.Mux {
	logger = logging.OrDiscard(logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(SessionMiddleware)
	r.Use(AccessLog(logger))

	r.Handle("/mcp", mcp)
	r.Handle("/mcp/*", mcp)
	r.Get("/health", handleHealth)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
