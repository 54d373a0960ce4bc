// Package httpapi assembles the service router: platform middleware, health
// and metrics endpoints, and the authenticated training API.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	platformmetrics "tutela/internal/platform/metrics"
	"tutela/internal/platform/token"
	"tutela/internal/training/handler"
	"tutela/pkg/platform/middleware/auth"
	"tutela/pkg/platform/middleware/requestid"
	"tutela/pkg/platform/middleware/requesttime"
)

// NewRouter wires all endpoints. The training API sits behind JWT auth and
// the delegate role; health and metrics stay open.
func NewRouter(training *handler.Handler, tokens *token.Service, httpMetrics *platformmetrics.HTTP, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(token.NewMiddlewareAdapter(tokens), logger))
		r.Use(auth.RequireRole(token.RoleDelegate, logger))
		training.Register(r)
	})

	return r
}
