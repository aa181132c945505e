// Package httpapi assembles the public router: middleware chain, health and
// metrics endpoints, and the authenticated registry API.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"landregistry/internal/platform/middleware"
	"landregistry/internal/registry/handler"
	"landregistry/pkg/platform/httputil"
)

// HealthStatus reports the liveness of the process and the mode of the
// best-effort backends.
type HealthStatus struct {
	Status string `json:"status"`
	Ledger string `json:"ledger"`
}

// NewRouter wires all endpoints. Health and metrics are unauthenticated;
// everything else sits behind the bearer-token middleware.
func NewRouter(registry *handler.Handler, validator middleware.JWTValidator, logger *slog.Logger, ledgerDegraded func() bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		status := HealthStatus{Status: "ok", Ledger: "live"}
		if ledgerDegraded() {
			status.Ledger = "degraded"
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))
		registry.Register(r)
	})
	return r
}
