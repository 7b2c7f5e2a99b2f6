package httpapi

import (
	"net/http"
	"time"

	"catalyst/internal/http/handlers"
	"catalyst/internal/infra"
	"catalyst/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the HTTP surface: the dashboard page, the health probe,
// and the upload endpoint.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	// Middlewares dasar
	r.Use(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recover(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	// Dashboard
	r.Get("/", app.Index)

	// Health
	r.Get("/v1/healthz", app.Health)

	// Analysis
	r.Post("/v1/upload", app.Analyze)

	return r
}
