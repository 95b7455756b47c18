package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Topsis/internal/config"
	"github.com/MikeSquared-Agency/Topsis/internal/hermes"
	"github.com/MikeSquared-Agency/Topsis/internal/mailer"
	"github.com/MikeSquared-Agency/Topsis/internal/store"
)

// NewRouter builds the public API. h and m may be nil when event
// publishing or email delivery is disabled.
func NewRouter(s store.Store, h hermes.Client, m mailer.Sender, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Limits.RateLimitPerMinute))

	runs := NewRunsHandler(s, h, m, cfg.Limits.MaxUploadBytes, logger)
	admin := NewAdminHandler(s)

	r.Get("/", runs.Form)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/runs", runs.Submit)
		r.Post("/runs/explain", runs.Explain)
		r.Get("/runs/{id}", runs.Get)
		r.Get("/runs/{id}/result.csv", runs.Download)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/runs", admin.List)
			r.Delete("/runs/{id}", admin.Delete)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
