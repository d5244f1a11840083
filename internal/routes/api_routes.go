package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"warehouse/loadmap/internal/api"
	"warehouse/loadmap/internal/middleware"
)

// RegisterAPIRoutes registers the health check and the load map REST surface.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, upSince time.Time) {
	limiter := middleware.NewRateLimiter(rate.Limit(deps.Config.RateLimit.PerSecond), deps.Config.RateLimit.Burst)
	handlers := api.NewLoadMapHandler(deps)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", api.HealthCheckHandler(deps.Services.LoadMap, upSince))

		r.Route("/loadmaps", func(r chi.Router) {
			r.Use(limiter.Middleware)

			r.Get("/", handlers.List)
			r.Post("/", handlers.Create)
			r.Get("/{id}", handlers.Get)
			r.Put("/{id}", handlers.Replace)
			r.Delete("/{id}", handlers.Delete)
			r.Get("/{id}/export.pdf", handlers.ExportPDF)
			r.Get("/{id}/export.xlsx", handlers.ExportXLSX)
		})
	})
}
