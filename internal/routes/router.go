package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"warehouse/loadmap/internal/api"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/middleware"
	"warehouse/loadmap/internal/ui"
)

// RegisterRoutes builds the chi router for the REST API, the browser UI and
// the realtime socket. uiHandler may be nil to serve the API only.
func RegisterRoutes(deps *api.Dependencies, uiHandler *ui.UIHandler, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.InFlightMiddleware(deps.Metrics))
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	if !deps.Config.IsProduction() {
		r.Use(middleware.DebugLogging)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	RegisterAPIRoutes(r, deps, upSince)

	if deps.Hub != nil {
		r.Get("/ws", deps.Hub.Handler(originAllowed(deps.Config.CORSOrigins)))
	}

	if uiHandler != nil {
		RegisterUIRoutes(r, uiHandler)
	}

	return r
}

// originAllowed mirrors the CORS origin list for websocket upgrades.
func originAllowed(origins []string) func(string) bool {
	return func(origin string) bool {
		for _, o := range origins {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}
