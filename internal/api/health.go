package api

import (
	"context"
	"net/http"
	"time"

	"warehouse/loadmap/internal/constants"
	"warehouse/loadmap/internal/models/dtos/responses"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler handles GET /api/health.
func HealthCheckHandler(db Pinger, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := make(map[string]responses.ServiceStatus)

		dbStatus := "ok"
		dbDetails := "Database connected"
		if err := db.Ping(ctx); err != nil {
			dbStatus = "down"
			dbDetails = constants.MsgDatabaseFailed + ": " + err.Error()
		}
		services["database"] = responses.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now().UTC()
		resp := responses.HealthCheckResponse{
			Status:   overallStatus,
			Time:     now.Format(time.RFC3339),
			Services: services,
			UpSince:  upSince.UTC(),
			Uptime:   now.Sub(upSince).Round(time.Second).String(),
		}

		status := http.StatusOK
		if overallStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		respondWithJSON(w, status, resp)
	}
}
