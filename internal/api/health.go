package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hashicorp-forge/hermes-oai/internal/server"
	"github.com/hashicorp-forge/hermes-oai/pkg/database"
)

type HealthGetResponse struct {
	Status   string               `json:"status"`
	Database *HealthDatabaseStats `json:"database,omitempty"`
}

type HealthDatabaseStats struct {
	MaxOpenConnections int   `json:"maxOpenConnections"`
	OpenConnections    int   `json:"openConnections"`
	InUse              int   `json:"inUse"`
	Idle               int   `json:"idle"`
	WaitCount          int64 `json:"waitCount"`
	WaitDurationMillis int64 `json:"waitDurationMillis"`
}

// HealthHandler reports whether the server can reach its database, along
// with connection pool statistics.
func HealthHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logArgs := []any{
			"method", r.Method,
			"path", r.URL.Path,
		}

		resp := HealthGetResponse{Status: "ok"}

		if srv.DB != nil {
			sqlDB, err := srv.DB.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				defer cancel()
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				srv.Logger.Error("health check failed",
					append([]any{"error", err}, logArgs...)...)
				http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
				return
			}

			stats, err := database.GetPoolStats(srv.DB)
			if err != nil {
				srv.Logger.Warn("error getting pool stats",
					append([]any{"error", err}, logArgs...)...)
			} else {
				resp.Database = &HealthDatabaseStats{
					MaxOpenConnections: stats.MaxOpenConnections,
					OpenConnections:    stats.OpenConnections,
					InUse:              stats.InUse,
					Idle:               stats.Idle,
					WaitCount:          stats.WaitCount,
					WaitDurationMillis: stats.WaitDuration.Milliseconds(),
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		enc := json.NewEncoder(w)
		if err := enc.Encode(resp); err != nil {
			srv.Logger.Error("error encoding health response",
				append([]any{"error", err}, logArgs...)...)
		}
	})
}
