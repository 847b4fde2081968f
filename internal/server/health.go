package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/lessonlab/quizroom/internal/store"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func handleHealth(logger *slog.Logger, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "ok", Store: "ok"}
		status := http.StatusOK

		if _, err := st.Load(ctx); err != nil {
			logger.Error("health check failed", "name", "store", "error", err)
			resp = HealthResponse{Status: "degraded", Store: "error"}
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, resp)
	}
}
