package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const readinessTimeout = 3 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// HealthHandler serves the liveness and readiness checks.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready. It reports 503 while the database
// cannot be reached.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := readinessResponse{Status: "ok", Dependencies: map[string]dependencyStatus{}}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("dependency", "mysql").Msg("readiness check failed")
		resp.Dependencies["mysql"] = dependencyStatus{Status: "unhealthy", Error: "unreachable"}
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	} else {
		resp.Dependencies["mysql"] = dependencyStatus{Status: "ok"}
	}

	writeJSON(w, status, resp)
}
