// Package health contiene el controller para health checks.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dropDatabas3/signup-svc/internal/domain/repository"
	"github.com/dropDatabas3/signup-svc/internal/observability/logger"
)

type readyzResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// HealthController maneja las rutas de health check.
type HealthController struct {
	users repository.UserRepository
}

// NewHealthController crea un nuevo controller de health check.
func NewHealthController(users repository.UserRepository) *HealthController {
	return &HealthController{users: users}
}

// Readyz maneja GET /readyz: verifica que el storage responda.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := readyzResponse{Status: "ready", Storage: "ok"}
	status := http.StatusOK

	if err := c.users.Ping(ctx); err != nil {
		logger.From(ctx).Warn("storage ping failed", logger.Op("HealthController.Readyz"), logger.Err(err))
		resp = readyzResponse{Status: "unavailable", Storage: "down"}
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
