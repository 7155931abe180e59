package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/tutordash-web/internal/logger"
	"github.com/dtroode/tutordash-web/internal/session"
)

// HealthChecker reports whether the backend is up.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RegistryStats reports live session counters.
type RegistryStats interface {
	Stats() session.RegistryStats
}

// Health reports service and backend health.
type Health struct {
	backend  HealthChecker
	registry RegistryStats
	logger   *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(backend HealthChecker, registry RegistryStats, logger *logger.Logger) *Health {
	return &Health{backend: backend, registry: registry, logger: logger}
}

type healthResponse struct {
	Status   string                `json:"status"`
	Backend  string                `json:"backend"`
	Sessions session.RegistryStats `json:"sessions"`
}

func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	res := healthResponse{
		Status:   "ok",
		Backend:  "ok",
		Sessions: h.registry.Stats(),
	}

	status := http.StatusOK
	if err := h.backend.Health(r.Context()); err != nil {
		h.logger.Warn("Health handler: backend unhealthy", "error", err.Error())
		res.Status = "degraded"
		res.Backend = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, res)
}
