package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 3 * time.Second

// PingFunc checks a dependency's reachability.
type PingFunc func(ctx context.Context) error

// HealthHandler serves the health, liveness and readiness probes.
type HealthHandler struct {
	mongo PingFunc
	redis PingFunc
}

// NewHealthHandler returns a HealthHandler. redis may be nil when no cache is configured.
func NewHealthHandler(mongo, redis PingFunc) *HealthHandler {
	return &HealthHandler{mongo: mongo, redis: redis}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Health handles GET /health: 200 when MongoDB answers a ping, 503 otherwise.
//
// @Summary      Store health
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Failure      503  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.mongo(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Database: "disconnected"})
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "healthy", Database: "connected"})
}

// Liveness handles GET /health/live. Returns 200 immediately.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readiness handles GET /health/ready, checking MongoDB and Redis.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	check := func(name string, ping PingFunc) {
		if ping == nil {
			return
		}
		if err := ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy"}
			healthy = false
			return
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}
	check("mongodb", h.mongo)
	check("redis", h.redis)

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

// Root handles GET on the API prefix itself.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{Success: true, Status: "API working"})
}
