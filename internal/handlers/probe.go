package handlers

import (
	"github.com/gofiber/fiber/v3"

	"calshare/internal/places"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	cache places.Storage
}

// NewProbeHandler creates a new probe handler checking the given cache
// backend for readiness.
func NewProbeHandler(cache places.Storage) *ProbeHandler {
	return &ProbeHandler{cache: cache}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the application can serve traffic (the configured cache
// backend is reachable).
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.cache != nil {
		if _, err := h.cache.Get("readyz"); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  "cache unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
