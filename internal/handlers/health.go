package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/config"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/storage"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Version     string
	cfg         *config.Config
	completions storage.CompletionStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, cfg *config.Config, completions storage.CompletionStore) *HealthHandler {
	return &HealthHandler{
		Version:     version,
		cfg:         cfg,
		completions: completions,
	}
}

// Info returns the service description for the root endpoint
func (h *HealthHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service":     "WhatsApp Feedback Service",
		"version":     h.Version,
		"environment": h.cfg.Environment,
		"storage":     h.storageType(),
		"whatsapp": fiber.Map{
			"configured": h.cfg.TwilioConfigured(),
		},
		"endpoints": fiber.Map{
			"health":        "/health",
			"webhook":       "/webhook/whatsapp",
			"test_whatsapp": "/test/whatsapp",
			"admin":         "/admin/sessions",
		},
	})
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK

	storageHealthy := true
	if _, err := h.completions.CountCompletions(); err != nil {
		storageHealthy = false
		status = "unhealthy"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status": status,
		"services": fiber.Map{
			"storage": storageHealthy,
			"twilio":  h.cfg.TwilioConfigured(),
		},
	})
}

func (h *HealthHandler) storageType() string {
	if h.cfg.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}
