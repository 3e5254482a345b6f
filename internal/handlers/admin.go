package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/services"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/storage"
)

// AdminHandler exposes monitoring endpoints
type AdminHandler struct {
	sessions    *services.SessionManager
	completions storage.CompletionStore
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(sessions *services.SessionManager, completions storage.CompletionStore) *AdminHandler {
	return &AdminHandler{
		sessions:    sessions,
		completions: completions,
	}
}

// Sessions returns the current session statistics snapshot
func (h *AdminHandler) Sessions(c *fiber.Ctx) error {
	return c.JSON(h.sessions.Stats())
}

// Completions returns recent completion records
func (h *AdminHandler) Completions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	records, err := h.completions.GetCompletions(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	total, err := h.completions.CountCompletions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"total":   total,
		"records": records,
	})
}
