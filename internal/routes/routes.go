package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/config"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/handlers"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, cfg *config.Config,
	health *handlers.HealthHandler,
	whatsapp *handlers.WhatsAppHandler,
	admin *handlers.AdminHandler) {

	app.Get("/", health.Info)
	app.Get("/health", health.Check)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	if cfg.IsDevelopment() || cfg.DisableWebhookValidation {
		// Development: Skip validation for ngrok
		webhooks.Post("/whatsapp", whatsapp.HandleWebhook)
		log.Println("⚠️  WhatsApp webhook validation DISABLED")
	} else {
		// Production: Validate webhook signature
		webhooks.Post("/whatsapp", middleware.ValidateTwilioSignature(cfg.TwilioAuthToken), whatsapp.HandleWebhook)
	}

	// ========== TEST ROUTES (Development Only) ==========
	if cfg.IsDevelopment() {
		app.Post("/test/whatsapp", whatsapp.HandleTestWebhook)
	}

	// ========== ADMIN ROUTES ==========
	adminGroup := app.Group("/admin")
	adminGroup.Get("/sessions", admin.Sessions)
	adminGroup.Get("/completions", admin.Completions)
}
