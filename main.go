package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/SIMBACM/BaseForWhatsappProj/database"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/config"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/handlers"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/jobs"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/models"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/routes"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/services"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/storage"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Completion records go to Postgres unless the memory store is forced
	var completions storage.CompletionStore
	if cfg.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		completions = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		if err := database.Connect(cfg); err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		log.Println("🔄 Running database migrations...")
		if err := database.DB.AutoMigrate(&models.CompletionRecord{}); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		completions = storage.NewDatabaseStore(database.DB)
	}

	// Outbound sender falls back to logging when Twilio is not configured
	var sender services.MessageSender
	twilioService, err := services.NewTwilioService(
		cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppFrom)
	if err != nil {
		log.Printf("⚠️  Twilio service not initialized: %v", err)
		sender = services.NewLogSender()
	} else {
		log.Println("✅ Twilio service initialized")
		sender = twilioService
	}

	sessionManager := services.NewSessionManager(completions, cfg.SessionTTL)
	conversation := services.NewConversationService(sessionManager, sender)

	cleanupJob := jobs.NewCleanupJob(sessionManager, cfg.SweepInterval)
	cleanupJob.Start()

	app := fiber.New(fiber.Config{
		AppName: "WhatsApp Feedback Service v" + version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	healthHandler := handlers.NewHealthHandler(version, cfg, completions)
	whatsappHandler := handlers.NewWhatsAppHandler(conversation)
	adminHandler := handlers.NewAdminHandler(sessionManager, completions)

	routes.SetupRoutes(app, cfg, healthHandler, whatsappHandler, adminHandler)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		cleanupJob.Stop()
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 Feedback service starting on port %s", cfg.Port)
	log.Printf("🌍 Environment: %s", cfg.Environment)
	log.Printf("📱 WhatsApp: %s", whatsAppStatus(cfg))
	log.Printf("⏲️  Session TTL: %v, sweep every %v", cfg.SessionTTL, cfg.SweepInterval)
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func whatsAppStatus(cfg *config.Config) string {
	if !cfg.TwilioConfigured() {
		return "Not configured"
	}
	return "Configured"
}
