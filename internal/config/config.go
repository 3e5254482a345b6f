package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config aggregates all environment-driven settings for the service.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	TwilioAccountSID   string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken    string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom string `envconfig:"TWILIO_WHATSAPP_FROM"`

	UseMemoryStore         bool   `envconfig:"USE_MEMORY_STORE" default:"false"`
	DBUser                 string `envconfig:"DB_USER" default:"postgres"`
	DBPass                 string `envconfig:"DB_PASS"`
	DBName                 string `envconfig:"DB_NAME" default:"feedback"`
	InstanceConnectionName string `envconfig:"INSTANCE_CONNECTION_NAME"`

	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`

	DisableWebhookValidation bool `envconfig:"DISABLE_WEBHOOK_VALIDATION" default:"false"`
}

// Load reads the .env file (when running locally) and processes environment
// variables into a Config.
func Load() (*Config, error) {
	// On Cloud Run the config comes from real env vars only
	if err := godotenv.Load(".env"); err != nil {
		if err = godotenv.Load("environments/.env.development"); err != nil {
			log.Println("⚠️  No .env file found - using environment variables")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be > 0")
	}
	if !cfg.UseMemoryStore && cfg.DBName == "" {
		return fmt.Errorf("DB_NAME is required when not using the memory store")
	}
	return nil
}

// TwilioConfigured reports whether all Twilio credentials are present.
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioWhatsAppFrom != ""
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
