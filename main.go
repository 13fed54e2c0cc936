package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"registration-form/pkg/api"
	"registration-form/pkg/config"
	"registration-form/pkg/services"
	"registration-form/pkg/validation"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file loaded")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	// Build the validation schema once, it is shared by every session
	schema, err := validation.NewSchema()
	if err != nil {
		log.Fatalf("Error building validation schema: %v", err)
	}

	// Initialize services
	sessions := services.NewSessionService(schema, cfg.SessionTTL, nil)
	defer sessions.Close()
	registrationService := services.NewRegistrationService()

	gin.SetMode(cfg.GinMode)

	// Initialize handlers and routes
	handlers := api.NewHandlers(registrationService)
	router := api.NewRouter(cfg, handlers, sessions)

	// Start the server
	log.WithFields(log.Fields{
		"port":       cfg.Port,
		"sessionTTL": cfg.SessionTTL.String(),
	}).Info("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
