// server/cmd/api/main.go
package main

import (
	"log"

	"warranty-cert-api-server/config"
	"warranty-cert-api-server/internal/api/routes"
	"warranty-cert-api-server/internal/database"
	"warranty-cert-api-server/internal/s3"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	if cfg.HasPlaceholderCredentials() {
		// Tracking still works against whatever store is reachable;
		// submissions are rejected at the handler until this is fixed.
		log.Println("WARNING: placeholder credentials detected, submissions will be blocked")
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}

	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Could not create S3 uploader: %v", err)
	}

	router := routes.SetupRouter(cfg, db, s3Uploader)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
