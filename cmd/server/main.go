package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/pulsefeed/backend/internal/router"
	"github.com/pulsefeed/backend/pkg/config"
	"github.com/pulsefeed/backend/pkg/push"
	"github.com/pulsefeed/backend/pkg/storage"
	"github.com/pulsefeed/backend/validators"
)

func main() {
	// Load environment and configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Push delivery is optional; the server runs without it
	var notifier push.Notifier
	if cfg.FirebaseCredentialsPath != "" {
		fcm, err := push.InitFCM(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Printf("Push notifications disabled: %v", err)
		} else {
			notifier = fcm
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, push notifications disabled")
	}

	// Object storage is optional too
	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		uploader = storage.NewS3Uploader(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
		})
	} else {
		log.Println("S3_BUCKET not set, media uploads disabled")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, router.Deps{
		Postgres:      db.Postgres,
		MongoDatabase: db.Mongo.Database(cfg.MongoDatabase),
		JWTSecret:     cfg.JWTSecret,
		Notifier:      notifier,
		Uploader:      uploader,
	})

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
