package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/nestwell/nestwell/internal/clients"
	"github.com/nestwell/nestwell/internal/config"
	"github.com/nestwell/nestwell/internal/database"
	"github.com/nestwell/nestwell/internal/logging"
	"github.com/nestwell/nestwell/internal/services"
)

// One-shot weekly digest sender, invoked by cron.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logging.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	ctx := context.Background()
	emailClient, err := clients.NewEmailClient(ctx, cfg.AWSRegion, cfg.EmailFrom, cfg.EmailFromName, zlog)
	if err != nil {
		log.Fatalf("Failed to create email client: %v", err)
	}

	if err := services.SendWeeklyDigests(ctx, db, emailClient, cfg.RedFlagFeelings, cfg.DigestSubject, zlog); err != nil {
		log.Fatalf("Failed to send weekly digests: %v", err)
	}
}
