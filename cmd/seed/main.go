package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/nestwell/nestwell/internal/config"
	"github.com/nestwell/nestwell/internal/database"
)

// Deploy-time seed step: migrates the schema and inserts default content.
// Idempotent, safe to run on every deploy.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Seed complete")
}
