// Command fixtures resets the database and fills it with demo users and apps.
package main

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"deployhub_backend/database"
	"deployhub_backend/internal/config"
	"deployhub_backend/internal/logger"
)

func main() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	if err := database.Seed(context.Background(), db); err != nil {
		logger.Fatal("Seeding failed", "error", err)
	}
}
