package main

import (
	"context"
	"log"
	"os"

	"guildcal/internal/adapters/discord"
	"guildcal/internal/config"
	"guildcal/internal/infrastructure/database"
	"guildcal/internal/infrastructure/export"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration: %v", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ Migrations: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database: %v", err)
	}
	defer pool.Close()

	kv := database.NewStore(pool)
	eventRepo := database.NewEventRepository(kv)
	bindingRepo := database.NewBindingRepository(kv)
	prefRepo := database.NewPreferenceRepository(kv)

	bot, err := discord.NewBot(cfg, eventRepo, bindingRepo, prefRepo, export.NewICalExporter())
	if err != nil {
		log.Fatalf("❌ Bot setup: %v", err)
	}
	if err := bot.Start(); err != nil {
		log.Printf("❌ Bot start: %v", err)
		os.Exit(1)
	}
}
