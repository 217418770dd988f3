package main

import (
	"log"
	"os"
	"path/filepath"

	"guessr-bot/bot"
	"guessr-bot/game"
	"guessr-bot/handlers"
	"guessr-bot/ingest"
	"guessr-bot/utils"
	"guessr-bot/utils/database"
)

func main() {
	cfg := LoadConfig()
	if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.Init(filepath.Join(cfg.DataDir, "guessr.db"))
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	catalog := database.NewCatalogDB(db)
	if cfg.Game.SonglistURL != "" {
		if err := ingest.Refresh(catalog, cfg.Game.SonglistURL, cfg.Game.AliasCSVURL); err != nil {
			log.Printf("Catalog refresh failed, continuing with stored catalog: %v", err)
			utils.LogError(cfg.LogWebhookURL, "ingest", "refresh", err.Error())
		}
	}

	provider := game.NewDirProvider(cfg.Game.HintImageDir, cfg.Game.ArtworkDir)
	registry := game.NewRegistry(
		catalog,
		provider,
		database.NewSessionDB(db),
		database.NewLeaderboardDB(db),
		database.NewSettingsDB(db),
	)
	if err := registry.Load(); err != nil {
		log.Fatalf("Error restoring game sessions: %v", err)
	}

	b, err := bot.New(cfg, db, catalog, registry)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	b.Run()

	defer b.Close()
}
