package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"guessr-bot/model"
)

// LoadConfig 从环境变量和 data/config.yaml 加载配置
func LoadConfig() *model.Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("Error: BOT_TOKEN environment variable not set")
	}

	appID := os.Getenv("APP_ID")
	if appID == "" {
		log.Fatal("Error: APP_ID environment variable not set")
	}

	webhookURL := os.Getenv("LOG_WEBHOOK_URL")
	if webhookURL == "" {
		log.Println("Warning: LOG_WEBHOOK_URL not set, webhook logging disabled")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	var adminRoleIDs []string
	if raw := os.Getenv("ADMIN_ROLE_IDS"); raw != "" {
		adminRoleIDs = strings.Split(raw, ",")
	}

	cfg := &model.Config{
		BotToken:      token,
		AppID:         appID,
		LogWebhookURL: webhookURL,
		AdminRoleIDs:  adminRoleIDs,
		DataDir:       dataDir,
	}
	cfg.Game = loadGameConfig(dataDir)
	return cfg
}

func loadGameConfig(dataDir string) model.GameConfig {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)

	v.SetDefault("hint_image_dir", filepath.Join(dataDir, "image"))
	v.SetDefault("artwork_dir", filepath.Join(dataDir, "songs"))
	v.SetDefault("default_attempts", 10)
	v.SetDefault("refresh_minutes", 360)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read %s/config.yaml, using defaults: %v", dataDir, err)
	}

	var gameCfg model.GameConfig
	if err := v.Unmarshal(&gameCfg); err != nil {
		log.Fatalf("Error: invalid game config: %v", err)
	}
	if gameCfg.SonglistURL == "" {
		log.Println("Warning: songlist_url not configured, catalog refresh disabled")
	}
	return gameCfg
}
