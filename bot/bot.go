package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"

	"guessr-bot/game"
	"guessr-bot/model"
	"guessr-bot/utils/database"
)

// Bot ties the Discord session to the game registry and catalog.
type Bot struct {
	Session            *discordgo.Session
	Config             *model.Config
	DB                 *sqlx.DB
	Catalog            *database.CatalogDB
	Registry           *game.Registry
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	RegisteredCommands []*discordgo.ApplicationCommand

	scheduler *Scheduler
}

func New(cfg *model.Config, db *sqlx.DB, catalog *database.CatalogDB, registry *game.Registry) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent
	dg.StateEnabled = false

	b := &Bot{
		Session:  dg,
		Config:   cfg,
		DB:       db,
		Catalog:  catalog,
		Registry: registry,
	}
	b.scheduler = NewScheduler(b)
	return b, nil
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	b.scheduler.Stop()
	b.Session.Close()
	b.DB.Close()
}
