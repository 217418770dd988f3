package handlers

import (
	"github.com/bwmarrin/discordgo"

	"guessr-bot/bot"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"guessr": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleGuessr(s, i, b)
		},
	}

	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if handler, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	})

	// 普通消息也能命中答案：不消耗次数，只在猜中时回复。
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		HandlePassiveGuess(s, m, b)
	})
}
