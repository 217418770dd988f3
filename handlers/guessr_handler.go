package handlers

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/discordgo"

	"guessr-bot/bot"
	"guessr-bot/game"
	"guessr-bot/utils"
)

const helpText = "/guessr start [次数] 开始游戏\n" +
	"/guessr guess <曲名> 猜测曲目\n" +
	"/guessr tip 获取提示\n" +
	"/guessr stop 停止游戏\n" +
	"/guessr rank [n] 查看排行榜\n" +
	"/guessr status 查看运行状态\n" +
	"/guessr help 获取帮助信息\n" +
	"感谢rosemoe提供俗名库"

// HandleGuessr dispatches the /guessr subcommands.
func HandleGuessr(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if i.GuildID == "" {
		utils.SendEphemeralResponse(s, i, "猜歌游戏只能在服务器频道中进行")
		return
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	switch sub.Name {
	case "enable", "disable":
		handleSetEnabled(s, i, b, sub.Name == "enable")
		return
	case "status":
		HandleStatus(s, i, b)
		return
	case "help":
		utils.SendEphemeralResponse(s, i, helpText)
		return
	}

	enabled, err := b.Registry.Enabled(i.GuildID)
	if err != nil {
		log.Printf("Failed to read settings for guild %s: %v", i.GuildID, err)
		utils.SendEphemeralResponse(s, i, "操作失败，请稍后再试")
		return
	}
	if !enabled {
		utils.SendEphemeralResponse(s, i, "本服务器未启用猜歌游戏，请管理员使用 /guessr enable 开启")
		return
	}

	switch sub.Name {
	case "start":
		handleStart(s, i, b, sub)
	case "guess":
		handleGuess(s, i, b, sub)
	case "tip":
		handleTip(s, i, b)
	case "stop":
		handleStop(s, i, b)
	case "rank":
		handleRank(s, i, b, sub)
	}
}

func handleSetEnabled(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, enabled bool) {
	if !utils.IsAdmin(i.Member, b.Config.AdminRoleIDs) {
		utils.SendEphemeralResponse(s, i, "只有管理员可以修改游戏开关")
		return
	}
	if err := b.Registry.SetEnabled(i.GuildID, enabled); err != nil {
		log.Printf("Failed to update settings for guild %s: %v", i.GuildID, err)
		utils.SendEphemeralResponse(s, i, "操作失败，请稍后再试")
		return
	}
	if enabled {
		utils.SendPublicResponse(s, i, "猜歌游戏已启用！输入 /guessr start 开始游戏")
	} else {
		utils.SendPublicResponse(s, i, "猜歌游戏已停用")
	}
}

func handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, sub *discordgo.ApplicationCommandInteractionDataOption) {
	attempts := b.Config.Game.DefaultAttempts
	for _, opt := range sub.Options {
		if opt.Name == "attempts" {
			attempts = int(opt.IntValue())
		}
	}

	reply, err := b.Registry.Start(i.GuildID, attempts)
	if err != nil {
		respondError(s, i, b, err)
		return
	}
	utils.SendPublicResponse(s, i, reply.Text)

	// 与原版一致：开局自动发放第一条提示。
	hint, err := b.Registry.Hint(i.GuildID)
	if err != nil {
		log.Printf("Failed to dispense opening hint for guild %s: %v", i.GuildID, err)
		return
	}
	sendFollowupImage(s, i, hint.Text, hint.ImagePath)
}

func handleGuess(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, sub *discordgo.ApplicationCommandInteractionDataOption) {
	var title string
	for _, opt := range sub.Options {
		if opt.Name == "title" {
			title = opt.StringValue()
		}
	}
	if strings.TrimSpace(title) == "" {
		utils.SendEphemeralResponse(s, i, "请输入要猜测的曲目")
		return
	}

	reply, err := b.Registry.Guess(i.GuildID, displayName(i.Member), title, true)
	if err != nil {
		respondError(s, i, b, err)
		return
	}
	utils.SendImageResponse(s, i, reply.Text, reply.ImagePath)
}

func handleTip(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	reply, err := b.Registry.Hint(i.GuildID)
	if err != nil {
		respondError(s, i, b, err)
		return
	}
	utils.SendImageResponse(s, i, reply.Text, reply.ImagePath)
}

func handleStop(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	reply, err := b.Registry.Stop(i.GuildID)
	if err != nil {
		respondError(s, i, b, err)
		return
	}
	utils.SendImageResponse(s, i, reply.Text, reply.ImagePath)
}

func handleRank(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, sub *discordgo.ApplicationCommandInteractionDataOption) {
	topN := 10
	for _, opt := range sub.Options {
		if opt.Name == "top" {
			topN = int(opt.IntValue())
		}
	}
	reply, err := b.Registry.Leaderboard(i.GuildID, topN)
	if err != nil {
		respondError(s, i, b, err)
		return
	}
	utils.SendPublicResponse(s, i, reply.Text)
}

// HandlePassiveGuess submits plain chat messages as non-consuming
// guesses while a game is running. Only a win produces a reply.
func HandlePassiveGuess(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" || m.Content == "" {
		return
	}
	if !b.Registry.HasActive(m.GuildID) {
		return
	}
	enabled, err := b.Registry.Enabled(m.GuildID)
	if err != nil || !enabled {
		return
	}

	name := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		name = m.Member.Nick
	}
	reply, err := b.Registry.Guess(m.GuildID, name, m.Content, false)
	if err != nil || reply == nil {
		return
	}
	sendChannelImage(s, m.ChannelID, reply.Text, reply.ImagePath)
}

func displayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return "unknown"
	}
	if member.Nick != "" {
		return member.Nick
	}
	return member.User.Username
}

func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidAttempts):
		utils.SendEphemeralResponse(s, i, "尝试次数必须在1到20之间")
	case errors.Is(err, game.ErrNoActiveGame):
		utils.SendEphemeralResponse(s, i, "当前没有进行中的游戏，请先输入 /guessr start 开始游戏")
	case errors.Is(err, game.ErrSongNotFound):
		utils.SendEphemeralResponse(s, i, "未找到相关曲目，请重新尝试")
	case errors.Is(err, game.ErrNoHintAvailable):
		utils.SendEphemeralResponse(s, i, "未能为本局找到可用提示，稍后再试")
	case errors.Is(err, game.ErrHintsExhausted):
		utils.SendEphemeralResponse(s, i, "提示已用尽")
	default:
		log.Printf("Guessr operation failed in guild %s: %v", i.GuildID, err)
		utils.LogError(b.Config.LogWebhookURL, "guessr", "operation", err.Error())
		utils.SendEphemeralResponse(s, i, "操作失败，请稍后再试")
	}
}

func sendFollowupImage(s *discordgo.Session, i *discordgo.InteractionCreate, message, imagePath string) {
	params := &discordgo.WebhookParams{Content: message}
	if imagePath != "" {
		file, err := os.Open(imagePath)
		if err != nil {
			log.Printf("Error opening image %s: %v", imagePath, err)
		} else {
			defer file.Close()
			params.Files = []*discordgo.File{{Name: filepath.Base(imagePath), Reader: file}}
		}
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, true, params); err != nil {
		log.Printf("Error sending follow-up message: %v", err)
	}
}

func sendChannelImage(s *discordgo.Session, channelID, message, imagePath string) {
	msg := &discordgo.MessageSend{Content: message}
	if imagePath != "" {
		file, err := os.Open(imagePath)
		if err != nil {
			log.Printf("Error opening image %s: %v", imagePath, err)
		} else {
			defer file.Close()
			msg.Files = []*discordgo.File{{Name: filepath.Base(imagePath), Reader: file}}
		}
	}
	if _, err := s.ChannelMessageSendComplex(channelID, msg); err != nil {
		log.Printf("Error sending channel message: %v", err)
	}
}
