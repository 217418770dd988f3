package commands

import "github.com/bwmarrin/discordgo"

var (
	minAttempts = 1.0
	maxAttempts = 20
	minTopN     = 1.0
	maxTopN     = 50
)

// Guessr 是猜歌游戏的顶层命令，子命令对应各游戏操作。
var Guessr = &discordgo.ApplicationCommand{
	Name:        "guessr",
	Description: "Guess-the-song game",
	NameLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "猜歌",
		discordgo.ChineseTW: "猜歌",
	},
	DescriptionLocalizations: &map[discordgo.Locale]string{
		discordgo.ChineseCN: "猜歌游戏",
		discordgo.ChineseTW: "猜歌遊戲",
	},
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "start",
			Description: "开始一局游戏",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "attempts",
					Description: "尝试次数 (1-20，默认为 10)",
					Required:    false,
					MinValue:    &minAttempts,
					MaxValue:    float64(maxAttempts),
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "guess",
			Description: "猜测曲目",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "title",
					Description: "曲目 ID、曲名或俗名",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "tip",
			Description: "获取提示",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "stop",
			Description: "停止当前游戏并公布答案",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "rank",
			Description: "查看冠军榜",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "top",
					Description: "显示前几名 (默认为 10)",
					Required:    false,
					MinValue:    &minTopN,
					MaxValue:    float64(maxTopN),
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "enable",
			Description: "在本服务器启用猜歌游戏（管理员）",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "disable",
			Description: "在本服务器停用猜歌游戏（管理员）",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "status",
			Description: "查看运行状态",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "help",
			Description: "获取帮助信息",
		},
	},
}

func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{Guessr}
}
