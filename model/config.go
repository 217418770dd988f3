package model

// GameConfig 来自 data/config.yaml，控制曲库来源与游戏参数。
type GameConfig struct {
	SonglistURL     string `mapstructure:"songlist_url"`
	AliasCSVURL     string `mapstructure:"alias_csv_url"`
	HintImageDir    string `mapstructure:"hint_image_dir"`
	ArtworkDir      string `mapstructure:"artwork_dir"`
	DefaultAttempts int    `mapstructure:"default_attempts"`
	RefreshMinutes  int    `mapstructure:"refresh_minutes"`
}

// Config 存储应用程序的配置
type Config struct {
	BotToken      string
	AppID         string
	LogWebhookURL string
	AdminRoleIDs  []string
	DataDir       string
	Game          GameConfig
}
