package model

// Song 定义了曲库中一首曲目的完整信息，由采集层写入，游戏核心只读。
type Song struct {
	ID            string `db:"id" json:"id"`
	Title         string `db:"title" json:"title"`
	Artist        string `db:"artist" json:"artist"`
	Pack          string `db:"pack" json:"pack"`
	ChartDesigner string `db:"chart_designer" json:"chart_designer"`
	Tiers         string `db:"tiers" json:"tiers"`     // 难度分级, space-joined tier labels (PST..ETR)
	Locales       string `db:"locales" json:"locales"` // 语言, space-joined locale codes
	Side          string `db:"side" json:"side"`
	Background    string `db:"background" json:"background"`
	Version       string `db:"version" json:"version"`
	RatingFTR     string `db:"rating_ftr" json:"rating_ftr"`
	RatingBYD     string `db:"rating_byd" json:"rating_byd"`
	RatingETR     string `db:"rating_etr" json:"rating_etr"`
}

// Alias maps a community nickname to a song ID. Lookup is
// case-insensitive full-string match against the alias text.
type Alias struct {
	SongID string `db:"song_id" json:"song_id"`
	Alias  string `db:"alias" json:"alias"`
}
