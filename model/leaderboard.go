package model

// WinRecord is an append-only row written once per winning guess.
type WinRecord struct {
	ID        int64  `db:"id"`
	GuildID   string `db:"guild_id"`
	Winner    string `db:"winner"`
	Timestamp int64  `db:"timestamp"`
}

// LeaderboardRow is one aggregated line of the top-N report.
type LeaderboardRow struct {
	Winner string `db:"winner"`
	Wins   int    `db:"wins"`
}
