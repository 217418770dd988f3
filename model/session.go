package model

// GuessEntry is one submitted guess: who guessed and which song it resolved to.
type GuessEntry struct {
	User   string `json:"user"`
	SongID string `json:"song_id"`
	Title  string `json:"title"`
}

// SessionRecord 是一局游戏的持久化形态，每次状态变更后整体写回。
// Guesses 与 HintsUsed 以 JSON 存进各自的列。
type SessionRecord struct {
	GuildID       string `db:"guild_id"`
	AnswerID      string `db:"answer_id"`
	MaxAttempts   int    `db:"max_attempts"`
	Remaining     int    `db:"remaining"`
	StartedAt     int64  `db:"started_at"`
	GuessesJSON   string `db:"guesses_json"`
	HintsUsedJSON string `db:"hints_used_json"`
}

// GuildSettings holds per-guild game switches. Guessing commands are
// honored only when Enabled is true; the default row is absent, which
// reads as disabled.
type GuildSettings struct {
	GuildID string `db:"guild_id"`
	Enabled bool   `db:"enabled"`
}
