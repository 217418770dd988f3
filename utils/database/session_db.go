package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"guessr-bot/model"
)

// SessionDB persists active game sessions, one row per guild.
type SessionDB struct {
	db *sqlx.DB
}

func NewSessionDB(db *sqlx.DB) *SessionDB {
	return &SessionDB{db: db}
}

func (s *SessionDB) LoadSessions() ([]model.SessionRecord, error) {
	var records []model.SessionRecord
	if err := s.db.Select(&records, "SELECT * FROM game_sessions"); err != nil {
		return nil, fmt.Errorf("failed to load game sessions: %w", err)
	}
	return records, nil
}

func (s *SessionDB) UpsertSession(rec model.SessionRecord) error {
	query := `INSERT INTO game_sessions (guild_id, answer_id, max_attempts, remaining, started_at, guesses_json, hints_used_json)
		VALUES (:guild_id, :answer_id, :max_attempts, :remaining, :started_at, :guesses_json, :hints_used_json)
		ON CONFLICT(guild_id) DO UPDATE SET
			answer_id = excluded.answer_id,
			max_attempts = excluded.max_attempts,
			remaining = excluded.remaining,
			started_at = excluded.started_at,
			guesses_json = excluded.guesses_json,
			hints_used_json = excluded.hints_used_json`
	if _, err := s.db.NamedExec(query, rec); err != nil {
		return fmt.Errorf("failed to upsert session for guild %s: %w", rec.GuildID, err)
	}
	return nil
}

func (s *SessionDB) DeleteSession(guildID string) error {
	if _, err := s.db.Exec("DELETE FROM game_sessions WHERE guild_id = ?", guildID); err != nil {
		return fmt.Errorf("failed to delete session for guild %s: %w", guildID, err)
	}
	return nil
}
